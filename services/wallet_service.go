package services

import (
	"context"
	"fmt"
	"time"

	"roomradar/constants"
	"roomradar/errors"
	"roomradar/models"
	"roomradar/mq"
	"roomradar/services/logger"
	"roomradar/services/notification"
	"roomradar/storage"
)

// WalletService xử lý nạp và rút ví qua cổng thanh toán. Số dư ví tính
// bằng USD; mọi lệnh gửi sang cổng được quy đổi sang IDR.
type WalletService struct {
	store    storage.Store
	gateway  PaymentGateway
	ledger   *LedgerService
	logger   logger.Logger
	notifier notification.Service
	events   EventPublisher
}

func NewWalletService(store storage.Store, gateway PaymentGateway, ledger *LedgerService, logger logger.Logger, notifier notification.Service, events EventPublisher) *WalletService {
	return &WalletService{
		store:    store,
		gateway:  gateway,
		ledger:   ledger,
		logger:   logger,
		notifier: notifier,
		events:   events,
	}
}

func (s *WalletService) broadcast(ctx context.Context, routingKey, userID, txnType string, amount float64) {
	if s.notifier != nil {
		if err := s.notifier.SendMessage(notification.WalletMessage(userID, txnType, amount)); err != nil {
			s.logger.Error("Failed to broadcast wallet change for user %s: %v", userID, err)
		}
	}
	if s.events != nil {
		event := mq.WalletEvent{
			UserID:     userID,
			Type:       txnType,
			Amount:     amount,
			OccurredAt: time.Now(),
		}
		if err := s.events.PublishJSON(ctx, routingKey, event); err != nil {
			s.logger.Error("Failed to publish wallet event for user %s: %v", userID, err)
		}
	}
}

// InitiateTopUp khởi tạo nạp ví: gọi cổng thanh toán lấy hướng dẫn trả
// tiền, chưa ghi gì vào sổ cái.
func (s *WalletService) InitiateTopUp(ctx context.Context, userID string, amount float64, paymentMethodType, channelCode string) (*PaymentInstructions, error) {
	if amount <= 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidAmount, "Số tiền nạp phải lớn hơn 0", nil)
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, wrapNotFound(err, "user not found")
	}

	instructions, err := s.gateway.CreatePaymentRequest(ctx, amount*constants.IDRConversionRate, paymentMethodType, channelCode)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeGateway, "Dịch vụ nạp ví hiện không khả dụng", err)
	}
	return instructions, nil
}

// CompleteTopUp ghi nhận nạp ví thành công: bản ghi Top-up Completed và
// thông báo cho user trong cùng một đơn vị ghi.
func (s *WalletService) CompleteTopUp(ctx context.Context, userID string, amount float64) (*models.Transaction, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, wrapNotFound(err, "user not found")
	}

	txn := &models.Transaction{
		UserID: userID,
		Type:   constants.TransactionTypeTopUp,
		Amount: amount,
		Status: constants.TransactionStatusCompleted,
	}

	err := s.store.Tx(ctx, func(tx storage.Store) error {
		if err := appendTransaction(ctx, tx, txn); err != nil {
			return err
		}
		return tx.CreateNotification(ctx, &models.Notification{
			UserID:  userID,
			Type:    constants.NotificationTopUpSuccess,
			Message: fmt.Sprintf("Bạn đã nạp thành công %.2f vào ví.", amount),
			Link:    "/wallet",
		})
	})
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			return nil, appErr
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể ghi nhận nạp ví", err)
	}

	s.broadcast(ctx, mq.RouteWalletTopUp, userID, txn.Type, amount)
	return txn, nil
}

// Withdraw rút ví về tài khoản ngân hàng đã khai báo: kiểm tra số dư,
// tạo payout ở cổng trước, cổng lỗi thì không ghi gì vào sổ cái.
func (s *WalletService) Withdraw(ctx context.Context, userID string, amount float64) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidAmount, "Số tiền rút phải lớn hơn 0", nil)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}

	balance, err := s.ledger.BalanceOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if amount > balance {
		return nil, errors.NewAppError(errors.ErrCodeInvalidAmount, "Số dư không đủ để rút", nil)
	}

	if len(user.Banks) == 0 {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Bạn chưa khai báo tài khoản ngân hàng nhận tiền", nil)
	}
	bank := user.Banks[0]

	payoutID, err := s.gateway.CreatePayout(ctx, amount*constants.IDRConversionRate, bank.ChannelCode, PayoutChannelProperties{
		AccountHolderName: bank.HolderName,
		AccountNumber:     bank.AccountNumber,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeGateway, "Dịch vụ rút ví hiện không khả dụng", err)
	}
	s.logger.Info("Created payout %s for user %s", payoutID, userID)

	txn := &models.Transaction{
		UserID: userID,
		Type:   constants.TransactionTypeWithdrawal,
		Amount: amount,
		Status: constants.TransactionStatusCompleted,
	}

	err = s.store.Tx(ctx, func(tx storage.Store) error {
		if err := appendTransaction(ctx, tx, txn); err != nil {
			return err
		}
		return tx.CreateNotification(ctx, &models.Notification{
			UserID:  userID,
			Type:    constants.NotificationWithdrawalSuccess,
			Message: fmt.Sprintf("Yêu cầu rút %.2f về %s đã được xử lý.", amount, bank.BankName),
			Link:    "/wallet",
		})
	})
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			return nil, appErr
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể ghi nhận rút ví", err)
	}

	s.broadcast(ctx, mq.RouteWalletWithdrawal, userID, txn.Type, amount)
	return txn, nil
}
