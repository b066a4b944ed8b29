package services

import (
	"context"
	"time"

	"roomradar/constants"
	"roomradar/errors"
	"roomradar/models"
	"roomradar/services/logger"
	"roomradar/storage"
)

// LedgerService quản lý sổ giao dịch ví của user
type LedgerService struct {
	store  storage.Store
	logger logger.Logger
}

func NewLedgerService(store storage.Store, logger logger.Logger) *LedgerService {
	return &LedgerService{
		store:  store,
		logger: logger,
	}
}

// appendTransaction ghi một giao dịch mới vào store, dùng chung cho cả
// ghi trực tiếp lẫn ghi bên trong một transaction của store.
func appendTransaction(ctx context.Context, store storage.Store, txn *models.Transaction) error {
	if txn.Amount <= 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Số tiền giao dịch phải lớn hơn 0", nil)
	}
	if txn.Date == "" {
		txn.Date = time.Now().Format(DateLayout)
	}
	if txn.Status == "" {
		txn.Status = constants.TransactionStatusCompleted
	}
	if err := store.CreateTransaction(ctx, txn); err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không thể ghi giao dịch", err)
	}
	return nil
}

// Append ghi một giao dịch mới vào sổ
func (s *LedgerService) Append(ctx context.Context, txn *models.Transaction) error {
	return appendTransaction(ctx, s.store, txn)
}

// Resolve chốt một giao dịch đang pending sang trạng thái cuối
func (s *LedgerService) Resolve(ctx context.Context, txnID string, newStatus string) error {
	if newStatus != constants.TransactionStatusCompleted && newStatus != constants.TransactionStatusFailed {
		return errors.NewAppError(errors.ErrCodeValidation, "Trạng thái chốt giao dịch không hợp lệ", nil)
	}
	if err := s.store.SettleTransaction(ctx, txnID, newStatus); err != nil {
		if err == storage.ErrStateConflict {
			return errors.NewAppError(errors.ErrCodeInvalidState, "transaction is not pending", err)
		}
		if err == storage.ErrNotFound {
			return errors.NewAppError(errors.ErrCodeNotFound, "transaction not found", err)
		}
		return errors.NewAppError(errors.ErrCodeDBError, "Không thể chốt giao dịch", err)
	}
	return nil
}

// BalanceFromRecords tính số dư ví từ danh sách giao dịch đã hoàn tất.
// Top-up và Payout cộng vào, các loại còn lại trừ ra.
func BalanceFromRecords(txns []models.Transaction) float64 {
	balance := 0.0
	for _, txn := range txns {
		if txn.Status != constants.TransactionStatusCompleted {
			continue
		}
		switch txn.Type {
		case constants.TransactionTypeTopUp, constants.TransactionTypePayout:
			balance += txn.Amount
		case constants.TransactionTypeWithdrawal, constants.TransactionTypeRentPayment, constants.TransactionTypeCancellationFee:
			balance -= txn.Amount
		}
	}
	return balance
}

// BalanceOf tính số dư hiện tại của một user
func (s *LedgerService) BalanceOf(ctx context.Context, userID string) (float64, error) {
	txns, err := s.store.ListCompletedTransactionsByUser(ctx, userID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDBError, "Không thể lấy danh sách giao dịch", err)
	}
	return BalanceFromRecords(txns), nil
}

// FindPendingRentPayment tìm giao dịch tiền thuê đang treo của một booking
func (s *LedgerService) FindPendingRentPayment(ctx context.Context, bookingID string) (*models.Transaction, error) {
	txn, err := s.store.GetPendingRentPayment(ctx, bookingID)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "pending transaction not found", err)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể tìm giao dịch treo", err)
	}
	return txn, nil
}

// TransactionsOf lấy lịch sử giao dịch của một user, mới nhất trước
func (s *LedgerService) TransactionsOf(ctx context.Context, userID string) ([]models.Transaction, error) {
	txns, err := s.store.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể lấy danh sách giao dịch", err)
	}
	return txns, nil
}
