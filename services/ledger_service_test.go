package services

import (
	"context"
	"testing"

	"roomradar/constants"
	"roomradar/errors"
	"roomradar/models"
	"roomradar/services/logger"
	"roomradar/storage"
)

func newLedgerTestService() (*LedgerService, storage.Store) {
	store := storage.NewMemoryStore()
	return NewLedgerService(store, logger.NewDefaultLogger(logger.ErrorLevel)), store
}

func TestBalanceFromRecords(t *testing.T) {
	txns := []models.Transaction{
		{Type: constants.TransactionTypeTopUp, Amount: 100, Status: constants.TransactionStatusCompleted},
		{Type: constants.TransactionTypeWithdrawal, Amount: 30, Status: constants.TransactionStatusCompleted},
		{Type: constants.TransactionTypeRentPayment, Amount: 20, Status: constants.TransactionStatusCompleted},
		{Type: constants.TransactionTypePayout, Amount: 50, Status: constants.TransactionStatusCompleted},
		{Type: constants.TransactionTypeCancellationFee, Amount: 10, Status: constants.TransactionStatusCompleted},
	}

	if got := BalanceFromRecords(txns); got != 90 {
		t.Errorf("BalanceFromRecords() = %v, want 90", got)
	}
}

func TestBalanceIgnoresNonCompleted(t *testing.T) {
	txns := []models.Transaction{
		{Type: constants.TransactionTypeTopUp, Amount: 100, Status: constants.TransactionStatusCompleted},
		{Type: constants.TransactionTypeRentPayment, Amount: 40, Status: constants.TransactionStatusPending},
		{Type: constants.TransactionTypeWithdrawal, Amount: 25, Status: constants.TransactionStatusFailed},
	}

	if got := BalanceFromRecords(txns); got != 100 {
		t.Errorf("BalanceFromRecords() = %v, want 100", got)
	}
}

func TestBalanceOrderIndependent(t *testing.T) {
	txns := []models.Transaction{
		{Type: constants.TransactionTypeTopUp, Amount: 100, Status: constants.TransactionStatusCompleted},
		{Type: constants.TransactionTypeWithdrawal, Amount: 30, Status: constants.TransactionStatusCompleted},
		{Type: constants.TransactionTypePayout, Amount: 15, Status: constants.TransactionStatusCompleted},
	}
	reversed := []models.Transaction{txns[2], txns[1], txns[0]}

	if BalanceFromRecords(txns) != BalanceFromRecords(reversed) {
		t.Errorf("số dư phụ thuộc thứ tự giao dịch: %v != %v",
			BalanceFromRecords(txns), BalanceFromRecords(reversed))
	}
}

func TestAppendRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newLedgerTestService()

	err := svc.Append(context.Background(), &models.Transaction{
		UserID: "u1",
		Type:   constants.TransactionTypeTopUp,
		Amount: 0,
	})
	if !errors.IsValidation(err) {
		t.Errorf("Append với amount 0 phải trả lỗi validation, got %v", err)
	}
}

func TestAppendDefaultsDateAndStatus(t *testing.T) {
	svc, store := newLedgerTestService()
	ctx := context.Background()

	txn := &models.Transaction{
		UserID: "u1",
		Type:   constants.TransactionTypeTopUp,
		Amount: 50,
	}
	if err := svc.Append(ctx, txn); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if txn.Date == "" {
		t.Error("Append phải gán ngày mặc định")
	}
	if txn.Status != constants.TransactionStatusCompleted {
		t.Errorf("Append phải mặc định Completed, got %q", txn.Status)
	}

	txns, err := store.ListTransactionsByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListTransactionsByUser: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("muốn 1 giao dịch, got %d", len(txns))
	}
}

func TestResolvePendingTransaction(t *testing.T) {
	svc, store := newLedgerTestService()
	ctx := context.Background()

	txn := &models.Transaction{
		UserID:    "u1",
		BookingID: "b1",
		Type:      constants.TransactionTypeRentPayment,
		Amount:    120,
		Status:    constants.TransactionStatusPending,
	}
	if err := svc.Append(ctx, txn); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := svc.Resolve(ctx, txn.ID, constants.TransactionStatusCompleted); err != nil {
		t.Fatalf("Resolve pending: %v", err)
	}

	// Bản ghi đã chốt không được chốt lại
	err := svc.Resolve(ctx, txn.ID, constants.TransactionStatusFailed)
	if !errors.IsInvalidState(err) {
		t.Errorf("Resolve bản ghi đã chốt phải trả lỗi trạng thái, got %v", err)
	}

	balance, err := svc.BalanceOf(ctx, "u1")
	if err != nil {
		t.Fatalf("BalanceOf: %v", err)
	}
	if balance != -120 {
		t.Errorf("BalanceOf = %v, want -120", balance)
	}

	if _, err := store.GetPendingRentPayment(ctx, "b1"); err != storage.ErrNotFound {
		t.Errorf("booking không còn bản ghi treo, got %v", err)
	}
}

func TestResolveRejectsInvalidTargetStatus(t *testing.T) {
	svc, _ := newLedgerTestService()

	err := svc.Resolve(context.Background(), "t1", constants.TransactionStatusPending)
	if !errors.IsValidation(err) {
		t.Errorf("Resolve về pending phải trả lỗi validation, got %v", err)
	}
}

func TestFindPendingRentPaymentNotFound(t *testing.T) {
	svc, _ := newLedgerTestService()

	_, err := svc.FindPendingRentPayment(context.Background(), "missing")
	if !errors.IsNotFound(err) {
		t.Errorf("muốn lỗi not found, got %v", err)
	}
}
