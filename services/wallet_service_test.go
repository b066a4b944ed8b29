package services

import (
	"context"
	"errors"
	"testing"

	"roomradar/constants"
	apperrors "roomradar/errors"
	"roomradar/models"
	"roomradar/services/logger"
	"roomradar/storage"
)

type fakeGateway struct {
	paymentErr    error
	payoutErr     error
	lastAmount    float64
	lastChannel   string
	payoutCalls   int
	paymentCalls  int
	lastPropsName string
}

func (g *fakeGateway) CreatePaymentRequest(ctx context.Context, amount float64, paymentMethodType, channelCode string) (*PaymentInstructions, error) {
	g.paymentCalls++
	g.lastAmount = amount
	g.lastChannel = channelCode
	if g.paymentErr != nil {
		return nil, g.paymentErr
	}
	return &PaymentInstructions{Type: PaymentInstructionVA, VANumber: "8808123456"}, nil
}

func (g *fakeGateway) CreatePayout(ctx context.Context, amount float64, channelCode string, props PayoutChannelProperties) (string, error) {
	g.payoutCalls++
	g.lastAmount = amount
	g.lastChannel = channelCode
	g.lastPropsName = props.AccountHolderName
	if g.payoutErr != nil {
		return "", g.payoutErr
	}
	return "disb-1", nil
}

type walletTestEnv struct {
	store   *storage.MemoryStore
	gateway *fakeGateway
	wallet  *WalletService
	ledger  *LedgerService
	user    *models.User
}

func newWalletTestEnv(t *testing.T, banks ...models.Bank) *walletTestEnv {
	t.Helper()
	store := storage.NewMemoryStore()
	testLogger := logger.NewDefaultLogger(logger.ErrorLevel)
	gateway := &fakeGateway{}
	ledger := NewLedgerService(store, testLogger)

	user := &models.User{Name: "Lê Văn Cường", Email: "cuong@example.com", Banks: banks}
	if err := store.SaveUser(context.Background(), user); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	return &walletTestEnv{
		store:   store,
		gateway: gateway,
		wallet:  NewWalletService(store, gateway, ledger, testLogger, nil, nil),
		ledger:  ledger,
		user:    user,
	}
}

func defaultBank() models.Bank {
	return models.Bank{
		BankName:      "BCA",
		ChannelCode:   "ID_BCA",
		AccountNumber: "1234567890",
		HolderName:    "Le Van Cuong",
	}
}

func TestInitiateTopUpConvertsToIDR(t *testing.T) {
	env := newWalletTestEnv(t)

	instructions, err := env.wallet.InitiateTopUp(context.Background(), env.user.ID, 10, "VIRTUAL_ACCOUNT", "BCA")
	if err != nil {
		t.Fatalf("InitiateTopUp: %v", err)
	}
	if instructions.Type != PaymentInstructionVA || instructions.VANumber == "" {
		t.Errorf("muốn hướng dẫn VA, got %+v", instructions)
	}
	if env.gateway.lastAmount != 10*constants.IDRConversionRate {
		t.Errorf("cổng phải nhận %v IDR, got %v", 10*constants.IDRConversionRate, env.gateway.lastAmount)
	}

	// Khởi tạo nạp chưa được ghi gì vào sổ cái
	txns, _ := env.store.ListTransactionsByUser(context.Background(), env.user.ID)
	if len(txns) != 0 {
		t.Errorf("InitiateTopUp không được ghi sổ, got %+v", txns)
	}
}

func TestInitiateTopUpGatewayError(t *testing.T) {
	env := newWalletTestEnv(t)
	env.gateway.paymentErr = errors.New("connection refused")

	_, err := env.wallet.InitiateTopUp(context.Background(), env.user.ID, 10, "EWALLET", "ID_OVO")
	if !apperrors.IsGateway(err) {
		t.Errorf("lỗi cổng phải map sang gateway error, got %v", err)
	}
}

func TestCompleteTopUp(t *testing.T) {
	env := newWalletTestEnv(t)
	ctx := context.Background()

	txn, err := env.wallet.CompleteTopUp(ctx, env.user.ID, 100)
	if err != nil {
		t.Fatalf("CompleteTopUp: %v", err)
	}
	if txn.Type != constants.TransactionTypeTopUp || txn.Status != constants.TransactionStatusCompleted {
		t.Errorf("bản ghi nạp ví sai: %+v", txn)
	}

	balance, _ := env.ledger.BalanceOf(ctx, env.user.ID)
	if balance != 100 {
		t.Errorf("số dư = %v, want 100", balance)
	}

	notifications, _ := env.store.ListNotificationsByUser(ctx, env.user.ID)
	if len(notifications) != 1 || notifications[0].Type != constants.NotificationTopUpSuccess {
		t.Errorf("phải có thông báo top_up_success, got %+v", notifications)
	}
}

func TestWithdrawInsufficientBalance(t *testing.T) {
	env := newWalletTestEnv(t, defaultBank())

	_, err := env.wallet.Withdraw(context.Background(), env.user.ID, 50)
	if !apperrors.IsValidation(err) {
		t.Errorf("rút quá số dư phải bị chặn, got %v", err)
	}
	if env.gateway.payoutCalls != 0 {
		t.Errorf("không được gọi cổng khi số dư không đủ")
	}
}

func TestWithdrawWithoutBank(t *testing.T) {
	env := newWalletTestEnv(t)
	if _, err := env.wallet.CompleteTopUp(context.Background(), env.user.ID, 100); err != nil {
		t.Fatalf("CompleteTopUp: %v", err)
	}

	_, err := env.wallet.Withdraw(context.Background(), env.user.ID, 50)
	if !apperrors.IsValidation(err) {
		t.Errorf("thiếu tài khoản ngân hàng phải bị chặn, got %v", err)
	}
}

func TestWithdrawGatewayFailureWritesNothing(t *testing.T) {
	env := newWalletTestEnv(t, defaultBank())
	ctx := context.Background()
	if _, err := env.wallet.CompleteTopUp(ctx, env.user.ID, 100); err != nil {
		t.Fatalf("CompleteTopUp: %v", err)
	}
	env.gateway.payoutErr = errors.New("payout rejected")

	_, err := env.wallet.Withdraw(ctx, env.user.ID, 40)
	if !apperrors.IsGateway(err) {
		t.Fatalf("lỗi payout phải map sang gateway error, got %v", err)
	}

	// Số dư và sổ cái giữ nguyên như trước khi rút
	balance, _ := env.ledger.BalanceOf(ctx, env.user.ID)
	if balance != 100 {
		t.Errorf("số dư = %v, want 100", balance)
	}
	txns, _ := env.store.ListTransactionsByUser(ctx, env.user.ID)
	if len(txns) != 1 {
		t.Errorf("sổ cái phải chỉ còn bản ghi nạp, got %+v", txns)
	}
}

func TestWithdraw(t *testing.T) {
	env := newWalletTestEnv(t, defaultBank())
	ctx := context.Background()
	if _, err := env.wallet.CompleteTopUp(ctx, env.user.ID, 100); err != nil {
		t.Fatalf("CompleteTopUp: %v", err)
	}

	txn, err := env.wallet.Withdraw(ctx, env.user.ID, 40)
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if txn.Type != constants.TransactionTypeWithdrawal || txn.Amount != 40 {
		t.Errorf("bản ghi rút ví sai: %+v", txn)
	}

	if env.gateway.lastAmount != 40*constants.IDRConversionRate {
		t.Errorf("cổng phải nhận %v IDR, got %v", 40*constants.IDRConversionRate, env.gateway.lastAmount)
	}
	if env.gateway.lastChannel != "ID_BCA" || env.gateway.lastPropsName != "Le Van Cuong" {
		t.Errorf("payout phải dùng tài khoản ngân hàng đã khai báo")
	}

	balance, _ := env.ledger.BalanceOf(ctx, env.user.ID)
	if balance != 60 {
		t.Errorf("số dư = %v, want 60", balance)
	}
}
