package services

import (
	"context"
	"sync"
	"testing"

	"roomradar/constants"
	"roomradar/dto"
	"roomradar/errors"
	"roomradar/models"
	"roomradar/services/logger"
	"roomradar/storage"
)

type bookingTestEnv struct {
	store    *storage.MemoryStore
	bookings *BookingService
	ledger   *LedgerService
	tenant   *models.User
	landlord *models.User
	building *models.Building
	room     *models.Room
}

func newBookingTestEnv(t *testing.T) *bookingTestEnv {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	testLogger := logger.NewDefaultLogger(logger.ErrorLevel)

	tenant := &models.User{Name: "Nguyễn Văn An", Email: "an@example.com"}
	landlord := &models.User{Name: "Trần Thị Bình", Email: "binh@example.com", Role: constants.RoleLandlord}
	if err := store.SaveUser(ctx, tenant); err != nil {
		t.Fatalf("SaveUser tenant: %v", err)
	}
	if err := store.SaveUser(ctx, landlord); err != nil {
		t.Fatalf("SaveUser landlord: %v", err)
	}

	building := &models.Building{
		OwnerID: landlord.ID,
		Name:    "Nhà trọ Bình An",
		Address: "12 Lê Lợi, Quận 1",
		Images:  []string{"https://img.example.com/binh-an.jpg"},
	}
	if err := store.SaveBuilding(ctx, building); err != nil {
		t.Fatalf("SaveBuilding: %v", err)
	}

	room := &models.Room{
		BuildingID:     building.ID,
		OwnerID:        landlord.ID,
		Name:           "Phòng 101",
		PriceDaily:     40,
		DepositMonthly: 800,
	}
	if err := store.SaveRoom(ctx, room); err != nil {
		t.Fatalf("SaveRoom: %v", err)
	}

	return &bookingTestEnv{
		store:    store,
		bookings: NewBookingService(store, testLogger, nil, nil),
		ledger:   NewLedgerService(store, testLogger),
		tenant:   tenant,
		landlord: landlord,
		building: building,
		room:     room,
	}
}

func (env *bookingTestEnv) createBooking(t *testing.T) *models.Booking {
	t.Helper()
	booking, err := env.bookings.Create(context.Background(), env.tenant.ID, dto.CreateBookingRequest{
		BuildingID: env.building.ID,
		RoomID:     env.room.ID,
		CheckIn:    "2025-03-01",
		CheckOut:   "2025-03-10",
		TotalPrice: 1280,
	})
	if err != nil {
		t.Fatalf("Create booking: %v", err)
	}
	return booking
}

func completedOfType(txns []models.Transaction, txnType string) []models.Transaction {
	var result []models.Transaction
	for _, txn := range txns {
		if txn.Type == txnType && txn.Status == constants.TransactionStatusCompleted {
			result = append(result, txn)
		}
	}
	return result
}

func TestCreateBooking(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	booking := env.createBooking(t)
	if booking.Status != constants.BookingStatusPending {
		t.Errorf("booking mới phải pending, got %q", booking.Status)
	}
	if booking.BuildingName != env.building.Name || booking.RoomName != env.room.Name {
		t.Errorf("booking phải chép tên tòa nhà và phòng: %+v", booking)
	}
	if booking.ImageURL != env.building.Images[0] {
		t.Errorf("booking phải chép ảnh đầu tiên của tòa nhà, got %q", booking.ImageURL)
	}

	hold, err := env.store.GetPendingRentPayment(ctx, booking.ID)
	if err != nil {
		t.Fatalf("booking mới phải có bản ghi giữ tiền: %v", err)
	}
	if hold.Amount != booking.TotalPrice || hold.UserID != env.tenant.ID {
		t.Errorf("bản ghi giữ tiền sai: %+v", hold)
	}

	notifications, err := env.store.ListNotificationsByUser(ctx, env.landlord.ID)
	if err != nil {
		t.Fatalf("ListNotificationsByUser: %v", err)
	}
	if len(notifications) != 1 || notifications[0].Type != constants.NotificationNewBooking {
		t.Errorf("chủ nhà phải nhận đúng một thông báo new_booking, got %+v", notifications)
	}
}

func TestCreateBookingRejectsReversedDates(t *testing.T) {
	env := newBookingTestEnv(t)

	_, err := env.bookings.Create(context.Background(), env.tenant.ID, dto.CreateBookingRequest{
		BuildingID: env.building.ID,
		RoomID:     env.room.ID,
		CheckIn:    "2025-03-10",
		CheckOut:   "2025-03-01",
		TotalPrice: 1280,
	})
	if !errors.IsValidation(err) {
		t.Errorf("khoảng ngày ngược phải bị chặn, got %v", err)
	}
}

func TestApproveBooking(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	booking := env.createBooking(t)
	updated, err := env.bookings.Approve(ctx, booking.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if updated.Status != constants.BookingStatusConfirmed {
		t.Errorf("booking phải confirmed, got %q", updated.Status)
	}

	tenantTxns, _ := env.store.ListTransactionsByUser(ctx, env.tenant.ID)
	rents := completedOfType(tenantTxns, constants.TransactionTypeRentPayment)
	if len(rents) != 1 || rents[0].Amount != 1280 {
		t.Errorf("người thuê phải có đúng một Rent Payment Completed 1280, got %+v", rents)
	}

	landlordTxns, _ := env.store.ListTransactionsByUser(ctx, env.landlord.ID)
	payouts := completedOfType(landlordTxns, constants.TransactionTypePayout)
	if len(payouts) != 1 || payouts[0].Amount != 1280 {
		t.Errorf("chủ nhà phải có đúng một Payout Completed 1280, got %+v", payouts)
	}

	landlordBalance, _ := env.ledger.BalanceOf(ctx, env.landlord.ID)
	if landlordBalance != 1280 {
		t.Errorf("số dư chủ nhà = %v, want 1280", landlordBalance)
	}
	tenantBalance, _ := env.ledger.BalanceOf(ctx, env.tenant.ID)
	if tenantBalance != -1280 {
		t.Errorf("số dư người thuê = %v, want -1280", tenantBalance)
	}

	tenantNotifs, _ := env.store.ListNotificationsByUser(ctx, env.tenant.ID)
	if len(tenantNotifs) != 1 || tenantNotifs[0].Type != constants.NotificationBookingUpdate {
		t.Errorf("người thuê phải nhận thông báo booking_update, got %+v", tenantNotifs)
	}
}

func TestApproveWithoutHoldLeavesBookingPending(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	// Booking ghi thẳng vào store, không qua Create nên không có bản ghi giữ tiền
	booking := &models.Booking{
		UserID:     env.tenant.ID,
		BuildingID: env.building.ID,
		RoomID:     env.room.ID,
		CheckIn:    "2025-03-01",
		CheckOut:   "2025-03-10",
		TotalPrice: 1280,
		Status:     constants.BookingStatusPending,
	}
	if err := env.store.CreateBooking(ctx, booking); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	_, err := env.bookings.Approve(ctx, booking.ID)
	if !errors.IsNotFound(err) {
		t.Fatalf("approve thiếu bản ghi giữ tiền phải trả not found, got %v", err)
	}

	stored, _ := env.store.GetBooking(ctx, booking.ID)
	if stored.Status != constants.BookingStatusPending {
		t.Errorf("booking phải giữ nguyên pending, got %q", stored.Status)
	}

	landlordTxns, _ := env.store.ListTransactionsByUser(ctx, env.landlord.ID)
	if len(landlordTxns) != 0 {
		t.Errorf("không được ghi giao dịch nào, got %+v", landlordTxns)
	}
}

func TestDeclineBooking(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	booking := env.createBooking(t)
	updated, err := env.bookings.Decline(ctx, booking.ID)
	if err != nil {
		t.Fatalf("Decline: %v", err)
	}
	if updated.Status != constants.BookingStatusDeclined {
		t.Errorf("booking phải declined, got %q", updated.Status)
	}

	// Bản ghi giữ tiền phải được hoàn về Failed, số dư không đổi
	if _, err := env.store.GetPendingRentPayment(ctx, booking.ID); err != storage.ErrNotFound {
		t.Errorf("không còn bản ghi giữ tiền treo, got %v", err)
	}
	tenantBalance, _ := env.ledger.BalanceOf(ctx, env.tenant.ID)
	if tenantBalance != 0 {
		t.Errorf("số dư người thuê = %v, want 0", tenantBalance)
	}

	// Từ chối lần hai phải bị chặn và sổ cái không đổi
	_, err = env.bookings.Decline(ctx, booking.ID)
	if !errors.IsInvalidState(err) {
		t.Errorf("decline lần hai phải trả lỗi trạng thái, got %v", err)
	}
	tenantTxns, _ := env.store.ListTransactionsByUser(ctx, env.tenant.ID)
	if len(tenantTxns) != 1 {
		t.Errorf("sổ cái người thuê phải giữ nguyên một bản ghi, got %d", len(tenantTxns))
	}
}

func TestCancelBookingChargesFee(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()

	booking := env.createBooking(t)
	updated, err := env.bookings.Cancel(ctx, booking.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if updated.Status != constants.BookingStatusCancelled {
		t.Errorf("booking phải cancelled, got %q", updated.Status)
	}

	tenantTxns, _ := env.store.ListTransactionsByUser(ctx, env.tenant.ID)
	fees := completedOfType(tenantTxns, constants.TransactionTypeCancellationFee)
	if len(fees) != 1 {
		t.Fatalf("phải có đúng một Cancellation Fee, got %+v", fees)
	}

	// Suy ngược từ số tiền giữ 1280: phí nền tảng 1280/1.2*0.2, cộng cọc 800
	wantFee := 1280.0/1.2*0.2 + 800
	if !almostEqual(fees[0].Amount, wantFee) {
		t.Errorf("phí hủy = %v, want %v", fees[0].Amount, wantFee)
	}

	tenantBalance, _ := env.ledger.BalanceOf(ctx, env.tenant.ID)
	if !almostEqual(tenantBalance, -wantFee) {
		t.Errorf("số dư người thuê = %v, want %v", tenantBalance, -wantFee)
	}

	ownerNotifs, _ := env.store.ListNotificationsByUser(ctx, env.landlord.ID)
	foundUpdate := false
	for _, n := range ownerNotifs {
		if n.Type == constants.NotificationBookingUpdate {
			foundUpdate = true
		}
	}
	if !foundUpdate {
		t.Errorf("chủ nhà phải nhận thông báo hủy, got %+v", ownerNotifs)
	}

	// Hủy lần hai phải bị chặn
	_, err = env.bookings.Cancel(ctx, booking.ID)
	if !errors.IsInvalidState(err) {
		t.Errorf("cancel lần hai phải trả lỗi trạng thái, got %v", err)
	}
}

func TestConcurrentApproveOnlyOneWins(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()
	booking := env.createBooking(t)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.bookings.Approve(ctx, booking.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else if !errors.IsInvalidState(err) && !errors.IsNotFound(err) {
			t.Errorf("lỗi không mong đợi: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("phải có đúng một approve thành công, got %d", succeeded)
	}

	landlordTxns, _ := env.store.ListTransactionsByUser(ctx, env.landlord.ID)
	payouts := completedOfType(landlordTxns, constants.TransactionTypePayout)
	if len(payouts) != 1 {
		t.Errorf("phải có đúng một Payout, got %d", len(payouts))
	}
}

func TestListForOwner(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()
	env.createBooking(t)

	bookings, err := env.bookings.ListForOwner(ctx, env.landlord.ID)
	if err != nil {
		t.Fatalf("ListForOwner: %v", err)
	}
	if len(bookings) != 1 {
		t.Errorf("chủ nhà phải thấy 1 booking, got %d", len(bookings))
	}

	none, err := env.bookings.ListForOwner(ctx, "owner-without-buildings")
	if err != nil {
		t.Fatalf("ListForOwner không tòa nhà: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("chủ nhà không có tòa nhà phải thấy 0 booking, got %d", len(none))
	}
}

func TestNotifyStalePending(t *testing.T) {
	env := newBookingTestEnv(t)
	ctx := context.Background()
	env.createBooking(t)

	// Ngưỡng 1ns để đơn vừa tạo cũng tính là quá hạn
	reminded, err := env.bookings.NotifyStalePending(ctx, 1)
	if err != nil {
		t.Fatalf("NotifyStalePending: %v", err)
	}
	if reminded != 1 {
		t.Errorf("phải nhắc 1 đơn quá hạn, got %d", reminded)
	}
}
