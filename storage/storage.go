package storage

import (
	"context"
	"errors"
	"time"

	"roomradar/models"
)

var (
	// ErrNotFound bản ghi không tồn tại
	ErrNotFound = errors.New("record not found")
	// ErrStateConflict bản ghi không còn ở trạng thái yêu cầu (CAS thất bại)
	ErrStateConflict = errors.New("record state conflict")
)

// Store trừu tượng hóa kho dữ liệu để state machine không phụ thuộc storage cụ thể.
// Mọi ghi chép liên quan đến một chuyển đổi booking phải nằm trong một Tx:
// hoặc tất cả được áp dụng, hoặc không gì cả.
type Store interface {
	// Tx chạy fn trong một đơn vị ghi nguyên tử; fn nhận Store gắn với transaction
	Tx(ctx context.Context, fn func(Store) error) error

	// Users
	GetUser(ctx context.Context, id string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error

	// Buildings
	GetBuilding(ctx context.Context, id string) (*models.Building, error)
	ListBuildings(ctx context.Context) ([]models.Building, error)
	ListBuildingsByOwner(ctx context.Context, ownerID string) ([]models.Building, error)
	SaveBuilding(ctx context.Context, building *models.Building) error

	// Rooms
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	ListRoomsByBuilding(ctx context.Context, buildingID string) ([]models.Room, error)
	SaveRoom(ctx context.Context, room *models.Room) error

	// Bookings
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	// UpdateBookingStatus chuyển trạng thái theo kiểu compare-and-swap:
	// trả về ErrStateConflict nếu booking không còn ở trạng thái `from`
	UpdateBookingStatus(ctx context.Context, id, from, to string) error
	ListBookingsByTenant(ctx context.Context, userID string) ([]models.Booking, error)
	ListBookingsByBuildings(ctx context.Context, buildingIDs []string) ([]models.Booking, error)
	ListPendingBookingsBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error)

	// Ledger records
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
	// GetPendingRentPayment trả về bản ghi giữ tiền duy nhất của booking, ErrNotFound nếu không có
	GetPendingRentPayment(ctx context.Context, bookingID string) (*models.Transaction, error)
	// SettleTransaction chuyển bản ghi pending sang trạng thái terminal;
	// ErrStateConflict nếu bản ghi không còn pending
	SettleTransaction(ctx context.Context, id, newStatus string) error
	ListTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	ListCompletedTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error)

	// Notifications
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error)
	// MarkNotificationRead chỉ chủ sở hữu được bật cờ đã đọc
	MarkNotificationRead(ctx context.Context, userID, id string) (*models.Notification, error)
}
