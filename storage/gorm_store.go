package storage

import (
	"context"
	"errors"
	"time"

	"roomradar/constants"
	"roomradar/models"

	"gorm.io/gorm"
)

// GormStore adapter Postgres cho Store
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate tạo các bảng của domain
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Bank{},
		&models.Building{},
		&models.Room{},
		&models.Booking{},
		&models.Transaction{},
		&models.Notification{},
	)
}

func (s *GormStore) Tx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Banks").First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (s *GormStore) SaveUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *GormStore) GetBuilding(ctx context.Context, id string) (*models.Building, error) {
	var building models.Building
	if err := s.db.WithContext(ctx).First(&building, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &building, nil
}

func (s *GormStore) ListBuildings(ctx context.Context) ([]models.Building, error) {
	var buildings []models.Building
	if err := s.db.WithContext(ctx).Preload("Rooms").Find(&buildings).Error; err != nil {
		return nil, err
	}
	return buildings, nil
}

func (s *GormStore) ListBuildingsByOwner(ctx context.Context, ownerID string) ([]models.Building, error) {
	var buildings []models.Building
	if err := s.db.WithContext(ctx).Preload("Rooms").Where("owner_id = ?", ownerID).Find(&buildings).Error; err != nil {
		return nil, err
	}
	return buildings, nil
}

func (s *GormStore) SaveBuilding(ctx context.Context, building *models.Building) error {
	return s.db.WithContext(ctx).Save(building).Error
}

func (s *GormStore) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := s.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &room, nil
}

func (s *GormStore) ListRoomsByBuilding(ctx context.Context, buildingID string) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.WithContext(ctx).Where("building_id = ?", buildingID).Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *GormStore) SaveRoom(ctx context.Context, room *models.Room) error {
	return s.db.WithContext(ctx).Save(room).Error
}

func (s *GormStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &booking, nil
}

func (s *GormStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Create(booking).Error
}

func (s *GormStore) UpdateBookingStatus(ctx context.Context, id, from, to string) error {
	result := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStateConflict
	}
	return nil
}

func (s *GormStore) ListBookingsByTenant(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *GormStore) ListBookingsByBuildings(ctx context.Context, buildingIDs []string) ([]models.Booking, error) {
	if len(buildingIDs) == 0 {
		return []models.Booking{}, nil
	}
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).Where("building_id IN ?", buildingIDs).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *GormStore) ListPendingBookingsBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", constants.BookingStatusPending, cutoff).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *GormStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	return s.db.WithContext(ctx).Create(txn).Error
}

func (s *GormStore) GetPendingRentPayment(ctx context.Context, bookingID string) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.WithContext(ctx).
		Where("booking_id = ? AND type = ? AND status = ?",
			bookingID, constants.TransactionTypeRentPayment, constants.TransactionStatusPending).
		First(&txn).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &txn, nil
}

func (s *GormStore) SettleTransaction(ctx context.Context, id, newStatus string) error {
	result := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, constants.TransactionStatusPending).
		Update("status", newStatus)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStateConflict
	}
	return nil
}

func (s *GormStore) ListTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	var txns []models.Transaction
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *GormStore) ListCompletedTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, constants.TransactionStatusCompleted).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *GormStore) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return s.db.WithContext(ctx).Create(notification).Error
}

func (s *GormStore) ListNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *GormStore) MarkNotificationRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.WithContext(ctx).First(&notification, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	if !notification.Read {
		if err := s.db.WithContext(ctx).Model(&notification).Update("read", true).Error; err != nil {
			return nil, err
		}
		notification.Read = true
	}
	return &notification, nil
}
