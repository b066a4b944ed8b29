package services

import (
	"context"
	"fmt"
	"time"

	"roomradar/builders"
	"roomradar/constants"
	"roomradar/dto"
	"roomradar/errors"
	"roomradar/models"
	"roomradar/mq"
	"roomradar/services/logger"
	"roomradar/services/notification"
	"roomradar/storage"
)

// EventPublisher đẩy event nghiệp vụ ra message broker
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, payload interface{}) error
}

// BookingService xử lý vòng đời đơn đặt phòng. Mọi chuyển đổi trạng thái
// cùng các bản ghi sổ cái và thông báo đi kèm được ghi trong một đơn vị
// nguyên tử của store.
type BookingService struct {
	store    storage.Store
	logger   logger.Logger
	notifier notification.Service
	events   EventPublisher
}

func NewBookingService(store storage.Store, logger logger.Logger, notifier notification.Service, events EventPublisher) *BookingService {
	return &BookingService{
		store:    store,
		logger:   logger,
		notifier: notifier,
		events:   events,
	}
}

func displayName(user *models.User) string {
	if user.Name != "" {
		return user.Name
	}
	return user.FirstName + " " + user.LastName
}

func wrapNotFound(err error, message string) error {
	if err == storage.ErrNotFound {
		return errors.NewAppError(errors.ErrCodeNotFound, message, err)
	}
	return errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn dữ liệu", err)
}

// broadcast đẩy thông báo realtime và event ra broker sau khi commit;
// lỗi ở đây không làm hỏng giao dịch đã ghi.
func (s *BookingService) broadcast(ctx context.Context, routingKey string, booking *models.Booking, ownerID string) {
	if s.notifier != nil {
		if err := s.notifier.SendMessage(notification.BookingMessage(booking.ID, booking.Status)); err != nil {
			s.logger.Error("Failed to broadcast booking %s: %v", booking.ID, err)
		}
	}
	if s.events != nil {
		event := mq.BookingEvent{
			BookingID:  booking.ID,
			TenantID:   booking.UserID,
			OwnerID:    ownerID,
			RoomID:     booking.RoomID,
			Status:     booking.Status,
			TotalPrice: booking.TotalPrice,
			OccurredAt: time.Now(),
		}
		if err := s.events.PublishJSON(ctx, routingKey, event); err != nil {
			s.logger.Error("Failed to publish booking event %s: %v", booking.ID, err)
		}
	}
}

// QuoteCost báo giá một kỳ thuê cho phòng
func (s *BookingService) QuoteCost(ctx context.Context, req dto.BookingCostRequest) (*dto.BookingCostDetail, error) {
	room, err := s.store.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, wrapNotFound(err, "room not found")
	}

	var checkIn, checkOut *time.Time
	if t, err := ParseBookingDate(req.CheckIn); err == nil {
		checkIn = &t
	}
	if t, err := ParseBookingDate(req.CheckOut); err == nil {
		checkOut = &t
	}

	detail := CalculateBookingCosts(room, checkIn, checkOut)
	return &detail, nil
}

// Create tạo đơn đặt phòng pending kèm bản ghi giữ tiền thuê và thông
// báo cho chủ nhà, tất cả trong một đơn vị ghi.
func (s *BookingService) Create(ctx context.Context, tenantID string, req dto.CreateBookingRequest) (*models.Booking, error) {
	checkIn, err := ParseBookingDate(req.CheckIn)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Ngày nhận phòng không hợp lệ", err)
	}
	checkOut, err := ParseBookingDate(req.CheckOut)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Ngày trả phòng không hợp lệ", err)
	}
	if checkOut.Before(checkIn) {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}

	tenant, err := s.store.GetUser(ctx, tenantID)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}
	building, err := s.store.GetBuilding(ctx, req.BuildingID)
	if err != nil {
		return nil, wrapNotFound(err, "building not found")
	}
	room, err := s.store.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, wrapNotFound(err, "room not found")
	}

	booking := builders.NewBookingBuilder().
		WithTenant(tenantID).
		WithBuilding(building).
		WithRoom(room).
		WithStay(req.CheckIn, req.CheckOut).
		WithTotalPrice(req.TotalPrice).
		Build()

	err = s.store.Tx(ctx, func(tx storage.Store) error {
		if err := tx.CreateBooking(ctx, booking); err != nil {
			return err
		}

		hold := &models.Transaction{
			UserID:    tenantID,
			BookingID: booking.ID,
			Type:      constants.TransactionTypeRentPayment,
			Amount:    booking.TotalPrice,
			Status:    constants.TransactionStatusPending,
		}
		if err := appendTransaction(ctx, tx, hold); err != nil {
			return err
		}

		return tx.CreateNotification(ctx, &models.Notification{
			UserID:  building.OwnerID,
			Type:    constants.NotificationNewBooking,
			Message: fmt.Sprintf("%s vừa yêu cầu đặt phòng \"%s\" tại %s.", displayName(tenant), room.Name, building.Name),
			Link:    "/bookings",
		})
	})
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			return nil, appErr
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể tạo đơn đặt phòng", err)
	}

	s.broadcast(ctx, mq.RouteBookingCreated, booking, building.OwnerID)
	return booking, nil
}

// Approve chủ nhà duyệt đơn: chốt bản ghi giữ tiền thuê thành Completed
// và ghi Payout cho chủ nhà. Không có bản ghi giữ tiền thì đơn giữ
// nguyên pending và không ghi gì.
func (s *BookingService) Approve(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, wrapNotFound(err, "booking not found")
	}

	if err := models.GetBookingState(booking.Status).Approve(booking); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidState, err.Error(), err)
	}

	hold, err := s.store.GetPendingRentPayment(ctx, bookingID)
	if err != nil {
		return nil, wrapNotFound(err, "pending transaction not found")
	}

	building, err := s.store.GetBuilding(ctx, booking.BuildingID)
	if err != nil {
		return nil, wrapNotFound(err, "building not found")
	}

	err = s.store.Tx(ctx, func(tx storage.Store) error {
		if err := tx.UpdateBookingStatus(ctx, bookingID, constants.BookingStatusPending, constants.BookingStatusConfirmed); err != nil {
			return err
		}
		if err := tx.SettleTransaction(ctx, hold.ID, constants.TransactionStatusCompleted); err != nil {
			return err
		}

		payout := &models.Transaction{
			UserID:    building.OwnerID,
			BookingID: booking.ID,
			Type:      constants.TransactionTypePayout,
			Amount:    booking.TotalPrice,
			Status:    constants.TransactionStatusCompleted,
		}
		if err := appendTransaction(ctx, tx, payout); err != nil {
			return err
		}

		return tx.CreateNotification(ctx, &models.Notification{
			UserID:  booking.UserID,
			Type:    constants.NotificationBookingUpdate,
			Message: fmt.Sprintf("Đơn đặt phòng \"%s\" tại %s đã được xác nhận.", booking.RoomName, booking.BuildingName),
			Link:    "/my-bookings",
		})
	})
	if err != nil {
		if err == storage.ErrStateConflict {
			return nil, errors.NewAppError(errors.ErrCodeInvalidState, "booking is no longer pending", err)
		}
		if appErr := errors.GetAppError(err); appErr != nil {
			return nil, appErr
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể duyệt đơn đặt phòng", err)
	}

	s.broadcast(ctx, mq.RouteBookingConfirmed, booking, building.OwnerID)
	return booking, nil
}

// Decline chủ nhà từ chối đơn: hoàn bản ghi giữ tiền về Failed. Đơn
// không có bản ghi giữ tiền vẫn từ chối được, chỉ ghi log.
func (s *BookingService) Decline(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, wrapNotFound(err, "booking not found")
	}

	if err := models.GetBookingState(booking.Status).Decline(booking); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidState, err.Error(), err)
	}

	err = s.store.Tx(ctx, func(tx storage.Store) error {
		if err := tx.UpdateBookingStatus(ctx, bookingID, constants.BookingStatusPending, constants.BookingStatusDeclined); err != nil {
			return err
		}

		hold, err := tx.GetPendingRentPayment(ctx, bookingID)
		if err == nil {
			if err := tx.SettleTransaction(ctx, hold.ID, constants.TransactionStatusFailed); err != nil {
				return err
			}
		} else if err == storage.ErrNotFound {
			s.logger.Error("Declined booking %s has no pending rent payment", bookingID)
		} else {
			return err
		}

		return tx.CreateNotification(ctx, &models.Notification{
			UserID:  booking.UserID,
			Type:    constants.NotificationBookingUpdate,
			Message: fmt.Sprintf("Đơn đặt phòng \"%s\" tại %s đã bị từ chối.", booking.RoomName, booking.BuildingName),
			Link:    "/my-bookings",
		})
	})
	if err != nil {
		if err == storage.ErrStateConflict {
			return nil, errors.NewAppError(errors.ErrCodeInvalidState, "booking is no longer pending", err)
		}
		if appErr := errors.GetAppError(err); appErr != nil {
			return nil, appErr
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể từ chối đơn đặt phòng", err)
	}

	s.broadcast(ctx, mq.RouteBookingDeclined, booking, "")
	return booking, nil
}

// Cancel người thuê hủy đơn pending: hoàn bản ghi giữ tiền về Failed và
// thu phí hủy gồm phí nền tảng cộng tiền cọc của kỳ thuê.
func (s *BookingService) Cancel(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, wrapNotFound(err, "booking not found")
	}

	if err := models.GetBookingState(booking.Status).Cancel(booking); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidState, err.Error(), err)
	}

	room, err := s.store.GetRoom(ctx, booking.RoomID)
	if err != nil {
		return nil, wrapNotFound(err, "room not found")
	}
	building, err := s.store.GetBuilding(ctx, booking.BuildingID)
	if err != nil {
		return nil, wrapNotFound(err, "building not found")
	}

	err = s.store.Tx(ctx, func(tx storage.Store) error {
		if err := tx.UpdateBookingStatus(ctx, bookingID, constants.BookingStatusPending, constants.BookingStatusCancelled); err != nil {
			return err
		}

		hold, err := tx.GetPendingRentPayment(ctx, bookingID)
		switch err {
		case nil:
			if err := tx.SettleTransaction(ctx, hold.ID, constants.TransactionStatusFailed); err != nil {
				return err
			}

			var checkIn, checkOut *time.Time
			if t, err := ParseBookingDate(booking.CheckIn); err == nil {
				checkIn = &t
			}
			if t, err := ParseBookingDate(booking.CheckOut); err == nil {
				checkOut = &t
			}
			days := BookingDays(checkIn, checkOut)

			fee := &models.Transaction{
				UserID:    booking.UserID,
				BookingID: booking.ID,
				Type:      constants.TransactionTypeCancellationFee,
				Amount:    CancellationFee(room, days, hold.Amount),
				Status:    constants.TransactionStatusCompleted,
			}
			if err := appendTransaction(ctx, tx, fee); err != nil {
				return err
			}
		case storage.ErrNotFound:
			// Không có bản ghi giữ tiền thì không có gì để thu phí
			s.logger.Error("Cancelled booking %s has no pending rent payment, skipping fee", bookingID)
		default:
			return err
		}

		return tx.CreateNotification(ctx, &models.Notification{
			UserID:  building.OwnerID,
			Type:    constants.NotificationBookingUpdate,
			Message: fmt.Sprintf("Đơn đặt phòng \"%s\" tại %s vừa bị người thuê hủy.", booking.RoomName, booking.BuildingName),
			Link:    "/bookings",
		})
	})
	if err != nil {
		if err == storage.ErrStateConflict {
			return nil, errors.NewAppError(errors.ErrCodeInvalidState, "booking is no longer pending", err)
		}
		if appErr := errors.GetAppError(err); appErr != nil {
			return nil, appErr
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể hủy đơn đặt phòng", err)
	}

	s.broadcast(ctx, mq.RouteBookingCancelled, booking, building.OwnerID)
	return booking, nil
}

// ToResponse gắn thông tin người thuê vào booking cho response chi tiết
func (s *BookingService) ToResponse(ctx context.Context, booking *models.Booking) (*dto.BookingResponse, error) {
	tenant, err := s.store.GetUser(ctx, booking.UserID)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}
	return &dto.BookingResponse{
		ID: booking.ID,
		Tenant: dto.Actor{
			ID:          tenant.ID,
			Name:        displayName(tenant),
			Email:       tenant.Email,
			PhoneNumber: tenant.PhoneNumber,
			AvatarURL:   tenant.AvatarURL,
		},
		BuildingID:      booking.BuildingID,
		RoomID:          booking.RoomID,
		BuildingName:    booking.BuildingName,
		BuildingAddress: booking.BuildingAddress,
		RoomName:        booking.RoomName,
		ImageURL:        booking.ImageURL,
		CheckIn:         booking.CheckIn,
		CheckOut:        booking.CheckOut,
		TotalPrice:      booking.TotalPrice,
		Status:          booking.Status,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}, nil
}

// GetByID lấy một booking
func (s *BookingService) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, wrapNotFound(err, "booking not found")
	}
	return booking, nil
}

// ListForTenant lấy danh sách booking của người thuê, mới nhất trước
func (s *BookingService) ListForTenant(ctx context.Context, tenantID string) ([]models.Booking, error) {
	bookings, err := s.store.ListBookingsByTenant(ctx, tenantID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể lấy danh sách đặt phòng", err)
	}
	return bookings, nil
}

// ListForOwner lấy danh sách booking trên mọi tòa nhà của chủ nhà
func (s *BookingService) ListForOwner(ctx context.Context, ownerID string) ([]models.Booking, error) {
	buildings, err := s.store.ListBuildingsByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể lấy danh sách tòa nhà", err)
	}
	if len(buildings) == 0 {
		return []models.Booking{}, nil
	}

	buildingIDs := make([]string, 0, len(buildings))
	for _, building := range buildings {
		buildingIDs = append(buildingIDs, building.ID)
	}

	bookings, err := s.store.ListBookingsByBuildings(ctx, buildingIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể lấy danh sách đặt phòng", err)
	}
	return bookings, nil
}

// NotifyStalePending nhắc chủ nhà các đơn pending quá hạn, trả về số
// đơn đã nhắc. Chạy định kỳ bởi cron job.
func (s *BookingService) NotifyStalePending(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	bookings, err := s.store.ListPendingBookingsBefore(ctx, cutoff)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDBError, "Không thể lấy danh sách đơn quá hạn", err)
	}

	reminded := 0
	for _, booking := range bookings {
		building, err := s.store.GetBuilding(ctx, booking.BuildingID)
		if err != nil {
			s.logger.Error("Stale booking %s references missing building %s", booking.ID, booking.BuildingID)
			continue
		}

		err = s.store.CreateNotification(ctx, &models.Notification{
			UserID:  building.OwnerID,
			Type:    constants.NotificationBookingUpdate,
			Message: fmt.Sprintf("Đơn đặt phòng \"%s\" tại %s đang chờ duyệt quá lâu.", booking.RoomName, booking.BuildingName),
			Link:    "/bookings",
		})
		if err != nil {
			s.logger.Error("Failed to create reminder for booking %s: %v", booking.ID, err)
			continue
		}
		reminded++
	}
	return reminded, nil
}
