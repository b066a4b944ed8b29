package services

import (
	"context"

	"roomradar/errors"
	"roomradar/models"
	"roomradar/services/logger"
	"roomradar/storage"
)

// NotificationService hộp thư thông báo của user
type NotificationService struct {
	store  storage.Store
	logger logger.Logger
}

func NewNotificationService(store storage.Store, logger logger.Logger) *NotificationService {
	return &NotificationService{
		store:  store,
		logger: logger,
	}
}

// Inbox lấy thông báo của user, mới nhất trước
func (s *NotificationService) Inbox(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.store.ListNotificationsByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể lấy danh sách thông báo", err)
	}
	return notifications, nil
}

// MarkRead bật cờ đã đọc; chỉ chủ sở hữu thông báo được đánh dấu
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) (*models.Notification, error) {
	notification, err := s.store.MarkNotificationRead(ctx, userID, notificationID)
	if err != nil {
		return nil, wrapNotFound(err, "notification not found")
	}
	return notification, nil
}
