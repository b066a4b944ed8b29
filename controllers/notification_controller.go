package controllers

import (
	"roomradar/response"
	"roomradar/services"
	"roomradar/services/logger"

	"github.com/gin-gonic/gin"
)

// NotificationController hộp thư thông báo của user
type NotificationController struct {
	service *services.NotificationService
	logger  logger.Logger
}

func NewNotificationController(service *services.NotificationService, logger logger.Logger) *NotificationController {
	return &NotificationController{
		service: service,
		logger:  logger,
	}
}

// Inbox danh sách thông báo của user, mới nhất trước
func (ctl *NotificationController) Inbox(c *gin.Context) {
	userID := c.GetString("userID")
	notifications, err := ctl.service.Inbox(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, notifications)
}

// MarkRead đánh dấu một thông báo đã đọc
func (ctl *NotificationController) MarkRead(c *gin.Context) {
	userID := c.GetString("userID")
	notification, err := ctl.service.MarkRead(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, notification)
}
