package controllers

import (
	"fmt"
	"time"

	"roomradar/constants"
	"roomradar/dto"
	"roomradar/models"
	"roomradar/response"
	"roomradar/services"
	"roomradar/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// BookingController xử lý các endpoint đặt phòng
type BookingController struct {
	service *services.BookingService
	listing *services.ListingService
	rdb     *redis.Client
	logger  logger.Logger
}

func NewBookingController(service *services.BookingService, listing *services.ListingService, rdb *redis.Client, logger logger.Logger) *BookingController {
	return &BookingController{
		service: service,
		listing: listing,
		rdb:     rdb,
		logger:  logger,
	}
}

func (ctl *BookingController) invalidateCache(c *gin.Context) {
	if ctl.rdb == nil {
		return
	}
	for _, pattern := range []string{"bookings:*", "wallet:*"} {
		if err := services.DeleteKeysByPattern(c.Request.Context(), ctl.rdb, pattern); err != nil {
			ctl.logger.Error("Failed to invalidate cache %s: %v", pattern, err)
		}
	}
}

// ownsBuildingOf kiểm tra user có phải chủ tòa nhà của booking không
func (ctl *BookingController) ownsBuildingOf(c *gin.Context, booking *models.Booking, userID string) (bool, error) {
	building, err := ctl.listing.GetBuilding(c.Request.Context(), booking.BuildingID)
	if err != nil {
		return false, err
	}
	return building.OwnerID == userID, nil
}

// QuoteCost báo giá một kỳ thuê
func (ctl *BookingController) QuoteCost(c *gin.Context) {
	var req dto.BookingCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	detail, err := ctl.service.QuoteCost(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, detail)
}

// Create người thuê tạo đơn đặt phòng
func (ctl *BookingController) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	userID := c.GetString("userID")
	booking, err := ctl.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	ctl.invalidateCache(c)
	response.Success(c, booking)
}

// List lấy danh sách booking theo vai trò: chủ nhà thấy đơn trên các
// tòa nhà của mình, người thuê thấy đơn mình đặt.
func (ctl *BookingController) List(c *gin.Context) {
	userID := c.GetString("userID")
	role := c.GetInt("role")
	cacheKey := fmt.Sprintf("bookings:user:%s:role:%d", userID, role)

	if ctl.rdb != nil {
		var cached []models.Booking
		if err := services.GetFromRedis(c.Request.Context(), ctl.rdb, cacheKey, &cached); err == nil && cached != nil {
			response.Success(c, cached)
			return
		}
	}

	var bookings []models.Booking
	var err error
	if role == constants.RoleLandlord || role == constants.RoleAdmin {
		bookings, err = ctl.service.ListForOwner(c.Request.Context(), userID)
	} else {
		bookings, err = ctl.service.ListForTenant(c.Request.Context(), userID)
	}
	if err != nil {
		handleError(c, err)
		return
	}

	if ctl.rdb != nil {
		if err := services.SetToRedis(c.Request.Context(), ctl.rdb, cacheKey, bookings, time.Minute); err != nil {
			ctl.logger.Error("Failed to cache bookings for user %s: %v", userID, err)
		}
	}
	response.Success(c, bookings)
}

// Get lấy một booking; chỉ người đặt hoặc chủ tòa nhà được xem
func (ctl *BookingController) Get(c *gin.Context) {
	bookingID := c.Param("id")
	userID := c.GetString("userID")
	role := c.GetInt("role")

	booking, err := ctl.service.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		handleError(c, err)
		return
	}

	if booking.UserID != userID && role != constants.RoleAdmin {
		owns, err := ctl.ownsBuildingOf(c, booking, userID)
		if err != nil {
			handleError(c, err)
			return
		}
		if !owns {
			response.Forbidden(c)
			return
		}
	}

	detail, err := ctl.service.ToResponse(c.Request.Context(), booking)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, detail)
}

// Approve chủ nhà duyệt đơn trên tòa nhà của mình
func (ctl *BookingController) Approve(c *gin.Context) {
	bookingID := c.Param("id")
	userID := c.GetString("userID")

	booking, err := ctl.service.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		handleError(c, err)
		return
	}
	owns, err := ctl.ownsBuildingOf(c, booking, userID)
	if err != nil {
		handleError(c, err)
		return
	}
	if !owns {
		response.Forbidden(c)
		return
	}

	updated, err := ctl.service.Approve(c.Request.Context(), bookingID)
	if err != nil {
		handleError(c, err)
		return
	}

	ctl.invalidateCache(c)
	response.Success(c, updated)
}

// Decline chủ nhà từ chối đơn trên tòa nhà của mình
func (ctl *BookingController) Decline(c *gin.Context) {
	bookingID := c.Param("id")
	userID := c.GetString("userID")

	booking, err := ctl.service.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		handleError(c, err)
		return
	}
	owns, err := ctl.ownsBuildingOf(c, booking, userID)
	if err != nil {
		handleError(c, err)
		return
	}
	if !owns {
		response.Forbidden(c)
		return
	}

	updated, err := ctl.service.Decline(c.Request.Context(), bookingID)
	if err != nil {
		handleError(c, err)
		return
	}

	ctl.invalidateCache(c)
	response.Success(c, updated)
}

// Cancel người thuê hủy đơn mình đặt
func (ctl *BookingController) Cancel(c *gin.Context) {
	bookingID := c.Param("id")
	userID := c.GetString("userID")

	booking, err := ctl.service.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		handleError(c, err)
		return
	}
	if booking.UserID != userID {
		response.Forbidden(c)
		return
	}

	updated, err := ctl.service.Cancel(c.Request.Context(), bookingID)
	if err != nil {
		handleError(c, err)
		return
	}

	ctl.invalidateCache(c)
	response.Success(c, updated)
}
