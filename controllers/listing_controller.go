package controllers

import (
	"time"

	"roomradar/dto"
	"roomradar/models"
	"roomradar/response"
	"roomradar/services"
	"roomradar/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const buildingsCacheKey = "buildings:all"

// ListingController xử lý các endpoint tòa nhà và phòng
type ListingController struct {
	service *services.ListingService
	rdb     *redis.Client
	logger  logger.Logger
}

func NewListingController(service *services.ListingService, rdb *redis.Client, logger logger.Logger) *ListingController {
	return &ListingController{
		service: service,
		rdb:     rdb,
		logger:  logger,
	}
}

func (ctl *ListingController) invalidateCache(c *gin.Context) {
	if ctl.rdb == nil {
		return
	}
	if err := services.DeleteFromRedis(c.Request.Context(), ctl.rdb, buildingsCacheKey); err != nil {
		ctl.logger.Error("Failed to invalidate buildings cache: %v", err)
	}
}

// ListBuildings danh sách tòa nhà đang đăng, có cache
func (ctl *ListingController) ListBuildings(c *gin.Context) {
	if ctl.rdb != nil {
		var cached []models.Building
		if err := services.GetFromRedis(c.Request.Context(), ctl.rdb, buildingsCacheKey, &cached); err == nil && cached != nil {
			response.Success(c, cached)
			return
		}
	}

	buildings, err := ctl.service.ListBuildings(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	if ctl.rdb != nil {
		if err := services.SetToRedis(c.Request.Context(), ctl.rdb, buildingsCacheKey, buildings, 2*time.Minute); err != nil {
			ctl.logger.Error("Failed to cache buildings: %v", err)
		}
	}
	response.Success(c, buildings)
}

// MyBuildings danh sách tòa nhà của chủ nhà đang đăng nhập
func (ctl *ListingController) MyBuildings(c *gin.Context) {
	ownerID := c.GetString("userID")
	buildings, err := ctl.service.ListBuildingsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, buildings)
}

// GetBuilding chi tiết một tòa nhà
func (ctl *ListingController) GetBuilding(c *gin.Context) {
	building, err := ctl.service.GetBuilding(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, building)
}

// SaveBuilding tạo hoặc cập nhật tòa nhà của chủ nhà
func (ctl *ListingController) SaveBuilding(c *gin.Context) {
	var req dto.BuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	ownerID := c.GetString("userID")
	building, err := ctl.service.SaveBuilding(c.Request.Context(), ownerID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	ctl.invalidateCache(c)
	response.Success(c, building)
}

// ListRooms danh sách phòng trong một tòa nhà
func (ctl *ListingController) ListRooms(c *gin.Context) {
	rooms, err := ctl.service.ListRooms(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, rooms)
}

// GetRoom chi tiết một phòng
func (ctl *ListingController) GetRoom(c *gin.Context) {
	room, err := ctl.service.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, room)
}

// SaveRoom tạo hoặc cập nhật bảng giá phòng trong tòa nhà của chủ nhà
func (ctl *ListingController) SaveRoom(c *gin.Context) {
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	ownerID := c.GetString("userID")
	room, err := ctl.service.SaveRoom(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}

	ctl.invalidateCache(c)
	response.Success(c, room)
}
