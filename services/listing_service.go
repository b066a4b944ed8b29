package services

import (
	"context"

	"roomradar/dto"
	"roomradar/errors"
	"roomradar/models"
	"roomradar/services/logger"
	"roomradar/storage"
)

// ListingService quản lý tòa nhà và bảng giá phòng của chủ nhà
type ListingService struct {
	store  storage.Store
	logger logger.Logger
}

func NewListingService(store storage.Store, logger logger.Logger) *ListingService {
	return &ListingService{
		store:  store,
		logger: logger,
	}
}

// ListBuildings lấy tất cả tòa nhà đang đăng
func (s *ListingService) ListBuildings(ctx context.Context) ([]models.Building, error) {
	buildings, err := s.store.ListBuildings(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể lấy danh sách tòa nhà", err)
	}
	return buildings, nil
}

// ListBuildingsByOwner lấy các tòa nhà của một chủ nhà
func (s *ListingService) ListBuildingsByOwner(ctx context.Context, ownerID string) ([]models.Building, error) {
	buildings, err := s.store.ListBuildingsByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể lấy danh sách tòa nhà", err)
	}
	return buildings, nil
}

// GetBuilding lấy một tòa nhà
func (s *ListingService) GetBuilding(ctx context.Context, id string) (*models.Building, error) {
	building, err := s.store.GetBuilding(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "building not found")
	}
	return building, nil
}

// SaveBuilding tạo hoặc cập nhật tòa nhà; cập nhật yêu cầu đúng chủ sở hữu
func (s *ListingService) SaveBuilding(ctx context.Context, ownerID string, req dto.BuildingRequest) (*models.Building, error) {
	building := &models.Building{
		ID:           req.ID,
		OwnerID:      ownerID,
		Name:         req.Name,
		Address:      req.Address,
		Description:  req.Description,
		Images:       req.Images,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		TimeCheckIn:  req.TimeCheckIn,
		TimeCheckOut: req.TimeCheckOut,
	}

	if req.ID != "" {
		existing, err := s.store.GetBuilding(ctx, req.ID)
		if err != nil {
			return nil, wrapNotFound(err, "building not found")
		}
		if existing.OwnerID != ownerID {
			return nil, errors.NewAppError(errors.ErrCodeForbidden, "Bạn không phải chủ sở hữu tòa nhà này", nil)
		}
		building.CreatedAt = existing.CreatedAt
	}

	if err := s.store.SaveBuilding(ctx, building); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể lưu tòa nhà", err)
	}
	return building, nil
}

// GetRoom lấy một phòng
func (s *ListingService) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.store.GetRoom(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "room not found")
	}
	return room, nil
}

// ListRooms lấy các phòng trong một tòa nhà
func (s *ListingService) ListRooms(ctx context.Context, buildingID string) ([]models.Room, error) {
	rooms, err := s.store.ListRoomsByBuilding(ctx, buildingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể lấy danh sách phòng", err)
	}
	return rooms, nil
}

// SaveRoom tạo hoặc cập nhật bảng giá phòng trong tòa nhà của chủ nhà
func (s *ListingService) SaveRoom(ctx context.Context, ownerID, buildingID string, req dto.RoomRequest) (*models.Room, error) {
	building, err := s.store.GetBuilding(ctx, buildingID)
	if err != nil {
		return nil, wrapNotFound(err, "building not found")
	}
	if building.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrCodeForbidden, "Bạn không phải chủ sở hữu tòa nhà này", nil)
	}

	room := &models.Room{
		ID:             req.ID,
		BuildingID:     buildingID,
		OwnerID:        ownerID,
		Name:           req.Name,
		RoomType:       req.RoomType,
		PriceMonthly:   req.PriceMonthly,
		PriceWeekly:    req.PriceWeekly,
		PriceDaily:     req.PriceDaily,
		DepositMonthly: req.DepositMonthly,
		DepositWeekly:  req.DepositWeekly,
		DepositDaily:   req.DepositDaily,
		Amenities:      req.Amenities,
		Images:         req.Images,
	}

	if req.ID != "" {
		existing, err := s.store.GetRoom(ctx, req.ID)
		if err != nil {
			return nil, wrapNotFound(err, "room not found")
		}
		if existing.OwnerID != ownerID {
			return nil, errors.NewAppError(errors.ErrCodeForbidden, "Bạn không phải chủ sở hữu phòng này", nil)
		}
		room.CreatedAt = existing.CreatedAt
	}

	if err := s.store.SaveRoom(ctx, room); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể lưu phòng", err)
	}
	return room, nil
}
