package dto

// BuildingRequest tạo/cập nhật tòa nhà của chủ nhà
type BuildingRequest struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" binding:"required"`
	Address      string   `json:"address" binding:"required"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	Latitude     float64  `json:"lat"`
	Longitude    float64  `json:"lng"`
	TimeCheckIn  string   `json:"checkIn"`
	TimeCheckOut string   `json:"checkOut"`
}

// RoomRequest tạo/cập nhật bảng giá phòng
type RoomRequest struct {
	ID             string   `json:"id"`
	Name           string   `json:"name" binding:"required"`
	RoomType       string   `json:"roomType"`
	PriceMonthly   float64  `json:"priceMonthly"`
	PriceWeekly    float64  `json:"priceWeekly"`
	PriceDaily     float64  `json:"priceDaily"`
	DepositMonthly float64  `json:"depositMonthly"`
	DepositWeekly  float64  `json:"depositWeekly"`
	DepositDaily   float64  `json:"depositDaily"`
	Amenities      []string `json:"amenities"`
	Images         []string `json:"images"`
}
