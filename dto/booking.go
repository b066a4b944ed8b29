package dto

import "time"

// CreateBookingRequest yêu cầu đặt phòng; ngày theo định dạng yyyy-mm-dd
type CreateBookingRequest struct {
	BuildingID string  `json:"buildingId" binding:"required"`
	RoomID     string  `json:"roomId" binding:"required"`
	CheckIn    string  `json:"checkIn" binding:"required"`
	CheckOut   string  `json:"checkOut" binding:"required"`
	TotalPrice float64 `json:"totalPrice" binding:"required,gt=0"`
}

// BookingResponse là DTO cho response của booking
type BookingResponse struct {
	ID              string    `json:"id"`
	Tenant          Actor     `json:"tenant"`
	BuildingID      string    `json:"buildingId"`
	RoomID          string    `json:"roomId"`
	BuildingName    string    `json:"buildingName"`
	BuildingAddress string    `json:"buildingAddress"`
	RoomName        string    `json:"roomName"`
	ImageURL        string    `json:"imageUrl"`
	CheckIn         string    `json:"checkIn"`
	CheckOut        string    `json:"checkOut"`
	TotalPrice      float64   `json:"totalPrice"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BookingCostRequest khoảng ngày cần báo giá cho một phòng
type BookingCostRequest struct {
	RoomID   string `json:"roomId" binding:"required"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// BookingCostDetail kết quả của pricing engine
type BookingCostDetail struct {
	Days               int     `json:"days"`
	RentalPrice        float64 `json:"rentalPrice"`
	Deposit            float64 `json:"deposit"`
	PlatformFee        float64 `json:"platformFee"`
	TotalBookingAmount float64 `json:"totalBookingAmount"`
}
