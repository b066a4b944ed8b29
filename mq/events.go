package mq

import "time"

// Routing keys cho event booking và ví
const (
	RouteBookingCreated   = "booking.created"
	RouteBookingConfirmed = "booking.confirmed"
	RouteBookingDeclined  = "booking.declined"
	RouteBookingCancelled = "booking.cancelled"
	RouteWalletTopUp      = "wallet.topup"
	RouteWalletWithdrawal = "wallet.withdrawal"
)

// BookingEvent payload cho các event vòng đời booking
type BookingEvent struct {
	BookingID  string    `json:"bookingId"`
	TenantID   string    `json:"tenantId"`
	OwnerID    string    `json:"ownerId"`
	RoomID     string    `json:"roomId"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"totalPrice"`
	OccurredAt time.Time `json:"occurredAt"`
}

// WalletEvent payload cho các event biến động ví
type WalletEvent struct {
	UserID     string    `json:"userId"`
	Type       string    `json:"type"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurredAt"`
}
