package builders

import (
	"roomradar/constants"
	"roomradar/models"
)

// BookingBuilder dựng một booking mới ở trạng thái pending
type BookingBuilder struct {
	booking models.Booking
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: models.Booking{
			Status: constants.BookingStatusPending,
		},
	}
}

func (b *BookingBuilder) WithTenant(userID string) *BookingBuilder {
	b.booking.UserID = userID
	return b
}

func (b *BookingBuilder) WithBuilding(building *models.Building) *BookingBuilder {
	b.booking.BuildingID = building.ID
	b.booking.BuildingName = building.Name
	b.booking.BuildingAddress = building.Address
	if len(building.Images) > 0 {
		b.booking.ImageURL = building.Images[0]
	}
	return b
}

func (b *BookingBuilder) WithRoom(room *models.Room) *BookingBuilder {
	b.booking.RoomID = room.ID
	b.booking.RoomName = room.Name
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut string) *BookingBuilder {
	b.booking.CheckIn = checkIn
	b.booking.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithTotalPrice(total float64) *BookingBuilder {
	b.booking.TotalPrice = total
	return b
}

func (b *BookingBuilder) Build() *models.Booking {
	booking := b.booking
	return &booking
}
