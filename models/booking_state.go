package models

import (
	"errors"

	"roomradar/constants"
)

// BookingState định nghĩa interface cho các trạng thái booking
type BookingState interface {
	Approve(booking *Booking) error
	Decline(booking *Booking) error
	Cancel(booking *Booking) error
}

// PendingState trạng thái chờ chủ nhà duyệt
type PendingState struct{}

func (s *PendingState) Approve(booking *Booking) error {
	booking.Status = constants.BookingStatusConfirmed
	return nil
}

func (s *PendingState) Decline(booking *Booking) error {
	booking.Status = constants.BookingStatusDeclined
	return nil
}

func (s *PendingState) Cancel(booking *Booking) error {
	booking.Status = constants.BookingStatusCancelled
	return nil
}

// ConfirmedState trạng thái đã duyệt (terminal)
type ConfirmedState struct{}

func (s *ConfirmedState) Approve(booking *Booking) error {
	return errors.New("booking already confirmed")
}

func (s *ConfirmedState) Decline(booking *Booking) error {
	return errors.New("cannot decline confirmed booking")
}

func (s *ConfirmedState) Cancel(booking *Booking) error {
	return errors.New("cannot cancel confirmed booking")
}

// DeclinedState trạng thái bị từ chối (terminal)
type DeclinedState struct{}

func (s *DeclinedState) Approve(booking *Booking) error {
	return errors.New("cannot approve declined booking")
}

func (s *DeclinedState) Decline(booking *Booking) error {
	return errors.New("booking already declined")
}

func (s *DeclinedState) Cancel(booking *Booking) error {
	return errors.New("cannot cancel declined booking")
}

// CancelledState trạng thái đã hủy (terminal)
type CancelledState struct{}

func (s *CancelledState) Approve(booking *Booking) error {
	return errors.New("cannot approve cancelled booking")
}

func (s *CancelledState) Decline(booking *Booking) error {
	return errors.New("cannot decline cancelled booking")
}

func (s *CancelledState) Cancel(booking *Booking) error {
	return errors.New("booking already cancelled")
}

// GetBookingState trả về state tương ứng với trạng thái booking
func GetBookingState(status string) BookingState {
	switch status {
	case constants.BookingStatusPending:
		return &PendingState{}
	case constants.BookingStatusConfirmed:
		return &ConfirmedState{}
	case constants.BookingStatusDeclined:
		return &DeclinedState{}
	case constants.BookingStatusCancelled:
		return &CancelledState{}
	default:
		return &PendingState{}
	}
}
