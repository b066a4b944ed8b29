package services

import (
	"math"
	"time"

	"roomradar/constants"
	"roomradar/dto"
	"roomradar/models"
)

// DateLayout là định dạng ngày dùng cho check-in/check-out
const DateLayout = "2006-01-02"

// ParseBookingDate parse chuỗi ngày yyyy-mm-dd
func ParseBookingDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// BookingDays tính số ngày thuê, tính cả ngày nhận và ngày trả phòng.
// Thiếu ngày hoặc khoảng ngày ngược trả về 0.
func BookingDays(checkIn, checkOut *time.Time) int {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	diff := checkOut.Sub(*checkIn).Hours() / 24
	if diff < 0 {
		return 0
	}
	return int(math.Ceil(diff)) + 1
}

// DailyRate lấy đơn giá theo ngày của phòng, suy ra từ giá tháng nếu
// phòng không có giá ngày.
func DailyRate(room *models.Room) float64 {
	if room.PriceDaily > 0 {
		return room.PriceDaily
	}
	return room.PriceMonthly / 30
}

// DepositForStay chọn mức cọc theo độ dài kỳ thuê: từ 28 ngày ưu tiên
// cọc tháng, từ 7 ngày ưu tiên cọc tuần, ngắn hơn dùng cọc ngày, cuối
// cùng rơi về cọc tháng nếu có.
func DepositForStay(room *models.Room, days int) float64 {
	if days <= 0 {
		return 0
	}
	if days >= 28 && room.DepositMonthly > 0 {
		return room.DepositMonthly
	}
	if days >= 7 && room.DepositWeekly > 0 {
		return room.DepositWeekly
	}
	if room.DepositDaily > 0 {
		return room.DepositDaily
	}
	return room.DepositMonthly
}

// CalculateBookingCosts tính chi tiết chi phí một đơn đặt phòng
func CalculateBookingCosts(room *models.Room, checkIn, checkOut *time.Time) dto.BookingCostDetail {
	days := BookingDays(checkIn, checkOut)
	if days <= 0 {
		return dto.BookingCostDetail{}
	}

	rentalPrice := float64(days) * DailyRate(room)
	deposit := DepositForStay(room, days)
	platformFee := rentalPrice * constants.PlatformFeeRate

	return dto.BookingCostDetail{
		Days:               days,
		RentalPrice:        rentalPrice,
		Deposit:            deposit,
		PlatformFee:        platformFee,
		TotalBookingAmount: rentalPrice + deposit + platformFee,
	}
}

// CancellationFee tính phí hủy từ số tiền đang treo: suy ngược phần
// tiền thuê từ heldAmount (đã gồm phí nền tảng), cộng lại phí nền tảng
// và tiền cọc của kỳ thuê.
func CancellationFee(room *models.Room, days int, heldAmount float64) float64 {
	rentalPrice := heldAmount / (1 + constants.PlatformFeeRate)
	platformFee := rentalPrice * constants.PlatformFeeRate
	return platformFee + DepositForStay(room, days)
}
