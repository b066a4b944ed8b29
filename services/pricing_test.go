package services

import (
	"math"
	"testing"
	"time"

	"roomradar/dto"
	"roomradar/models"
)

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	parsed, err := ParseBookingDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return &parsed
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBookingDays(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"khoảng 10 ngày tính cả hai đầu", "2025-03-01", "2025-03-10", 10},
		{"cùng ngày là 1 ngày", "2025-03-01", "2025-03-01", 1},
		{"khoảng ngược trả về 0", "2025-03-10", "2025-03-01", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BookingDays(date(t, tt.checkIn), date(t, tt.checkOut))
			if got != tt.want {
				t.Errorf("BookingDays() = %d, want %d", got, tt.want)
			}
		})
	}

	if got := BookingDays(nil, date(t, "2025-03-01")); got != 0 {
		t.Errorf("BookingDays(nil, _) = %d, want 0", got)
	}
	if got := BookingDays(date(t, "2025-03-01"), nil); got != 0 {
		t.Errorf("BookingDays(_, nil) = %d, want 0", got)
	}
}

func TestDailyRate(t *testing.T) {
	room := &models.Room{PriceDaily: 40, PriceMonthly: 900}
	if got := DailyRate(room); !almostEqual(got, 40) {
		t.Errorf("DailyRate với giá ngày = %v, want 40", got)
	}

	room = &models.Room{PriceMonthly: 900}
	if got := DailyRate(room); !almostEqual(got, 30) {
		t.Errorf("DailyRate suy từ giá tháng = %v, want 30", got)
	}
}

func TestDepositForStay(t *testing.T) {
	tests := []struct {
		name string
		room models.Room
		days int
		want float64
	}{
		{"từ 28 ngày dùng cọc tháng", models.Room{DepositMonthly: 800, DepositWeekly: 200, DepositDaily: 30}, 30, 800},
		{"từ 7 ngày dùng cọc tuần", models.Room{DepositMonthly: 800, DepositWeekly: 200, DepositDaily: 30}, 10, 200},
		{"dưới 7 ngày dùng cọc ngày", models.Room{DepositMonthly: 800, DepositWeekly: 200, DepositDaily: 30}, 3, 30},
		{"không có cọc ngày rơi về cọc tháng", models.Room{DepositMonthly: 800}, 3, 800},
		{"phòng không cấu hình cọc", models.Room{}, 10, 0},
		{"0 ngày không có cọc", models.Room{DepositMonthly: 800}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DepositForStay(&tt.room, tt.days); !almostEqual(got, tt.want) {
				t.Errorf("DepositForStay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateBookingCosts(t *testing.T) {
	room := &models.Room{PriceDaily: 40, DepositMonthly: 800}

	detail := CalculateBookingCosts(room, date(t, "2025-03-01"), date(t, "2025-03-10"))
	if detail.Days != 10 {
		t.Fatalf("Days = %d, want 10", detail.Days)
	}
	if !almostEqual(detail.RentalPrice, 400) {
		t.Errorf("RentalPrice = %v, want 400", detail.RentalPrice)
	}
	if !almostEqual(detail.Deposit, 800) {
		t.Errorf("Deposit = %v, want 800", detail.Deposit)
	}
	if !almostEqual(detail.PlatformFee, 80) {
		t.Errorf("PlatformFee = %v, want 80", detail.PlatformFee)
	}
	if !almostEqual(detail.TotalBookingAmount, 1280) {
		t.Errorf("TotalBookingAmount = %v, want 1280", detail.TotalBookingAmount)
	}
}

func TestCalculateBookingCostsInvariants(t *testing.T) {
	rooms := []models.Room{
		{PriceDaily: 40, DepositMonthly: 800},
		{PriceMonthly: 900, DepositWeekly: 150},
		{PriceDaily: 25.5, DepositDaily: 10},
	}
	ranges := [][2]string{
		{"2025-01-01", "2025-01-03"},
		{"2025-01-01", "2025-01-10"},
		{"2025-01-01", "2025-02-15"},
	}

	for _, room := range rooms {
		for _, r := range ranges {
			detail := CalculateBookingCosts(&room, date(t, r[0]), date(t, r[1]))
			if !almostEqual(detail.TotalBookingAmount, detail.RentalPrice+detail.Deposit+detail.PlatformFee) {
				t.Errorf("tổng %v không bằng thuê %v + cọc %v + phí %v",
					detail.TotalBookingAmount, detail.RentalPrice, detail.Deposit, detail.PlatformFee)
			}
			if !almostEqual(detail.PlatformFee, detail.RentalPrice*0.2) {
				t.Errorf("phí %v không bằng 20%% tiền thuê %v", detail.PlatformFee, detail.RentalPrice)
			}
		}
	}
}

func TestCalculateBookingCostsEmptyRange(t *testing.T) {
	room := &models.Room{PriceDaily: 40, DepositMonthly: 800}

	detail := CalculateBookingCosts(room, nil, nil)
	if detail != (dto.BookingCostDetail{}) {
		t.Errorf("thiếu ngày phải trả về chi phí rỗng, got %+v", detail)
	}

	detail = CalculateBookingCosts(room, date(t, "2025-03-10"), date(t, "2025-03-01"))
	if detail != (dto.BookingCostDetail{}) {
		t.Errorf("khoảng ngược phải trả về chi phí rỗng, got %+v", detail)
	}
}

func TestCancellationFee(t *testing.T) {
	room := &models.Room{PriceDaily: 40, DepositMonthly: 800}

	// Giữ 480 = 400 thuê + 80 phí, cọc tháng 800
	fee := CancellationFee(room, 10, 480)
	if !almostEqual(fee, 880) {
		t.Errorf("CancellationFee = %v, want 880", fee)
	}
}
