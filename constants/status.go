package constants

// User role
const (
	RoleTenant   = 0
	RoleAdmin    = 1
	RoleLandlord = 2
)

// Booking status
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusDeclined  = "declined"
	BookingStatusCancelled = "cancelled"
)

// Transaction type
const (
	TransactionTypeTopUp           = "Top-up"
	TransactionTypeWithdrawal      = "Withdrawal"
	TransactionTypeRentPayment     = "Rent Payment"
	TransactionTypePayout          = "Payout"
	TransactionTypeCancellationFee = "Cancellation Fee"
)

// Transaction status
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "Completed"
	TransactionStatusFailed    = "Failed"
)

// Notification type
const (
	NotificationNewBooking        = "new_booking"
	NotificationBookingUpdate     = "booking_update"
	NotificationTopUpSuccess      = "top_up_success"
	NotificationWithdrawalSuccess = "withdrawal_success"
)

// PlatformFeeRate phí sàn tính trên tiền thuê (20%)
const PlatformFeeRate = 0.20

// IDRConversionRate quy đổi số dư ví sang IDR khi gọi cổng thanh toán
const IDRConversionRate = 15000
