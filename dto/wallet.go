package dto

import "time"

// TopUpInitRequest yêu cầu nạp ví qua cổng thanh toán
type TopUpInitRequest struct {
	Amount            float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethodType string  `json:"paymentMethodType" binding:"required"` // VIRTUAL_ACCOUNT | EWALLET | OTC
	ChannelCode       string  `json:"channelCode" binding:"required"`       // ví dụ BCA, ID_OVO, ALFAMART
}

// TopUpCompleteRequest bước xác nhận nạp ví tách rời khỏi phản hồi của cổng
type TopUpCompleteRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// WithdrawRequest yêu cầu rút ví về tài khoản ngân hàng đã khai báo
type WithdrawRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// TransactionResponse là DTO cho một bản ghi sổ cái
type TransactionResponse struct {
	ID        string    `json:"id"`
	BookingID string    `json:"bookingId,omitempty"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// BalanceResponse số dư ví hiện tại
type BalanceResponse struct {
	UserID  string  `json:"userId"`
	Balance float64 `json:"balance"`
}
