package models

// Bank tài khoản nhận tiền khi chủ nhà rút ví
type Bank struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        string `gorm:"size:36" json:"userId"`
	BankName      string `json:"bankName"`
	ChannelCode   string `gorm:"size:20" json:"channelCode"` // mã kênh payout, ví dụ ID_BCA
	AccountNumber string `json:"accountNumber"`
	HolderName    string `json:"holderName"`
}
