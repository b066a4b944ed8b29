package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

// Payment instruction variants trả về cho client sau khi khởi tạo nạp ví
const (
	PaymentInstructionVA      = "VA"
	PaymentInstructionEWallet = "EWALLET"
	PaymentInstructionOTC     = "OTC"
	PaymentInstructionSuccess = "SUCCESS"
)

// PaymentInstructions là kết quả khởi tạo thanh toán; field nào có giá
// trị phụ thuộc vào Type.
type PaymentInstructions struct {
	Type        string `json:"type"`
	VANumber    string `json:"vaNumber,omitempty"`
	QRCodeURL   string `json:"qrCodeUrl,omitempty"`
	PaymentCode string `json:"paymentCode,omitempty"`
}

// PayoutChannelProperties thông tin tài khoản nhận tiền khi rút ví
type PayoutChannelProperties struct {
	AccountHolderName string `json:"account_holder_name"`
	AccountNumber     string `json:"account_number"`
}

// PaymentGateway trừu tượng hóa cổng thanh toán bên ngoài
type PaymentGateway interface {
	CreatePaymentRequest(ctx context.Context, amount float64, paymentMethodType, channelCode string) (*PaymentInstructions, error)
	CreatePayout(ctx context.Context, amount float64, channelCode string, props PayoutChannelProperties) (string, error)
}

// XenditConfig cấu hình kết nối Xendit
type XenditConfig struct {
	SecretKey string `envconfig:"XENDIT_SECRET_KEY" required:"true"`
	BaseURL   string `envconfig:"XENDIT_BASE_URL" default:"https://api.xendit.co"`
	Currency  string `envconfig:"XENDIT_CURRENCY" default:"IDR"`
	Country   string `envconfig:"XENDIT_COUNTRY" default:"ID"`
}

// LoadXenditConfig load cấu hình Xendit từ biến môi trường
func LoadXenditConfig() (XenditConfig, error) {
	var cfg XenditConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load xendit config: %w", err)
	}
	return cfg, nil
}

// XenditClient gọi REST API của Xendit
type XenditClient struct {
	cfg    XenditConfig
	client *http.Client
}

func NewXenditClient(cfg XenditConfig) *XenditClient {
	return &XenditClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type xenditPaymentRequest struct {
	Amount        float64             `json:"amount"`
	Currency      string              `json:"currency"`
	Country       string              `json:"country"`
	PaymentMethod xenditPaymentMethod `json:"payment_method"`
}

type xenditPaymentMethod struct {
	Type        string `json:"type"`
	Reusability string `json:"reusability"`
	ChannelCode string `json:"channel_code"`
}

type xenditPaymentResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Actions []struct {
		VirtualAccountNumber string `json:"virtual_account_number"`
		QRCode               string `json:"qr_code"`
		PaymentCode          string `json:"payment_code"`
		URL                  string `json:"url"`
	} `json:"actions"`
}

type xenditPayoutRequest struct {
	ReferenceID       string                  `json:"reference_id"`
	ChannelCode       string                  `json:"channel_code"`
	ChannelProperties PayoutChannelProperties `json:"channel_properties"`
	Amount            float64                 `json:"amount"`
	Currency          string                  `json:"currency"`
	Description       string                  `json:"description"`
}

type xenditPayoutResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (c *XenditClient) post(ctx context.Context, path string, idempotencyKey string, body, target interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.SecretKey, "")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-key", idempotencyKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call xendit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("xendit returned status %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode xendit response: %w", err)
	}
	return nil
}

// CreatePaymentRequest khởi tạo một yêu cầu thanh toán một lần và rút
// ra hướng dẫn thanh toán từ action đầu tiên.
func (c *XenditClient) CreatePaymentRequest(ctx context.Context, amount float64, paymentMethodType, channelCode string) (*PaymentInstructions, error) {
	body := xenditPaymentRequest{
		Amount:   amount,
		Currency: c.cfg.Currency,
		Country:  c.cfg.Country,
		PaymentMethod: xenditPaymentMethod{
			Type:        paymentMethodType,
			Reusability: "ONE_TIME_USE",
			ChannelCode: channelCode,
		},
	}

	var result xenditPaymentResponse
	if err := c.post(ctx, "/payment_requests", "", body, &result); err != nil {
		return nil, err
	}

	if len(result.Actions) == 0 {
		// Không có action nghĩa là kênh thanh toán ghi nhận ngay
		return &PaymentInstructions{Type: PaymentInstructionSuccess}, nil
	}

	action := result.Actions[0]
	switch {
	case action.VirtualAccountNumber != "":
		return &PaymentInstructions{
			Type:     PaymentInstructionVA,
			VANumber: action.VirtualAccountNumber,
		}, nil
	case action.QRCode != "":
		return &PaymentInstructions{
			Type:      PaymentInstructionEWallet,
			QRCodeURL: action.QRCode,
		}, nil
	case action.URL != "":
		return &PaymentInstructions{
			Type:      PaymentInstructionEWallet,
			QRCodeURL: action.URL,
		}, nil
	case action.PaymentCode != "":
		return &PaymentInstructions{
			Type:        PaymentInstructionOTC,
			PaymentCode: action.PaymentCode,
		}, nil
	default:
		return &PaymentInstructions{Type: PaymentInstructionSuccess}, nil
	}
}

// CreatePayout tạo lệnh chi về tài khoản ngân hàng của user, trả về id
// payout phía Xendit.
func (c *XenditClient) CreatePayout(ctx context.Context, amount float64, channelCode string, props PayoutChannelProperties) (string, error) {
	referenceID := "payout-" + uuid.New().String()
	body := xenditPayoutRequest{
		ReferenceID:       referenceID,
		ChannelCode:       channelCode,
		ChannelProperties: props,
		Amount:            amount,
		Currency:          c.cfg.Currency,
		Description:       "Withdrawal from RoomRadar Wallet",
	}

	var result xenditPayoutResponse
	if err := c.post(ctx, "/v2/payouts", referenceID, body, &result); err != nil {
		return "", err
	}
	return result.ID, nil
}
