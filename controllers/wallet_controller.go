package controllers

import (
	"fmt"
	"time"

	"roomradar/dto"
	"roomradar/response"
	"roomradar/services"
	"roomradar/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// WalletController xử lý các endpoint ví: số dư, lịch sử, nạp, rút
type WalletController struct {
	wallet *services.WalletService
	ledger *services.LedgerService
	rdb    *redis.Client
	logger logger.Logger
}

func NewWalletController(wallet *services.WalletService, ledger *services.LedgerService, rdb *redis.Client, logger logger.Logger) *WalletController {
	return &WalletController{
		wallet: wallet,
		ledger: ledger,
		rdb:    rdb,
		logger: logger,
	}
}

func (ctl *WalletController) invalidateCache(c *gin.Context, userID string) {
	if ctl.rdb == nil {
		return
	}
	pattern := fmt.Sprintf("wallet:*:%s", userID)
	if err := services.DeleteKeysByPattern(c.Request.Context(), ctl.rdb, pattern); err != nil {
		ctl.logger.Error("Failed to invalidate wallet cache for user %s: %v", userID, err)
	}
}

// Balance số dư ví hiện tại của user
func (ctl *WalletController) Balance(c *gin.Context) {
	userID := c.GetString("userID")
	cacheKey := fmt.Sprintf("wallet:balance:%s", userID)

	if ctl.rdb != nil {
		var cached *dto.BalanceResponse
		if err := services.GetFromRedis(c.Request.Context(), ctl.rdb, cacheKey, &cached); err == nil && cached != nil {
			response.Success(c, cached)
			return
		}
	}

	balance, err := ctl.ledger.BalanceOf(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	result := dto.BalanceResponse{
		UserID:  userID,
		Balance: balance,
	}
	if ctl.rdb != nil {
		if err := services.SetToRedis(c.Request.Context(), ctl.rdb, cacheKey, result, 30*time.Second); err != nil {
			ctl.logger.Error("Failed to cache balance for user %s: %v", userID, err)
		}
	}
	response.Success(c, result)
}

// Transactions lịch sử giao dịch của user, mới nhất trước
func (ctl *WalletController) Transactions(c *gin.Context) {
	userID := c.GetString("userID")

	txns, err := ctl.ledger.TransactionsOf(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	result := make([]dto.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		result = append(result, dto.TransactionResponse{
			ID:        txn.ID,
			BookingID: txn.BookingID,
			Type:      txn.Type,
			Amount:    txn.Amount,
			Date:      txn.Date,
			Status:    txn.Status,
			CreatedAt: txn.CreatedAt,
		})
	}
	response.Success(c, result)
}

// InitiateTopUp khởi tạo nạp ví, trả về hướng dẫn thanh toán
func (ctl *WalletController) InitiateTopUp(c *gin.Context) {
	var req dto.TopUpInitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	userID := c.GetString("userID")
	instructions, err := ctl.wallet.InitiateTopUp(c.Request.Context(), userID, req.Amount, req.PaymentMethodType, req.ChannelCode)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, instructions)
}

// CompleteTopUp xác nhận nạp ví thành công và ghi sổ
func (ctl *WalletController) CompleteTopUp(c *gin.Context) {
	var req dto.TopUpCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	userID := c.GetString("userID")
	txn, err := ctl.wallet.CompleteTopUp(c.Request.Context(), userID, req.Amount)
	if err != nil {
		handleError(c, err)
		return
	}

	ctl.invalidateCache(c, userID)
	response.Success(c, txn)
}

// Withdraw rút ví về tài khoản ngân hàng đã khai báo
func (ctl *WalletController) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	userID := c.GetString("userID")
	txn, err := ctl.wallet.Withdraw(c.Request.Context(), userID, req.Amount)
	if err != nil {
		handleError(c, err)
		return
	}

	ctl.invalidateCache(c, userID)
	response.Success(c, txn)
}
