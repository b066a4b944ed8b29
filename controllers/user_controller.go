package controllers

import (
	"roomradar/models"
	"roomradar/response"
	"roomradar/services"
	"roomradar/services/logger"

	"github.com/gin-gonic/gin"
)

// UserController hồ sơ user và tài khoản ngân hàng
type UserController struct {
	service *services.UserService
	logger  logger.Logger
}

func NewUserController(service *services.UserService, logger logger.Logger) *UserController {
	return &UserController{
		service: service,
		logger:  logger,
	}
}

type updateProfileRequest struct {
	Name        string `json:"name"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	AvatarURL   string `json:"avatarUrl"`
}

type addBankRequest struct {
	BankName      string `json:"bankName" binding:"required"`
	ChannelCode   string `json:"channelCode" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	HolderName    string `json:"holderName" binding:"required"`
}

// Me lấy hồ sơ của user đang đăng nhập
func (ctl *UserController) Me(c *gin.Context) {
	user, err := ctl.service.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateMe cập nhật hồ sơ của user đang đăng nhập
func (ctl *UserController) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	user, err := ctl.service.UpdateProfile(c.Request.Context(), c.GetString("userID"),
		req.Name, req.FirstName, req.LastName, req.PhoneNumber, req.AvatarURL)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}

// AddBank thêm tài khoản ngân hàng nhận tiền
func (ctl *UserController) AddBank(c *gin.Context) {
	var req addBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	user, err := ctl.service.AddBank(c.Request.Context(), c.GetString("userID"), models.Bank{
		BankName:      req.BankName,
		ChannelCode:   req.ChannelCode,
		AccountNumber: req.AccountNumber,
		HolderName:    req.HolderName,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}
