package controllers

import (
	"roomradar/errors"
	"roomradar/response"

	"github.com/gin-gonic/gin"
)

// handleError map AppError sang HTTP response tương ứng
func handleError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		response.ServerError(c)
		return
	}

	switch appErr.Code {
	case errors.ErrCodeNotFound:
		response.NotFound(c)
	case errors.ErrCodeInvalidState:
		response.Conflict(c, appErr.Message)
	case errors.ErrCodeGateway:
		response.ServiceUnavailable(c)
	case errors.ErrCodeValidation, errors.ErrCodeInvalidAmount:
		response.BadRequest(c, appErr.Message)
	case errors.ErrCodeForbidden:
		response.Forbidden(c)
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken:
		response.Unauthorized(c)
	default:
		response.ServerError(c)
	}
}
