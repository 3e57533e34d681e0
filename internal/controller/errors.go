package controller

import (
	"errors"
	"net/http"

	"learnai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError 将业务错误映射为 HTTP 状态码，未知错误记录日志并返回 500
func respondError(ctx *gin.Context, err error) {
	var ve *util.ValidationError
	switch {
	case errors.As(err, &ve):
		util.BadRequest(ctx, ve.Error())
	case errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrSessionInvalid), errors.Is(err, util.ErrUserNotFound):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrAlreadyEnrolled):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
