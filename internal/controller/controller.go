package controller

import (
	"errors"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError maps service sentinels onto the HTTP error taxonomy.
// Anything unrecognized is logged and reported as a 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrDocumentNotFound),
		errors.Is(err, util.ErrVideoNotFound),
		errors.Is(err, util.ErrTestNotFound),
		errors.Is(err, util.ErrAttemptNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrRequestNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrAttemptSubmitted),
		errors.Is(err, util.ErrRequestPending),
		errors.Is(err, util.ErrRequestNotPending):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrTestNotAvailable),
		errors.Is(err, util.ErrInvalidAnswer):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
