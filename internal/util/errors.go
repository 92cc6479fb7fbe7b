package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrCourseNotFound   = errors.New("course not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrVideoNotFound    = errors.New("video not found")

	ErrTestNotFound     = errors.New("test not found")
	ErrTestNotAvailable = errors.New("test is not available at this time")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAttemptSubmitted = errors.New("attempt already submitted")
	ErrInvalidAnswer    = errors.New("selected option is not among the question's options")

	ErrRequestNotFound   = errors.New("access request not found")
	ErrRequestPending    = errors.New("a pending access request already exists")
	ErrRequestNotPending = errors.New("access request is not pending")
)
