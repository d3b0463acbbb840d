package handlers

const (
	SessionCookieName = "session_id"
	FlashCookieName   = "flash"

	ErrInvalidFormData     = "Invalid form data"
	ErrUnauthorized        = "Unauthorized"
	ErrInternalServerError = "Internal server error"
)
