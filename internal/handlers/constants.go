package handlers

const (
	ErrInvalidRequestBody  = "Invalid request body"
	ErrMethodNotAllowed    = "Method not allowed"
	ErrUnauthorized        = "Unauthorized"
	ErrTooManyRequests     = "Too many requests"
	ErrStoreUnavailable    = "Context store unavailable"
	ErrInternalServerError = "Internal server error"
)
