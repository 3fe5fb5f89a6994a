package model

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeAlreadyPaid        = "ALREADY_PAID"
	ErrCodeInvalidSignature   = "INVALID_SIGNATURE"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInvalidEmail       = "INVALID_EMAIL"
	ErrCodeWeakPassword       = "WEAK_PASSWORD"
	ErrCodeReviewExists       = "REVIEW_EXISTS"
	ErrCodeInvalidRating      = "INVALID_RATING"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation carrying a stable code that
// handlers map to an HTTP status and envelope message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Messages follow the original API's wording so
// existing clients keep matching on them.
var (
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrUserNotFound       = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrInvalidStatus      = NewDomainError(ErrCodeInvalidStatus, "Unknown order status")
	ErrAlreadyPaid        = NewDomainError(ErrCodeAlreadyPaid, "Order already paid")
	ErrCannotCancelPaid   = NewDomainError(ErrCodeAlreadyPaid, "Cannot cancel paid order")
	ErrInvalidSignature   = NewDomainError(ErrCodeInvalidSignature, "Invalid signature")
	ErrEmailTaken         = NewDomainError(ErrCodeEmailTaken, "User already exists")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid credentials")
	ErrInvalidEmail       = NewDomainError(ErrCodeInvalidEmail, "Please enter a valid email")
	ErrWeakPassword       = NewDomainError(ErrCodeWeakPassword, "Please enter a strong password")
	ErrReviewExists       = NewDomainError(ErrCodeReviewExists, "You have already reviewed this product")
	ErrInvalidRating      = NewDomainError(ErrCodeInvalidRating, "Rating must be between 1 and 5")
)
