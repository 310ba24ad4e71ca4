package model

import "fmt"

// ErrorKind classifies a domain error for HTTP status mapping.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindNotFound
	KindConflict
	KindForbidden
	KindState
	KindSystem
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeInvalidTimestamp  = "INVALID_TIMESTAMP"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeSaleNotFound      = "SALE_NOT_FOUND"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeReviewNotFound    = "REVIEW_NOT_FOUND"
	ErrCodeVoucherNotFound   = "VOUCHER_NOT_FOUND"
	ErrCodeVoucherExpired    = "VOUCHER_EXPIRED"
	ErrCodeBelowMinPurchase  = "BELOW_MINIMUM_PURCHASE"
	ErrCodeExcludedProduct   = "EXCLUDED_PRODUCT"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeInvalidPercent    = "INVALID_PERCENT"
	ErrCodeInvalidDateRange  = "INVALID_DATE_RANGE"
	ErrCodeDuplicateProduct  = "DUPLICATE_PRODUCT"
	ErrCodeSaleOverlap       = "SALE_OVERLAP"
	ErrCodeDuplicateEntry    = "DUPLICATE_ENTRY"
	ErrCodeDuplicateReview   = "DUPLICATE_REVIEW"
	ErrCodeSaleEnded         = "SALE_ENDED"
	ErrCodeSaleStarted       = "SALE_STARTED"
	ErrCodeSaleActive        = "SALE_ACTIVE"
	ErrCodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation carrying its taxonomy kind.
// Handlers map Kind to an HTTP status; Message is safe to return to clients.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Validationf builds a validation error with a formatted message.
func Validationf(code, format string, args ...any) *DomainError {
	return NewDomainError(KindValidation, code, fmt.Sprintf(format, args...))
}

// Common domain errors
var (
	ErrProductNotFound  = NewDomainError(KindNotFound, ErrCodeProductNotFound, "One or more products not found or unavailable")
	ErrSaleNotFound     = NewDomainError(KindNotFound, ErrCodeSaleNotFound, "Sale occasion not found")
	ErrOrderNotFound    = NewDomainError(KindNotFound, ErrCodeOrderNotFound, "Order not found")
	ErrReviewNotFound   = NewDomainError(KindNotFound, ErrCodeReviewNotFound, "Review not found")
	ErrVoucherNotFound  = NewDomainError(KindNotFound, ErrCodeVoucherNotFound, "Voucher code is not valid")
	ErrVoucherExpired   = NewDomainError(KindValidation, ErrCodeVoucherExpired, "Voucher is not yet active or has expired")
	ErrExcludedProduct  = NewDomainError(KindValidation, ErrCodeExcludedProduct, "Voucher cannot be applied to some products in your cart")
	ErrInvalidQuantity  = NewDomainError(KindValidation, ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrSaleEnded        = NewDomainError(KindState, ErrCodeSaleEnded, "Cannot modify a sale occasion that has ended")
	ErrSaleStartLocked  = NewDomainError(KindState, ErrCodeSaleStarted, "Cannot change the start time of a sale occasion that is already running")
	ErrSaleDeleteLocked = NewDomainError(KindState, ErrCodeSaleActive, "Only sale occasions that have not started can be deleted")
	ErrDuplicateReview  = NewDomainError(KindConflict, ErrCodeDuplicateReview, "You have already reviewed this product")
	ErrForbidden        = NewDomainError(KindForbidden, ErrCodeForbidden, "You do not have permission to perform this action")
)
