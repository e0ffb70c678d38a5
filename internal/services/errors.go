package services

import "errors"

// Sentinel errors for the user-facing failure categories. Handlers map them
// onto HTTP statuses with errors.Is instead of matching message text.
// Validation errors are recoverable (the user fixes input and retries);
// ErrForbidden is access denied and never retried; store-level
// repositories.ErrNotFound surfaces as "no longer available".
var (
	ErrEmptyCart          = errors.New("cart has no items")
	ErrInvalidQuantity    = errors.New("every item needs a quantity above zero")
	ErrProfileIncomplete  = errors.New("phone number and home address are required")
	ErrInvalidProfile     = errors.New("invalid phone number or home address")
	ErrForbidden          = errors.New("not authorized")
	ErrUnauthorized       = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCategoryName       = errors.New("category name is required")
	ErrDuplicateCategory  = errors.New("category already exists")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrDefaultCategory    = errors.New("default categories cannot be deleted")
)
