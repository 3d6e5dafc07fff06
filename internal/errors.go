package internal

import "errors"

var (
	ErrUnknownProduct  = errors.New("unknown product in cart")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrEmailRequired   = errors.New("customer email is required")

	ErrOrderNotFound   = errors.New("order not found")
	ErrDuplicateCharge = errors.New("charge is already recorded")
	ErrEmptyStatus     = errors.New("status is required")

	ErrPaymentRejected = errors.New("payment processor rejected the request")
)
