package service

import "errors"

var (
	ErrEmptyCart           = errors.New("cart is empty, nothing to checkout")
	ErrValidation          = errors.New("validation failed")
	IllegalTransitionError = errors.New("illegal transition of order status")
)
