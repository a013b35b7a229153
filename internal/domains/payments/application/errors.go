package application

import "errors"

var (
	ErrPaymentNotFound         = errors.New("payment not found")
	ErrPaymentForbidden        = errors.New("payment belongs to another user")
	ErrPaymentAlreadyExists    = errors.New("order already has a payment")
	ErrPaymentAlreadyCancelled = errors.New("payment is already cancelled")
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderForbidden          = errors.New("order belongs to another user")
	ErrOrderCancelled          = errors.New("order is cancelled")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidMethod           = errors.New("unsupported payment method")
)
