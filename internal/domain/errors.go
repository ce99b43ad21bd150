package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrOutOfInventory     = errors.New("car is out of inventory")
	ErrAlreadyReturned    = errors.New("rental already returned")
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPaymentProvider    = errors.New("payment provider failure")
)
