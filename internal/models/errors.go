package models

import "errors"

// Payment processor failure modes. Callers match with errors.Is and map them
// to 4xx responses; anything else is a server error.
var (
	ErrRecordNotFound   = errors.New("fee record not found")
	ErrOverpayment      = errors.New("payment amount exceeds balance due")
	ErrAlreadySettled   = errors.New("fee record is already fully paid")
	ErrDuplicatePayment = errors.New("duplicate payment detected within the last 10 seconds")
)
