package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInvalidAmount indicates a negative or otherwise malformed monetary amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInvalidWeight indicates a negative split share weight.
var ErrInvalidWeight = errors.New("invalid share weight")

// ErrVersionConflict indicates an optimistic-lock failure on a wallet mutation.
var ErrVersionConflict = errors.New("version conflict")

// ErrInsufficientBalance indicates a transfer would overdraw the sender's wallet.
var ErrInsufficientBalance = errors.New("insufficient balance")
