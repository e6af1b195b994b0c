package errors

import "errors"

var (
	ErrRentalNotFound = errors.New("rental item not found")

	ErrItemUnavailable = errors.New("rental item not available")

	ErrUserNotFound = errors.New("user not found")
)
