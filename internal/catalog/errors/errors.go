package errors

import "errors"

var (
	ErrQueryFailed = errors.New("collection query failed")

	ErrDecodeFailed = errors.New("document decode failed")
)
