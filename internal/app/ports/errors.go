package ports

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("wolf service unavailable")
	ErrBadResponse = errors.New("unexpected wolf service response")
)
