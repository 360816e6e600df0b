package adapter

import "errors"

var (
	ErrBadRequest  = errors.New("bad request")
	ErrDenied      = errors.New("access denied by verifier")
	ErrNotFound    = errors.New("blob not found")
	ErrUnavailable = errors.New("service unavailable")
	ErrUnreachable = errors.New("endpoint unreachable")
)
