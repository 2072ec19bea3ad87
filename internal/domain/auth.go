package domain

import "errors"

var (
	ErrUnauthorized = errors.New("could not validate credentials")
	ErrForbidden    = errors.New("caller does not own this resource")
)
