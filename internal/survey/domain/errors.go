package domain

import "errors"

var (
	ErrUnknownProfile = errors.New("domain: unknown profile")
	ErrUnknownLevel   = errors.New("domain: unknown experience level")
)
