package errors

import (
	"errors"
)

var (
	ErrNotWhitelisted  = errors.New("not a whitelisted role")
	ErrAlreadyHasRole  = errors.New("already has role")
	ErrDoesNotHaveRole = errors.New("does not have role")
	ErrMaxRoles        = errors.New("max roles reached")
	ErrNotFound        = errors.New("not found")
)
