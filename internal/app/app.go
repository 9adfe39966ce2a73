// Package app is the root package of all domain related packages.
//
// All entity types are defined in this package.
package app

import (
	"errors"
)

var (
	ErrAlreadyExists        = errors.New("object already exists")
	ErrInvalid              = errors.New("invalid parameters")
	ErrNotFound             = errors.New("object not found")
	ErrTokenUnavailable     = errors.New("no valid access token available")
	ErrVerificationMismatch = errors.New("identity verification returned a different character")
)
