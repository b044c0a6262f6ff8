package krow

import (
	"errors"

	"github.com/vango-dev/krow/pkg/engine"
)

var (
	// ErrAppMounted is returned when mounting an application twice.
	ErrAppMounted = errors.New("krow: application is already mounted")

	// ErrAppNotMounted is returned when unmounting an application that is
	// not mounted.
	ErrAppNotMounted = errors.New("krow: application is not mounted")
)

// Engine errors, re-exported for errors.Is checks.
var (
	ErrAlreadyMounted     = engine.ErrAlreadyMounted
	ErrNotMounted         = engine.ErrNotMounted
	ErrComponentUnmounted = engine.ErrComponentUnmounted
	ErrNegativeIndex      = engine.ErrNegativeIndex
	ErrUnknownKind        = engine.ErrUnknownKind
	ErrReservedMethod     = engine.ErrReservedMethod
	ErrUnknownMethod      = engine.ErrUnknownMethod
)
