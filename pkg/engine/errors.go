package engine

import "errors"

// Protocol-misuse errors. They indicate a programming error in the caller and
// are returned wrapped with context; test for them with errors.Is.
var (
	ErrAlreadyMounted     = errors.New("krow: node is already mounted")
	ErrNotMounted         = errors.New("krow: node is not mounted")
	ErrComponentUnmounted = errors.New("krow: component is not mounted")
	ErrNegativeIndex      = errors.New("krow: negative insertion index")
	ErrUnknownKind        = errors.New("krow: unknown virtual node kind")
	ErrForeignComponent   = errors.New("krow: component definition was not created by Define")
	ErrReservedMethod     = errors.New("krow: method name is reserved")
	ErrUnknownMethod      = errors.New("krow: unknown component method")
	ErrNoRender           = errors.New("krow: component definition has no render function")
)
