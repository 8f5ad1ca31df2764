package sizer

import "errors"

var (
	// ErrInvalidArgument reports a parameter of the wrong kind or range
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedMode reports an unknown resolution type
	ErrUnsupportedMode = errors.New("unsupported resolution mode")
	// ErrInvalidGeometry reports zero or negative dimensions, or a plan
	// whose intermediary cannot be cropped to its target
	ErrInvalidGeometry = errors.New("invalid geometry")
)
