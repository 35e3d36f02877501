// Package apperrors holds sentinel errors shared by the shell layers.
package apperrors

import "errors"

var (
	ErrNoLogConfigured   = errors.New("no activity log configured")
	ErrUnsupportedFormat = errors.New("unsupported activity log format")
	ErrEmptyLog          = errors.New("activity log contains no usable records")
)
