package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidAmount    = errors.New("amount must be a non-negative number")
	ErrInvalidMetric    = errors.New("invalid body metric")
	ErrInvalidTimestamp = errors.New("invalid target timestamp")
	ErrUnknownScore     = errors.New("unknown appearance score")
)

// IndexError reports a positional update outside the current list.
type IndexError struct {
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("index %d out of range (have %d)", e.Index, e.Len)
}

// ErrIndexOutOfRange matches any IndexError via errors.Is.
var ErrIndexOutOfRange = errors.New("index out of range")

func (e IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// ImageError indicates the profile image could not be loaded; the previous image
// is left in place.
type ImageError struct {
	Path string
	Err  error
}

func (e ImageError) Error() string {
	return fmt.Sprintf("load image %q: %v", e.Path, e.Err)
}

func (e ImageError) Unwrap() error { return e.Err }

// IsIndexError reports whether err is (or wraps) an IndexError.
func IsIndexError(err error) bool {
	var ie IndexError
	return errors.As(err, &ie)
}
