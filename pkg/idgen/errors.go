package idgen

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNodeBits       = errors.New("node bits out of range")
	ErrInvalidNodeID         = errors.New("node ID out of range")
	ErrClockMovedBack        = errors.New("clock moved backwards")
	ErrTimestampOutOfRange   = errors.New("timestamp out of range for epoch field")
	ErrInvalidPrefixPosition = errors.New("prefix position out of range")
)

// ConfigError reports an invalid construction parameter.
type ConfigError struct {
	Field string
	Value int64
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %d: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ClockMovedBackError carries the offsets (ms from the custom epoch) that were compared.
type ClockMovedBackError struct {
	Last    int64
	Current int64
}

func (e *ClockMovedBackError) Error() string {
	return fmt.Sprintf("%v: refusing to generate ID, last timestamp %d, current %d",
		ErrClockMovedBack, e.Last, e.Current)
}

func (e *ClockMovedBackError) Is(target error) bool {
	return target == ErrClockMovedBack
}

// IsConfigError reports whether err was caused by invalid configuration.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
