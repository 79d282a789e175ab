package stellar

import (
	"errors"
	"fmt"
)

// ErrConfiguration indicates stellar properties were requested for a
// non-physical star (non-positive mass, radius or density floor).
var ErrConfiguration = errors.New("stellar: invalid configuration")

// ConfigError records which quantity failed validation.
type ConfigError struct {
	Field string
	Value float64
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("stellar: %s must be positive, got %g", e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}
