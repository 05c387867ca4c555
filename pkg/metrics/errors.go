package metrics

import (
	"errors"
)

// Sentinel errors for metrics operations.
var (
	ErrObserveFailed = errors.New("metrics observe failed")
	ErrNilRegistry   = errors.New("nil prometheus registry")
)
