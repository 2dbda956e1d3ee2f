package speech

import (
	"errors"
	"fmt"
)

// Validation errors surface immediately to the caller, before any side effect.
var (
	ErrTextRequired    = errors.New("text is required")
	ErrDialectRequired = errors.New("dialect is required")
)

// ProviderError marks a failed or unreachable speech-synthesis provider.
// It is fatal to the request: nothing is cached and the in-flight entry is
// cleared, so a later retry by the caller starts fresh.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("synthesis provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
