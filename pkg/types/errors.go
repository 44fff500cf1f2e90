// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"context"
	"errors"
)

// Error taxonomy. Stages wrap one of these with fmt.Errorf("...: %w") so
// callers can classify with errors.Is.
var (
	// ErrNetwork is an unreachable remote or a non-success response.
	ErrNetwork = errors.New("network failure")

	// ErrCancelled is a superseded or aborted fetch. Never user-facing.
	ErrCancelled = errors.New("request cancelled")

	// ErrStorage is a serialization or persistence failure.
	ErrStorage = errors.New("storage failure")

	// ErrValidation is a record missing required fields.
	ErrValidation = errors.New("validation failure")
)

// IsCancelled reports whether err is a cancellation outcome, including a
// cancelled context.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}
