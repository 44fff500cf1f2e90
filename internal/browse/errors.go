// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import (
	"errors"

	"github.com/pdiddy/mixology/internal/collection"
	"github.com/pdiddy/mixology/pkg/types"
)

// Kind classifies an error for presentation.
type Kind int

const (
	KindNone Kind = iota
	KindCancelled
	KindNetwork
	KindStorage
	KindValidation
	KindNotFound
	KindOther
)

// Classify maps err onto the error taxonomy.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case types.IsCancelled(err):
		return KindCancelled
	case errors.Is(err, collection.ErrNotFound):
		return KindNotFound
	case errors.Is(err, types.ErrValidation):
		return KindValidation
	case errors.Is(err, types.ErrStorage):
		return KindStorage
	case errors.Is(err, types.ErrNetwork):
		return KindNetwork
	}
	return KindOther
}

// Message is the user-facing text for err. Cancellation and nil have none.
func Message(err error) string {
	switch Classify(err) {
	case KindNone, KindCancelled:
		return ""
	case KindNetwork:
		return "Catalog unreachable; showing your collection only."
	case KindStorage:
		return "Could not save to your collection. Try again."
	case KindNotFound:
		return "That cocktail is no longer in your collection."
	}
	return err.Error()
}
