// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for mixology: the canonical
// cocktail record used regardless of origin, the raw remote catalog record
// it is normalized from, the structured filter set, configuration, and the
// error taxonomy shared by every stage.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Origin identifies where a record came from. Only local records are mutable.
type Origin string

const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// Classification is the alcoholic classification of a drink.
type Classification string

const (
	Alcoholic    Classification = "Alcoholic"
	NonAlcoholic Classification = "Non alcoholic"
	Optional     Classification = "Optional alcohol"
)

// Classifications lists the known labels in catalog order.
var Classifications = []Classification{Alcoholic, NonAlcoholic, Optional}

// ParseClassification matches s exactly (case-sensitive) against the known
// labels. Anything else classifies as Optional.
func ParseClassification(s string) Classification {
	for _, c := range Classifications {
		if string(c) == s {
			return c
		}
	}
	return Optional
}

// Ingredient is one line of a recipe. Amount and Unit are the two halves of
// the catalog's measure string and either may be empty.
type Ingredient struct {
	Name   string `json:"name" yaml:"name"`
	Amount string `json:"amount,omitempty" yaml:"amount,omitempty"`
	Unit   string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Measure joins amount and unit back into display form ("1 1/2 oz").
func (i Ingredient) Measure() string {
	return strings.TrimSpace(i.Amount + " " + i.Unit)
}

// Cocktail is the canonical recipe shape used internally for both origins.
type Cocktail struct {
	// ID is stable within its origin; local and remote IDs may collide.
	ID string `json:"id" yaml:"id"`

	Name         string `json:"name" yaml:"name"`
	Instructions string `json:"instructions" yaml:"instructions"`

	// Image is an optional image reference (URL or data URI).
	Image string `json:"image,omitempty" yaml:"image,omitempty"`

	// Ingredients is ordered as in the recipe and never empty once persisted.
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`

	Tags     []string `json:"tags" yaml:"tags"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
	Glass    string   `json:"glass,omitempty" yaml:"glass,omitempty"`

	// Classification is empty when the record carries none.
	Classification Classification `json:"classification,omitempty" yaml:"classification,omitempty"`

	DateModified time.Time `json:"date_modified" yaml:"date_modified"`
	Origin       Origin    `json:"origin" yaml:"origin"`
}

// Key returns an identity that is unique across origins.
func (c Cocktail) Key() string {
	return string(c.Origin) + ":" + c.ID
}

// Mutable reports whether the record may be deleted or replaced.
func (c Cocktail) Mutable() bool {
	return c.Origin == OriginLocal
}

// Validate reports a ValidationFailure for a record missing required fields.
// It detects but does not repair.
func (c Cocktail) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if len(c.Ingredients) == 0 {
		missing = append(missing, "ingredients")
	}
	for i, ing := range c.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			missing = append(missing, fmt.Sprintf("ingredients[%d].name", i))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: cocktail %q missing %s", ErrValidation, c.Name, strings.Join(missing, ", "))
	}
	return nil
}
