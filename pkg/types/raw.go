// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
)

// RawDrink is a catalog record as delivered by the remote API. Ingredient and
// measure fields are positional (strIngredient1..15, strMeasure1..15) and
// every field may be null, so values are kept as pointers.
type RawDrink struct {
	ID           *string `json:"idDrink"`
	Name         *string `json:"strDrink"`
	Instructions *string `json:"strInstructions"`
	Thumb        *string `json:"strDrinkThumb"`
	Tags         *string `json:"strTags"`
	Category     *string `json:"strCategory"`
	Glass        *string `json:"strGlass"`
	Alcoholic    *string `json:"strAlcoholic"`
	DateModified *string `json:"dateModified"`

	// Ingredients and Measures are indexed from slot 1; index 0 is unused.
	Ingredients [MaxIngredientSlots + 1]*string `json:"-"`
	Measures    [MaxIngredientSlots + 1]*string `json:"-"`
}

// MaxIngredientSlots is the number of positional ingredient fields.
const MaxIngredientSlots = 15

// DrinksEnvelope is the remote response envelope. Drinks is nil when the
// catalog answers with null or omits the field.
type DrinksEnvelope struct {
	Drinks []RawDrink `json:"drinks"`
}

// OptionsEnvelope is the envelope for list-distinct-values queries. Each
// element carries exactly one of the fields depending on the list kind.
type OptionsEnvelope struct {
	Drinks []map[string]*string `json:"drinks"`
}

// UnmarshalJSON decodes the flat catalog object, routing the positional
// strIngredientN/strMeasureN fields into their slots.
func (d *RawDrink) UnmarshalJSON(data []byte) error {
	var fields map[string]*string
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*d = RawDrink{
		ID:           fields["idDrink"],
		Name:         fields["strDrink"],
		Instructions: fields["strInstructions"],
		Thumb:        fields["strDrinkThumb"],
		Tags:         fields["strTags"],
		Category:     fields["strCategory"],
		Glass:        fields["strGlass"],
		Alcoholic:    fields["strAlcoholic"],
		DateModified: fields["dateModified"],
	}
	for i := 1; i <= MaxIngredientSlots; i++ {
		d.Ingredients[i] = fields[fmt.Sprintf("strIngredient%d", i)]
		d.Measures[i] = fields[fmt.Sprintf("strMeasure%d", i)]
	}
	return nil
}
