// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize converts raw remote catalog records into the canonical
// cocktail shape. Normalization never fails: partially populated input
// yields a well-formed record with empty fields.
package normalize

import (
	"strings"
	"time"
	"unicode"

	"github.com/pdiddy/mixology/pkg/types"
)

// catalogTimeLayout is the catalog's dateModified format.
const catalogTimeLayout = "2006-01-02 15:04:05"

// Drink converts one raw remote record into a canonical cocktail.
func Drink(raw types.RawDrink) types.Cocktail {
	c := types.Cocktail{
		ID:           str(raw.ID),
		Name:         strings.TrimSpace(str(raw.Name)),
		Instructions: strings.TrimSpace(str(raw.Instructions)),
		Image:        str(raw.Thumb),
		Ingredients:  ingredients(raw),
		Tags:         SplitTags(str(raw.Tags)),
		Category:     strings.TrimSpace(str(raw.Category)),
		Glass:        strings.TrimSpace(str(raw.Glass)),
		Origin:       types.OriginRemote,
	}
	if raw.Alcoholic != nil {
		c.Classification = types.ParseClassification(*raw.Alcoholic)
	}
	if raw.DateModified != nil {
		if t, err := time.Parse(catalogTimeLayout, *raw.DateModified); err == nil {
			c.DateModified = t
		}
	}
	return c
}

// Drinks normalizes a whole envelope. A nil slice becomes an empty one.
func Drinks(raws []types.RawDrink) []types.Cocktail {
	out := make([]types.Cocktail, 0, len(raws))
	for _, r := range raws {
		out = append(out, Drink(r))
	}
	return out
}

// ingredients reads positional slots from 1 upward and stops at the first
// missing ingredient.
func ingredients(raw types.RawDrink) []types.Ingredient {
	var out []types.Ingredient
	for i := 1; i <= types.MaxIngredientSlots; i++ {
		name := strings.TrimSpace(str(raw.Ingredients[i]))
		if name == "" {
			break
		}
		amount, unit := SplitMeasure(str(raw.Measures[i]))
		out = append(out, types.Ingredient{Name: name, Amount: amount, Unit: unit})
	}
	if out == nil {
		out = []types.Ingredient{}
	}
	return out
}

// SplitMeasure splits a measure string into its leading numeric/fraction
// run and the remainder: "1 1/2 oz" -> ("1 1/2", "oz"), "Juice of 1" ->
// ("", "Juice of 1"). Either half may be empty.
func SplitMeasure(measure string) (amount, unit string) {
	measure = strings.TrimSpace(measure)
	end := 0
	for i, r := range measure {
		if unicode.IsDigit(r) || r == '/' || r == '.' || r == '-' || r == ' ' || isVulgarFraction(r) {
			continue
		}
		end = i
		break
	}
	if end == 0 {
		// Either the whole string is numeric or it has no numeric prefix.
		if allNumeric(measure) {
			return measure, ""
		}
		return "", measure
	}
	return strings.TrimSpace(measure[:end]), strings.TrimSpace(measure[end:])
}

func allNumeric(s string) bool {
	if s == "" {
		return false
	}
	hasDigit := false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r) || isVulgarFraction(r):
			hasDigit = true
		case r == '/' || r == '.' || r == '-' || r == ' ':
		default:
			return false
		}
	}
	return hasDigit
}

func isVulgarFraction(r rune) bool {
	return r >= '¼' && r <= '¾' || r >= '⅐' && r <= '⅞'
}

// SplitTags splits a comma-separated tag string into a trimmed list,
// dropping empty entries. An empty string yields an empty list.
func SplitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
