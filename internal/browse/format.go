// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/mixology/pkg/types"
)

// FormatTable writes records as a human-readable table to w.
func FormatTable(records []types.Cocktail, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No cocktails found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-36s  %-8s  %-20s  %-16s  %s\n",
		"#", "Name", "Origin", "Category", "Alcoholic", "Ingredients")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, c := range records {
		fmt.Fprintf(w, "%-4d  %-36s  %-8s  %-20s  %-16s  %s\n",
			i+1, truncate(c.Name, 36), c.Origin, truncate(c.Category, 20),
			c.Classification, truncate(ingredientNames(c), 40))
	}

	fmt.Fprintf(w, "\n%d cocktails\n", len(records))
}

// FormatJSON writes records as indented JSON to w.
func FormatJSON(records []types.Cocktail, w io.Writer) error {
	if records == nil {
		records = []types.Cocktail{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// FormatDetail writes one record in full to w.
func FormatDetail(c types.Cocktail, w io.Writer) {
	fmt.Fprintf(w, "%s (%s %s)\n", c.Name, c.Origin, c.ID)
	for _, line := range []struct{ label, value string }{
		{"Category", c.Category},
		{"Glass", c.Glass},
		{"Alcoholic", string(c.Classification)},
		{"Tags", strings.Join(c.Tags, ", ")},
		{"Image", c.Image},
	} {
		if line.value != "" {
			fmt.Fprintf(w, "  %-10s %s\n", line.label+":", line.value)
		}
	}
	if !c.DateModified.IsZero() {
		fmt.Fprintf(w, "  %-10s %s\n", "Modified:", c.DateModified.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w, "\nIngredients:")
	for _, ing := range c.Ingredients {
		if m := ing.Measure(); m != "" {
			fmt.Fprintf(w, "  - %s %s\n", m, ing.Name)
		} else {
			fmt.Fprintf(w, "  - %s\n", ing.Name)
		}
	}
	if c.Instructions != "" {
		fmt.Fprintf(w, "\n%s\n", c.Instructions)
	}
}

func ingredientNames(c types.Cocktail) string {
	names := make([]string, len(c.Ingredients))
	for i, ing := range c.Ingredients {
		names[i] = ing.Name
	}
	return strings.Join(names, ", ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
