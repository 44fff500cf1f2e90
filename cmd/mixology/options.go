package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mixology/internal/catalog"
)

var optionsCmd = &cobra.Command{
	Use:   "options [field...]",
	Short: "List the values the catalog knows for each filter",
	Long: `Options enumerates filter values for alcoholic classification, category,
glass and ingredient. Fields are enumerated independently: one failing field
is reported and the rest are still listed.`,
	ValidArgs: []string{
		string(catalog.FieldClassification), string(catalog.FieldCategory),
		string(catalog.FieldGlass), string(catalog.FieldIngredient),
	},
	Args: cobra.OnlyValidArgs,
	RunE: runOptions,
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, args []string) error {
	set := newClient().AllOptions(context.Background())

	fields := catalog.Fields
	if len(args) > 0 {
		fields = nil
		for _, a := range args {
			fields = append(fields, catalog.Field(a))
		}
	}

	w := cmd.OutOrStdout()
	failed := 0
	for _, f := range fields {
		if err, ok := set.Errors[f]; ok {
			fmt.Fprintf(os.Stderr, "%s: unavailable: %v\n", f, err)
			failed++
			continue
		}
		values := catalog.SortedOptions(set.Values[f])
		fmt.Fprintf(w, "%s (%d)\n", f, len(values))
		for _, v := range values {
			fmt.Fprintf(w, "  %s\n", v)
		}
	}
	if failed == len(fields) {
		return fmt.Errorf("no filter options available: %s", strings.Join(fieldNames(fields), ", "))
	}
	return nil
}

func fieldNames(fields []catalog.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
