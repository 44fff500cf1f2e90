package main

import (
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mixology/internal/browse"
	"github.com/pdiddy/mixology/internal/catalog"
	"github.com/pdiddy/mixology/internal/collection"
	"github.com/pdiddy/mixology/internal/filterstate"
	"github.com/pdiddy/mixology/pkg/types"
)

func newClient() *catalog.Client {
	return catalog.NewClient(appConfig.Catalog, nil, logger)
}

func openStore() (*collection.Store, error) {
	return collection.NewStore(appConfig.Collection, logger)
}

// addFilterFlags registers the filter flags shared by browse and search.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("alcoholic", "", `classification: "Alcoholic", "Non alcoholic" or "Optional alcohol"`)
	cmd.Flags().String("category", "", "category, e.g. Cocktail")
	cmd.Flags().String("glass", "", "glass, e.g. Highball glass")
	cmd.Flags().String("ingredient", "", "comma-separated ingredient tags, all of which must match")
}

// locationFromFlags builds the query representation a session starts
// from: the text query from args and any filters given as flags.
func locationFromFlags(cmd *cobra.Command, args []string) url.Values {
	flag := func(name string) *string {
		if v, _ := cmd.Flags().GetString(name); strings.TrimSpace(v) != "" {
			v = strings.TrimSpace(v)
			return &v
		}
		return nil
	}
	loc := filterstate.Encode(types.FilterSet{
		Classification: flag("alcoholic"),
		Category:       flag("category"),
		Glass:          flag("glass"),
		Ingredient:     flag("ingredient"),
	})
	if q := strings.TrimSpace(strings.Join(args, " ")); q != "" {
		loc.Set(filterstate.KeyQuery, q)
	}
	return loc
}

// openSession returns a session over loc and a function releasing it.
func openSession(loc url.Values) (*browse.Session, *filterstate.History, func(), error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, nil, err
	}
	h := filterstate.NewHistory(loc)
	s := browse.New(newClient(), store, h, logger)
	return s, h, func() { store.Close() }, nil
}
