package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mixology/internal/browse"
	"github.com/pdiddy/mixology/internal/collection"
	"github.com/pdiddy/mixology/pkg/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <id>",
	Short: "Show one cocktail by id",
	Long: `Lookup prints the full recipe for a catalog id or a collection id.
Collection ids are checked first.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random cocktail from the catalog",
	RunE:  runRandom,
}

func init() {
	lookupCmd.Flags().Bool("json", false, "output as JSON")
	randomCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(randomCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	id := args[0]

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	c, err := store.Get(ctx, id)
	if errors.Is(err, collection.ErrNotFound) {
		var found bool
		c, found, err = newClient().Lookup(ctx, id)
		if err == nil && !found {
			return fmt.Errorf("no cocktail with id %s", id)
		}
	}
	if err != nil {
		return err
	}
	return printCocktail(cmd, c)
}

func runRandom(cmd *cobra.Command, args []string) error {
	c, err := newClient().Random(context.Background())
	if err != nil {
		return err
	}
	return printCocktail(cmd, c)
}

func printCocktail(cmd *cobra.Command, c types.Cocktail) error {
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return browse.FormatJSON([]types.Cocktail{c}, cmd.OutOrStdout())
	}
	browse.FormatDetail(c, cmd.OutOrStdout())
	return nil
}
