// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mixology/internal/browse"
	"github.com/pdiddy/mixology/internal/collection"
)

// --- add subcommand ---

var addCmd = &cobra.Command{
	Use:   "add <recipe-file>...",
	Short: "Add recipes from YAML or JSON files to your collection",
	Long: `Add reads one recipe or a list of recipes from each file (.json is read
as JSON, anything else as YAML) and adds them to your collection. Each recipe
needs a name and at least one named ingredient. New ids are assigned.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	added := 0
	for _, path := range args {
		records, err := collection.ReadRecipeFile(path)
		if err != nil {
			return err
		}
		for _, r := range records {
			c, err := store.Add(ctx, r)
			if err != nil {
				return fmt.Errorf("adding %q from %s: %w", r.Name, path, err)
			}
			fmt.Fprintf(w, "Added %s (%s)\n", c.Name, c.ID)
			added++
		}
	}
	fmt.Fprintf(w, "%d recipe(s) added\n", added)
	return nil
}

// --- delete subcommand ---

var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete recipes from your collection",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, id := range args {
		if err := store.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
	}
	return nil
}

// --- local subcommand ---

var localCmd = &cobra.Command{
	Use:   "local",
	Short: "List or export your collection",
	Long: `Local lists the recipes in your collection in the order they were added.
With --export it writes them to a file instead (.json for JSON, anything else
for YAML); the file can be read back with "mixology add".`,
	RunE: runLocal,
}

func runLocal(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if path, _ := cmd.Flags().GetString("export"); path != "" {
		n, err := store.Export(ctx, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d recipe(s) to %s\n", n, path)
		return nil
	}

	records, err := store.All(ctx)
	if err != nil {
		return err
	}
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return browse.FormatJSON(records, cmd.OutOrStdout())
	}
	browse.FormatTable(records, cmd.OutOrStdout())
	return nil
}

func init() {
	localCmd.Flags().String("export", "", "write the collection to this file")
	localCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(localCmd)
}
