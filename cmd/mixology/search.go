package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mixology/internal/browse"
)

var searchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Search the catalog and your collection",
	Long: `Search lists cocktails whose name contains the query, from the catalog
merged with your collection. Collection entries come first. Filter flags
narrow the result; with --save they also become the browser's saved filters.

When the catalog is unreachable the collection's matches are still listed.`,
	RunE: runSearch,
}

func init() {
	addFilterFlags(searchCmd)
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("save", false, "save the given filters for the next browse session")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	session, _, closeSession, err := openSession(locationFromFlags(cmd, args))
	if err != nil {
		return err
	}
	defer closeSession()

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := session.SetFilter(ctx, session.Filter()); err != nil {
			return err
		}
	}

	session.RefreshLocal(ctx)
	session.Apply(session.FetchListing(ctx))
	out := session.Merged()

	if out.RemoteErr != nil {
		if len(out.Records) == 0 {
			return fmt.Errorf("searching catalog: %w", out.RemoteErr)
		}
		fmt.Fprintln(os.Stderr, "warning:", browse.Message(out.RemoteErr))
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return browse.FormatJSON(out.Records, cmd.OutOrStdout())
	}
	browse.FormatTable(out.Records, cmd.OutOrStdout())
	return nil
}
