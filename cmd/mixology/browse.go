// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/mixology/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [query]",
	Short: "Browse cocktails in an interactive grid",
	Long: `Browse opens a full-screen grid of cocktails from the catalog and your
collection. Arrow keys move between cells, Enter opens a recipe, Space shows
a cell's ingredients in place. Filters given as flags, or saved from the last
session when no filter flag is given, narrow the grid.

Logs go to mixology.log in the data directory unless --log-file is set.`,
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE:        runBrowse,
}

func init() {
	addFilterFlags(browseCmd)
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, history, closeSession, err := openSession(locationFromFlags(cmd, args))
	if err != nil {
		return err
	}
	defer closeSession()

	session.Start(ctx)
	logger.Info("browser started", zap.String("location", history.String()))

	model := tui.New(ctx, session, appConfig.Browse, logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	logger.Info("browser closed", zap.String("location", history.String()))
	return nil
}
