// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mixology CLI: a terminal
// cocktail browser over a remote catalog and a local collection.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/mixology/internal/secrets"
	"github.com/pdiddy/mixology/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// appConfig is the resolved configuration for the running command.
	appConfig types.Config

	logger = zap.NewNop()
)

// tuiAnnotation marks commands that take over the terminal; their logs go
// to a file.
const tuiAnnotation = "tui"

var rootCmd = &cobra.Command{
	Use:   "mixology",
	Short: "Browse cocktails from an online catalog and your own collection",
	Long: `mixology browses cocktail recipes from a TheCocktailDB-compatible catalog
merged with a local collection you can add to and delete from.

Run "mixology browse" for the interactive grid, or use the search, lookup,
random, options and local commands from scripts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		appConfig = cfg

		_, tui := cmd.Annotations[tuiAnnotation]
		l, err := newLogger(cfg, tui)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		if secrets.ApplyCatalog(&appConfig.Catalog, s) {
			logger.Debug("using catalog key from secrets")
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./mixology.yaml or ~/.config/mixology/mixology.yaml)")
	flags.String("data-dir", "", "directory holding the local collection (default .)")
	flags.String("base-url", "", "catalog API root")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-file", "", "write logs to this file")
	flags.Bool("debug", false, "shorthand for --log-level debug")

	viper.BindPFlag("collection.data_dir", flags.Lookup("data-dir"))
	viper.BindPFlag("catalog.base_url", flags.Lookup("base-url"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
	viper.BindPFlag("log.file", flags.Lookup("log-file"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mixology")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mixology"))
		}
	}

	viper.SetEnvPrefix("MIXOLOGY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper(), types.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every configuration key so environment variables
// and flags resolve even when no config file sets them.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("catalog.timeout", d.Catalog.Timeout)
	v.SetDefault("catalog.user_agent", d.Catalog.UserAgent)
	v.SetDefault("catalog.base_url", d.Catalog.BaseURL)
	v.SetDefault("catalog.api_key", d.Catalog.APIKey)
	v.SetDefault("catalog.max_retries", d.Catalog.MaxRetries)
	v.SetDefault("catalog.listing_stale_after", d.Catalog.ListingStaleAfter)
	v.SetDefault("catalog.options_stale_after", d.Catalog.OptionsStaleAfter)
	v.SetDefault("catalog.cache_size", d.Catalog.CacheSize)
	v.SetDefault("collection.data_dir", d.Collection.DataDir)
	v.SetDefault("browse.initial_batch", d.Browse.InitialBatch)
	v.SetDefault("browse.batch_increment", d.Browse.BatchIncrement)
	v.SetDefault("browse.settle_delay", d.Browse.SettleDelay)
	v.SetDefault("browse.debounce", d.Browse.Debounce)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// loadConfig resolves the configuration from defaults, the config file,
// MIXOLOGY_ environment variables and flags. cmd's flag set includes the
// persistent flags it inherits.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// newLogger builds a console logger at the configured level. Commands that
// own the terminal log to a file, defaulting to mixology.log in the data
// directory.
func newLogger(cfg types.Config, tui bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	out := "stderr"
	switch {
	case cfg.Log.File != "":
		out = cfg.Log.File
	case tui:
		out = filepath.Join(cfg.Collection.DataDir, "mixology.log")
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{out}
	return zc.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
