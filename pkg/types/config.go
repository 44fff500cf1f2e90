package types

import "time"

// PublicAPIKey is the catalog's shared test key.
const PublicAPIKey = "1"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "mixology/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// CatalogConfig holds settings for the remote catalog client.
type CatalogConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the catalog API root, without the key segment
	// (default "https://www.thecocktaildb.com/api/json/v1").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// APIKey is the catalog key path segment ("1" is the public test key).
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxRetries is the retry budget for enumeration and listing queries
	// (default 3). Lookup and search-by-name queries never retry.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// ListingStaleAfter is the staleness window for listing queries (default 5m).
	ListingStaleAfter time.Duration `json:"listing_stale_after" yaml:"listing_stale_after" mapstructure:"listing_stale_after"`

	// OptionsStaleAfter is the staleness window for filter-option
	// enumeration queries (default 1h).
	OptionsStaleAfter time.Duration `json:"options_stale_after" yaml:"options_stale_after" mapstructure:"options_stale_after"`

	// CacheSize bounds the number of cached query keys (default 128).
	CacheSize int `json:"cache_size" yaml:"cache_size" mapstructure:"cache_size"`
}

// CollectionConfig holds settings for the local collection store.
type CollectionConfig struct {
	// DataDir is the directory holding collection.db.
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
}

// BrowseConfig holds settings for the interactive browser.
type BrowseConfig struct {
	// InitialBatch is the number of items revealed after a source change (default 8).
	InitialBatch int `json:"initial_batch" yaml:"initial_batch" mapstructure:"initial_batch"`

	// BatchIncrement is the number of items appended per trigger (default 5).
	BatchIncrement int `json:"batch_increment" yaml:"batch_increment" mapstructure:"batch_increment"`

	// SettleDelay is the pause between a trigger and the append (default 300ms).
	SettleDelay time.Duration `json:"settle_delay" yaml:"settle_delay" mapstructure:"settle_delay"`

	// Debounce is the free-text settle delay (default 300ms).
	Debounce time.Duration `json:"debounce" yaml:"debounce" mapstructure:"debounce"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// File receives logs while the terminal browser owns the screen.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

// Config groups all configuration sections.
type Config struct {
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Collection CollectionConfig `json:"collection" yaml:"collection" mapstructure:"collection"`
	Browse     BrowseConfig     `json:"browse" yaml:"browse" mapstructure:"browse"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Catalog: CatalogConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   15 * time.Second,
				UserAgent: "mixology/0.1",
			},
			BaseURL:           "https://www.thecocktaildb.com/api/json/v1",
			APIKey:            PublicAPIKey,
			MaxRetries:        3,
			ListingStaleAfter: 5 * time.Minute,
			OptionsStaleAfter: time.Hour,
			CacheSize:         128,
		},
		Collection: CollectionConfig{DataDir: "."},
		Browse: BrowseConfig{
			InitialBatch:   8,
			BatchIncrement: 5,
			SettleDelay:    300 * time.Millisecond,
			Debounce:       300 * time.Millisecond,
		},
		Log: LogConfig{Level: "info"},
	}
}
