// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file is one secret: the filename is the key name and the trimmed
// file contents are the value.
//
// Supported key files: cocktaildb-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/mixology/pkg/types"
)

// CatalogAPIKey is the file holding a catalog API key.
const CatalogAPIKey = "cocktaildb-api-key"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error. Unreadable files are
// logged and skipped. A nil logger discards logs.
func Load(dir string, logger *zap.Logger) (map[string]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// ApplyCatalog sets cfg's API key from secrets unless the configuration
// already names a key other than the public test key. It reports whether
// the key changed.
func ApplyCatalog(cfg *types.CatalogConfig, secrets map[string]string) bool {
	key, ok := secrets[CatalogAPIKey]
	if !ok || (cfg.APIKey != "" && cfg.APIKey != types.PublicAPIKey) {
		return false
	}
	cfg.APIKey = key
	return true
}
