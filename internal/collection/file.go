// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mixology/pkg/types"
)

// RecipeFile is the on-disk form accepted by ReadRecipeFile: either a
// single recipe or a list under "cocktails".
type RecipeFile struct {
	Cocktails []types.Cocktail `json:"cocktails" yaml:"cocktails"`
}

// ReadRecipeFile loads recipes from a YAML file, or JSON when the name ends
// in .json. Records are not validated here; Store.Add does that.
func ReadRecipeFile(path string) ([]types.Cocktail, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe file: %w", err)
	}

	unmarshal := yaml.Unmarshal
	if isJSON(path) {
		unmarshal = json.Unmarshal
	}

	var file RecipeFile
	if err := unmarshal(data, &file); err == nil && len(file.Cocktails) > 0 {
		return file.Cocktails, nil
	}

	var single types.Cocktail
	if err := unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parsing recipe file %s: %w", path, err)
	}
	if single.Name == "" && len(single.Ingredients) == 0 {
		return nil, fmt.Errorf("recipe file %s holds no recipes: %w", path, types.ErrValidation)
	}
	return []types.Cocktail{single}, nil
}

// Export writes the whole collection to path. The format follows the
// extension: .json writes indented JSON, anything else YAML.
func (s *Store) Export(ctx context.Context, path string) (int, error) {
	all, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	file := RecipeFile{Cocktails: all}

	var data []byte
	if isJSON(path) {
		data, err = json.MarshalIndent(file, "", "  ")
	} else {
		data, err = yaml.Marshal(&file)
	}
	if err != nil {
		return 0, fmt.Errorf("marshaling export: %w: %v", types.ErrStorage, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing export: %w: %v", types.ErrStorage, err)
	}
	return len(all), nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
