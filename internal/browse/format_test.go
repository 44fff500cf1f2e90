// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mixology/pkg/types"
)

func sampleRecords() []types.Cocktail {
	return []types.Cocktail{
		{ID: "1", Name: "Mojito", Origin: types.OriginRemote, Category: "Cocktail", Classification: types.Alcoholic,
			Ingredients: []types.Ingredient{{Name: "Light rum", Amount: "2", Unit: "oz"}, {Name: "Mint"}}},
		{ID: "a-b", Name: "Shirley Temple", Origin: types.OriginLocal, Classification: types.NonAlcoholic,
			Ingredients: []types.Ingredient{{Name: "Ginger ale"}}},
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleRecords(), &buf)
	s := buf.String()

	assert.Contains(t, s, "Mojito")
	assert.Contains(t, s, "Light rum, Mint")
	assert.Contains(t, s, "Shirley Temple")
	assert.Contains(t, s, "2 cocktails")
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Contains(t, buf.String(), "No cocktails found")
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(sampleRecords(), &buf))

	var parsed []types.Cocktail
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed, 2)
	assert.Equal(t, "Shirley Temple", parsed[1].Name)
	assert.Equal(t, types.OriginLocal, parsed[1].Origin)

	buf.Reset()
	require.NoError(t, FormatJSON(nil, &buf))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestFormatDetail(t *testing.T) {
	var buf bytes.Buffer
	c := sampleRecords()[0]
	c.Instructions = "Muddle."
	FormatDetail(c, &buf)
	s := buf.String()

	assert.Contains(t, s, "Mojito (remote 1)")
	assert.Contains(t, s, "- 2 oz Light rum")
	assert.Contains(t, s, "- Mint")
	assert.Contains(t, s, "Muddle.")
	assert.NotContains(t, s, "Glass:")
}
