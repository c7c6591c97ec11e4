//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

package evaluation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDataset(t *testing.T) {
	items := DefaultDataset()
	require.Len(t, items, 3)
	for _, item := range items {
		assert.NotEmpty(t, item.Query)
		assert.NotEmpty(t, item.GroundTruth)
	}
	assert.Contains(t, items[0].Query, "principiantes")
}

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"query": "¿Qué guantes?", "ground_truth": "Los Pro Style Elite."},
		{"query": "¿Cuánto tarda el despacho?", "ground_truth": "De 2 a 4 días hábiles."}
	]`), 0o644))

	items, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "¿Qué guantes?", items[0].Query)
	assert.Equal(t, "De 2 a 4 días hábiles.", items[1].GroundTruth)
}

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read dataset")
}

func TestLoadDatasetInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0o644))

	_, err := LoadDataset(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse dataset")
}
