//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringside-ai/ringside/knowledge/document"
	"github.com/ringside-ai/ringside/knowledge/vectorstore"
)

func TestVectorStoreInterface(t *testing.T) {
	var _ vectorstore.VectorStore = (*VectorStore)(nil)
}

func newDoc(id, content string) *document.Document {
	return &document.Document{ID: id, Name: id, Content: content}
}

func TestAddErrors(t *testing.T) {
	vs := New()
	ctx := context.Background()

	err := vs.Add(ctx, nil, []float64{1, 0})
	assert.ErrorIs(t, err, ErrNilDocument)

	err = vs.Add(ctx, newDoc("a", "text"), nil)
	assert.ErrorIs(t, err, ErrEmptyEmbedding)
}

func TestSearchOrdering(t *testing.T) {
	vs := New()
	ctx := context.Background()

	require.NoError(t, vs.Add(ctx, newDoc("exact", "exact match"), []float64{1, 0}))
	require.NoError(t, vs.Add(ctx, newDoc("close", "close match"), []float64{0.9, 0.1}))
	require.NoError(t, vs.Add(ctx, newDoc("far", "unrelated"), []float64{0, 1}))

	result, err := vs.Search(ctx, &vectorstore.SearchQuery{Vector: []float64{1, 0}, Limit: 2})
	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "exact", result.Results[0].Document.ID)
	assert.Equal(t, "close", result.Results[1].Document.ID)
	assert.Greater(t, result.Results[0].Score, result.Results[1].Score)
}

func TestSearchLimitExceedsSize(t *testing.T) {
	vs := New()
	ctx := context.Background()

	require.NoError(t, vs.Add(ctx, newDoc("only", "single"), []float64{1, 0}))

	result, err := vs.Search(ctx, &vectorstore.SearchQuery{Vector: []float64{1, 0}, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, result.Results, 1)
}

func TestSearchDeterministicWithTies(t *testing.T) {
	vs := New()
	ctx := context.Background()

	// Identical embeddings: order must fall back to document ID.
	require.NoError(t, vs.Add(ctx, newDoc("b", "two"), []float64{1, 0}))
	require.NoError(t, vs.Add(ctx, newDoc("a", "one"), []float64{1, 0}))
	require.NoError(t, vs.Add(ctx, newDoc("c", "three"), []float64{1, 0}))

	query := &vectorstore.SearchQuery{Vector: []float64{1, 0}, Limit: 3}
	first, err := vs.Search(ctx, query)
	require.NoError(t, err)
	second, err := vs.Search(ctx, query)
	require.NoError(t, err)

	require.Len(t, first.Results, 3)
	for i := range first.Results {
		assert.Equal(t, first.Results[i].Document.ID, second.Results[i].Document.ID)
	}
	assert.Equal(t, "a", first.Results[0].Document.ID)
	assert.Equal(t, "b", first.Results[1].Document.ID)
	assert.Equal(t, "c", first.Results[2].Document.ID)
}

func TestSearchErrors(t *testing.T) {
	vs := New()
	ctx := context.Background()

	_, err := vs.Search(ctx, nil)
	assert.ErrorIs(t, err, ErrEmptyQueryVector)

	_, err = vs.Search(ctx, &vectorstore.SearchQuery{})
	assert.ErrorIs(t, err, ErrEmptyQueryVector)

	// Dimension mismatch surfaces as an error, not a silent zero score.
	require.NoError(t, vs.Add(ctx, newDoc("a", "text"), []float64{1, 0, 0}))
	_, err = vs.Search(ctx, &vectorstore.SearchQuery{Vector: []float64{1, 0}, Limit: 1})
	assert.Error(t, err)
}

func TestCountAndClose(t *testing.T) {
	vs := New()
	ctx := context.Background()

	count, err := vs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, vs.Add(ctx, newDoc("a", "text"), []float64{1}))
	count, err = vs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, vs.Close())
	count, err = vs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float64
		want    float64
		wantErr bool
	}{
		{name: "identical", a: []float64{1, 0}, b: []float64{1, 0}, want: 1},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, want: 0},
		{name: "opposite", a: []float64{1, 0}, b: []float64{-1, 0}, want: -1},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 0}, want: 0},
		{name: "dimension mismatch", a: []float64{1}, b: []float64{1, 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cosineSimilarity(tt.a, tt.b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
