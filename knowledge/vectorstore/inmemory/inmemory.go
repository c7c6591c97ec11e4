//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory vector store with cosine
// similarity search. It is intended for corpora that fit comfortably in
// memory and are loaded once per process.
package inmemory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/ringside-ai/ringside/knowledge/document"
	"github.com/ringside-ai/ringside/knowledge/vectorstore"
)

// Verify that VectorStore implements the vectorstore.VectorStore interface.
var _ vectorstore.VectorStore = (*VectorStore)(nil)

// Store errors.
var (
	// ErrNilDocument is returned when adding a nil document.
	ErrNilDocument = errors.New("inmemory: document is nil")
	// ErrEmptyEmbedding is returned when adding a document without an embedding.
	ErrEmptyEmbedding = errors.New("inmemory: embedding is empty")
	// ErrEmptyQueryVector is returned when searching with an empty vector.
	ErrEmptyQueryVector = errors.New("inmemory: query vector is empty")
)

type entry struct {
	doc       *document.Document
	embedding []float64
}

// VectorStore is an in-memory cosine-similarity vector store.
// It is safe for concurrent use; reads do not mutate the store.
type VectorStore struct {
	mu      sync.RWMutex
	entries []entry
}

// New creates an empty in-memory vector store.
func New() *VectorStore {
	return &VectorStore{}
}

// Add stores a document with its embedding vector.
func (vs *VectorStore) Add(ctx context.Context, doc *document.Document, embedding []float64) error {
	if doc == nil {
		return ErrNilDocument
	}
	if len(embedding) == 0 {
		return ErrEmptyEmbedding
	}
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.entries = append(vs.entries, entry{doc: doc, embedding: embedding})
	return nil
}

// Search returns the documents most similar to the query vector.
// Results are ordered by descending cosine similarity with document ID as
// tiebreaker, so repeated searches over an unchanged store return the
// same ordered sequence.
func (vs *VectorStore) Search(ctx context.Context, query *vectorstore.SearchQuery) (*vectorstore.SearchResult, error) {
	if query == nil || len(query.Vector) == 0 {
		return nil, ErrEmptyQueryVector
	}

	vs.mu.RLock()
	defer vs.mu.RUnlock()

	scored := make([]*vectorstore.ScoredDocument, 0, len(vs.entries))
	for _, ent := range vs.entries {
		score, err := cosineSimilarity(query.Vector, ent.embedding)
		if err != nil {
			return nil, fmt.Errorf("score document %s: %w", ent.doc.ID, err)
		}
		scored = append(scored, &vectorstore.ScoredDocument{Document: ent.doc, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Document.ID < scored[j].Document.ID
	})

	if query.Limit > 0 && query.Limit < len(scored) {
		scored = scored[:query.Limit]
	}
	return &vectorstore.SearchResult{Results: scored}, nil
}

// Count returns the number of stored documents.
func (vs *VectorStore) Count(ctx context.Context) (int, error) {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	return len(vs.entries), nil
}

// Close releases the stored entries.
func (vs *VectorStore) Close() error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.entries = nil
	return nil
}

// cosineSimilarity computes the cosine similarity between two vectors.
func cosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimension mismatch: %d != %d", len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
