//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package vectorstore defines the vector storage and similarity search interface.
package vectorstore

import (
	"context"

	"github.com/ringside-ai/ringside/knowledge/document"
)

// VectorStore stores document embeddings and performs similarity search.
type VectorStore interface {
	// Add stores a document with its embedding vector.
	Add(ctx context.Context, doc *document.Document, embedding []float64) error

	// Search returns the documents most similar to the query vector,
	// ordered most-similar first. A limit larger than the store size
	// returns all stored documents.
	Search(ctx context.Context, query *SearchQuery) (*SearchResult, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}

// SearchQuery represents a vector similarity search request.
type SearchQuery struct {
	// Vector is the query embedding.
	Vector []float64

	// Limit is the maximum number of results to return.
	Limit int
}

// SearchResult holds the results of a similarity search.
type SearchResult struct {
	// Results are ordered by descending score.
	Results []*ScoredDocument
}

// ScoredDocument pairs a document with its similarity score.
type ScoredDocument struct {
	// Document is the stored document.
	Document *document.Document

	// Score is the similarity to the query vector.
	Score float64
}
