//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package embedder defines the text embedding interface.
package embedder

import "context"

// Embedder converts text into a fixed-dimension vector representation
// used for similarity search.
type Embedder interface {
	// GetEmbedding generates an embedding vector for the given text.
	GetEmbedding(ctx context.Context, text string) ([]float64, error)

	// GetDimensions returns the number of dimensions in the embedding vectors.
	GetDimensions() int
}
