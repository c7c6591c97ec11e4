//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package source defines corpus document sources.
package source

import (
	"context"

	"github.com/ringside-ai/ringside/knowledge/document"
)

// Source provides corpus documents to the knowledge system.
type Source interface {
	// ReadDocuments loads all documents from the source.
	ReadDocuments(ctx context.Context) ([]*document.Document, error)

	// Name returns a human-readable source name.
	Name() string
}
