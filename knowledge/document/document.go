//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package document defines the document types used by the knowledge system.
package document

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Metadata keys attached to chunk documents so that every retrieved chunk
// can be traced back to the corpus document it was cut from.
const (
	// MetaSource is the name of the source that produced the document.
	MetaSource = "ringside_source"
	// MetaParentID is the ID of the corpus document a chunk belongs to.
	MetaParentID = "ringside_parent_id"
	// MetaChunkIndex is the zero-based position of a chunk within its parent.
	MetaChunkIndex = "ringside_chunk_index"
	// MetaURI is the location the document was loaded from.
	MetaURI = "ringside_uri"
)

// Document represents a piece of corpus text. Both whole source files and
// the chunks cut from them are represented as documents; chunks carry the
// Meta* keys above. A document is immutable once created.
type Document struct {
	// ID is the unique identifier of the document.
	ID string `json:"id"`

	// Name is a human-readable name, typically the source file name.
	Name string `json:"name"`

	// Content is the text content.
	Content string `json:"content"`

	// Metadata carries additional key-value pairs.
	Metadata map[string]any `json:"metadata,omitempty"`

	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// IsEmpty reports whether the document has no non-whitespace content.
func (d *Document) IsEmpty() bool {
	return strings.TrimSpace(d.Content) == ""
}

// New creates a document with a content-derived ID.
func New(name, content string) *Document {
	return &Document{
		ID:        GenerateID(name, content),
		Name:      name,
		Content:   content,
		Metadata:  make(map[string]any),
		CreatedAt: time.Now().UTC(),
	}
}

// GenerateID derives a stable document ID from the name and content.
// Stability matters: reloading an unchanged corpus must produce the same
// IDs so that retrieval stays deterministic across process restarts.
func GenerateID(name, content string) string {
	hash := sha256.Sum256([]byte(content))
	contentHash := hex.EncodeToString(hash[:8])
	return strings.ReplaceAll(name, " ", "_") + "_" + contentHash
}

// ParentID returns the corpus document ID recorded on a chunk, or the
// document's own ID when it is not a chunk.
func (d *Document) ParentID() string {
	if d.Metadata != nil {
		if parent, ok := d.Metadata[MetaParentID].(string); ok && parent != "" {
			return parent
		}
	}
	return d.ID
}
