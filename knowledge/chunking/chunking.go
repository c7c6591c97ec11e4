//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package chunking provides document chunking strategies.
package chunking

import (
	"errors"
	"fmt"

	"github.com/ringside-ai/ringside/knowledge/document"
)

const (
	// defaultChunkSize is the default maximum chunk size in runes.
	defaultChunkSize = 1000
	// defaultOverlap is the default overlap between consecutive chunks in runes.
	defaultOverlap = 200
)

// Chunking errors.
var (
	// ErrNilDocument is returned when a nil document is passed to Chunk.
	ErrNilDocument = errors.New("chunking: document is nil")
	// ErrEmptyDocument is returned when the document has no content.
	ErrEmptyDocument = errors.New("chunking: document is empty")
)

// Strategy defines the interface for document chunking strategies.
type Strategy interface {
	// Chunk splits a document into smaller documents.
	Chunk(doc *document.Document) ([]*document.Document, error)
}

// Verify that FixedSizeChunking implements the Strategy interface.
var _ Strategy = (*FixedSizeChunking)(nil)

// FixedSizeChunking splits text into fixed-size windows with overlap so
// that semantic continuity survives chunk boundaries.
type FixedSizeChunking struct {
	chunkSize int
	overlap   int
}

// Option represents a functional option for configuring FixedSizeChunking.
type Option func(*FixedSizeChunking)

// WithChunkSize sets the maximum size of each chunk in runes.
func WithChunkSize(size int) Option {
	return func(fc *FixedSizeChunking) {
		fc.chunkSize = size
	}
}

// WithOverlap sets the number of runes to overlap between chunks.
func WithOverlap(overlap int) Option {
	return func(fc *FixedSizeChunking) {
		fc.overlap = overlap
	}
}

// NewFixedSizeChunking creates a new fixed-size chunking strategy.
func NewFixedSizeChunking(opts ...Option) *FixedSizeChunking {
	fc := &FixedSizeChunking{
		chunkSize: defaultChunkSize,
		overlap:   defaultOverlap,
	}
	for _, opt := range opts {
		opt(fc)
	}
	if fc.chunkSize <= 0 {
		fc.chunkSize = defaultChunkSize
	}
	// Overlap must leave room for forward progress.
	if fc.overlap < 0 {
		fc.overlap = 0
	}
	if fc.overlap >= fc.chunkSize {
		fc.overlap = min(defaultOverlap, fc.chunkSize-1)
	}
	return fc
}

// ChunkSize returns the configured chunk size.
func (fc *FixedSizeChunking) ChunkSize() int { return fc.chunkSize }

// Overlap returns the configured overlap.
func (fc *FixedSizeChunking) Overlap() int { return fc.overlap }

// Chunk splits the document into overlapping fixed-size windows.
func (fc *FixedSizeChunking) Chunk(doc *document.Document) ([]*document.Document, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if doc.IsEmpty() {
		return nil, ErrEmptyDocument
	}

	runes := []rune(doc.Content)
	if len(runes) <= fc.chunkSize {
		return []*document.Document{fc.createChunk(doc, doc.Content, 0)}, nil
	}

	var chunks []*document.Document
	step := fc.chunkSize - fc.overlap
	for start, index := 0, 0; start < len(runes); start, index = start+step, index+1 {
		end := start + fc.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, fc.createChunk(doc, string(runes[start:end]), index))
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}

// createChunk builds a chunk document carrying traceability metadata
// back to the parent document.
func (fc *FixedSizeChunking) createChunk(parent *document.Document, content string, index int) *document.Document {
	chunk := document.New(fmt.Sprintf("%s#%d", parent.Name, index), content)
	for k, v := range parent.Metadata {
		chunk.Metadata[k] = v
	}
	chunk.Metadata[document.MetaParentID] = parent.ID
	chunk.Metadata[document.MetaChunkIndex] = index
	return chunk
}
