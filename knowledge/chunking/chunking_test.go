//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

package chunking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringside-ai/ringside/knowledge/document"
)

func TestNewFixedSizeChunking(t *testing.T) {
	tests := []struct {
		name          string
		opts          []Option
		wantChunkSize int
		wantOverlap   int
	}{
		{
			name:          "defaults",
			opts:          nil,
			wantChunkSize: 1000,
			wantOverlap:   200,
		},
		{
			name:          "custom size and overlap",
			opts:          []Option{WithChunkSize(100), WithOverlap(20)},
			wantChunkSize: 100,
			wantOverlap:   20,
		},
		{
			name:          "overlap larger than size is corrected",
			opts:          []Option{WithChunkSize(50), WithOverlap(80)},
			wantChunkSize: 50,
			wantOverlap:   49,
		},
		{
			name:          "negative overlap becomes zero",
			opts:          []Option{WithChunkSize(100), WithOverlap(-5)},
			wantChunkSize: 100,
			wantOverlap:   0,
		},
		{
			name:          "non-positive size falls back to default",
			opts:          []Option{WithChunkSize(0)},
			wantChunkSize: 1000,
			wantOverlap:   200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := NewFixedSizeChunking(tt.opts...)
			assert.Equal(t, tt.wantChunkSize, fc.ChunkSize())
			assert.Equal(t, tt.wantOverlap, fc.Overlap())
		})
	}
}

func TestChunkErrors(t *testing.T) {
	fc := NewFixedSizeChunking()

	_, err := fc.Chunk(nil)
	assert.ErrorIs(t, err, ErrNilDocument)

	_, err = fc.Chunk(document.New("empty.md", "   \n\t"))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestChunkSmallDocumentSingleChunk(t *testing.T) {
	fc := NewFixedSizeChunking(WithChunkSize(100), WithOverlap(20))
	doc := document.New("small.md", "short content")

	chunks, err := fc.Chunk(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, doc.Content, chunks[0].Content)
	assert.Equal(t, doc.ID, chunks[0].Metadata[document.MetaParentID])
	assert.Equal(t, 0, chunks[0].Metadata[document.MetaChunkIndex])
}

func TestChunkOverlappingWindows(t *testing.T) {
	fc := NewFixedSizeChunking(WithChunkSize(10), WithOverlap(4))
	doc := document.New("doc.md", strings.Repeat("abcdefghij", 3)) // 30 runes

	chunks, err := fc.Chunk(doc)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	// Every chunk except possibly the last is exactly chunkSize runes.
	for i, chunk := range chunks[:len(chunks)-1] {
		assert.Len(t, []rune(chunk.Content), 10, "chunk %d", i)
	}

	// Consecutive chunks share the configured overlap.
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Content)
		tail := string(prev[len(prev)-4:])
		assert.True(t, strings.HasPrefix(chunks[i].Content, tail),
			"chunk %d does not start with the overlap of chunk %d", i, i-1)
	}

	// Chunk indices are sequential and all trace to the parent.
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Metadata[document.MetaChunkIndex])
		assert.Equal(t, doc.ID, chunk.ParentID())
	}
}

func TestChunkCoversFullContent(t *testing.T) {
	fc := NewFixedSizeChunking(WithChunkSize(7), WithOverlap(2))
	content := "the quick brown fox jumps over the lazy dog"
	doc := document.New("doc.txt", content)

	chunks, err := fc.Chunk(doc)
	require.NoError(t, err)

	// Reassembling the chunks minus overlaps yields the original content.
	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0].Content)
	for _, chunk := range chunks[1:] {
		runes := []rune(chunk.Content)
		rebuilt.WriteString(string(runes[2:]))
	}
	assert.Equal(t, content, rebuilt.String())
}

func TestChunkUnicodeSafety(t *testing.T) {
	fc := NewFixedSizeChunking(WithChunkSize(5), WithOverlap(1))
	doc := document.New("es.md", "¿Qué guantes son para principiantes?")

	chunks, err := fc.Chunk(doc)
	require.NoError(t, err)
	for _, chunk := range chunks {
		// Slicing happened on rune boundaries, not bytes.
		assert.True(t, strings.ToValidUTF8(chunk.Content, "") == chunk.Content)
	}
}
