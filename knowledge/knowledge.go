//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package knowledge provides the searchable corpus index: documents are
// loaded from sources, chunked, embedded, and stored in a vector store
// for similarity search.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/ringside-ai/ringside/knowledge/chunking"
	"github.com/ringside-ai/ringside/knowledge/document"
	"github.com/ringside-ai/ringside/knowledge/embedder"
	"github.com/ringside-ai/ringside/knowledge/source"
	"github.com/ringside-ai/ringside/knowledge/vectorstore"
	"github.com/ringside-ai/ringside/log"
)

const (
	// DefaultSearchLimit is the number of chunks returned when the caller
	// does not specify a limit.
	DefaultSearchLimit = 4

	// defaultEmbedParallelism bounds concurrent embedding requests during load.
	defaultEmbedParallelism = 4
)

// Knowledge errors.
var (
	// ErrNotLoaded is returned by Search before a successful Load.
	ErrNotLoaded = errors.New("knowledge: index not loaded")
	// ErrNoSources is returned by Load when no sources are configured.
	ErrNoSources = errors.New("knowledge: no sources configured")
	// ErrMissingEmbedder is returned when no embedder is configured.
	ErrMissingEmbedder = errors.New("knowledge: embedder is required")
	// ErrMissingVectorStore is returned when no vector store is configured.
	ErrMissingVectorStore = errors.New("knowledge: vector store is required")
)

// SearchHit is a single retrieved chunk with its similarity score.
type SearchHit struct {
	// Document is the retrieved chunk.
	Document *document.Document

	// Score is the similarity to the query.
	Score float64
}

// BuiltinKnowledge composes sources, a chunking strategy, an embedder and
// a vector store into a searchable index.
//
// The index is built exactly once per process: Load runs its work under a
// sync.Once, so concurrent first use is serialized and repeated calls
// return the outcome of the first. After a successful Load the index is
// read-only; a changed corpus requires a process restart.
type BuiltinKnowledge struct {
	embedder     embedder.Embedder
	vectorStore  vectorstore.VectorStore
	chunking     chunking.Strategy
	sources      []source.Source
	parallelism  int
	defaultLimit int

	loadOnce sync.Once
	loadErr  error
	loaded   bool
}

// Option represents a functional option for configuring BuiltinKnowledge.
type Option func(*BuiltinKnowledge)

// WithEmbedder sets the embedder used for documents and queries.
func WithEmbedder(e embedder.Embedder) Option {
	return func(bk *BuiltinKnowledge) {
		bk.embedder = e
	}
}

// WithVectorStore sets the vector store for similarity search.
func WithVectorStore(vs vectorstore.VectorStore) Option {
	return func(bk *BuiltinKnowledge) {
		bk.vectorStore = vs
	}
}

// WithChunking sets a custom chunking strategy.
func WithChunking(strategy chunking.Strategy) Option {
	return func(bk *BuiltinKnowledge) {
		bk.chunking = strategy
	}
}

// WithSources sets the corpus sources.
func WithSources(sources []source.Source) Option {
	return func(bk *BuiltinKnowledge) {
		bk.sources = sources
	}
}

// WithParallelism bounds the number of concurrent embedding requests
// during load.
func WithParallelism(n int) Option {
	return func(bk *BuiltinKnowledge) {
		if n > 0 {
			bk.parallelism = n
		}
	}
}

// WithDefaultSearchLimit sets the limit used when Search is called with
// a non-positive limit.
func WithDefaultSearchLimit(limit int) Option {
	return func(bk *BuiltinKnowledge) {
		if limit > 0 {
			bk.defaultLimit = limit
		}
	}
}

// New creates a BuiltinKnowledge with the given options.
func New(opts ...Option) *BuiltinKnowledge {
	bk := &BuiltinKnowledge{
		chunking:     chunking.NewFixedSizeChunking(),
		parallelism:  defaultEmbedParallelism,
		defaultLimit: DefaultSearchLimit,
	}
	for _, opt := range opts {
		opt(bk)
	}
	return bk
}

// Load reads all sources, chunks and embeds their documents, and fills
// the vector store. It runs at most once; concurrent and repeated calls
// return the first outcome.
func (bk *BuiltinKnowledge) Load(ctx context.Context) error {
	bk.loadOnce.Do(func() {
		bk.loadErr = bk.load(ctx)
		bk.loaded = bk.loadErr == nil
	})
	return bk.loadErr
}

func (bk *BuiltinKnowledge) load(ctx context.Context) error {
	if err := bk.validate(); err != nil {
		return err
	}

	chunks, err := bk.collectChunks(ctx)
	if err != nil {
		return err
	}
	if err := bk.embedAndStore(ctx, chunks); err != nil {
		return err
	}

	log.Infof("knowledge index built: %d chunks from %d sources", len(chunks), len(bk.sources))
	return nil
}

func (bk *BuiltinKnowledge) validate() error {
	if bk.embedder == nil {
		return ErrMissingEmbedder
	}
	if bk.vectorStore == nil {
		return ErrMissingVectorStore
	}
	if len(bk.sources) == 0 {
		return ErrNoSources
	}
	return nil
}

// collectChunks reads every source and chunks each document.
func (bk *BuiltinKnowledge) collectChunks(ctx context.Context) ([]*document.Document, error) {
	var chunks []*document.Document
	for _, src := range bk.sources {
		docs, err := src.ReadDocuments(ctx)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", src.Name(), err)
		}
		for _, doc := range docs {
			docChunks, err := bk.chunking.Chunk(doc)
			if err != nil {
				return nil, fmt.Errorf("chunk document %q: %w", doc.Name, err)
			}
			chunks = append(chunks, docChunks...)
		}
	}
	return chunks, nil
}

// embedAndStore embeds chunks with a bounded worker pool and adds them
// to the vector store. The first error aborts the build.
func (bk *BuiltinKnowledge) embedAndStore(ctx context.Context, chunks []*document.Document) error {
	pool, err := ants.NewPool(bk.parallelism)
	if err != nil {
		return fmt.Errorf("create embed pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	for _, chunk := range chunks {
		chunk := chunk
		wg.Add(1)
		if submitErr := pool.Submit(func() {
			defer wg.Done()
			embedding, err := bk.embedder.GetEmbedding(ctx, chunk.Content)
			if err != nil {
				setErr(fmt.Errorf("embed chunk %q: %w", chunk.ID, err))
				return
			}
			if err := bk.vectorStore.Add(ctx, chunk, embedding); err != nil {
				setErr(fmt.Errorf("store chunk %q: %w", chunk.ID, err))
			}
		}); submitErr != nil {
			wg.Done()
			setErr(fmt.Errorf("submit embed task: %w", submitErr))
			break
		}
	}
	wg.Wait()
	return firstErr
}

// Search embeds the query with the same embedder used at build time and
// returns the most similar chunks, most-relevant first. A non-positive
// limit falls back to the configured default. Search never mutates the
// index and is safe for concurrent use after Load.
func (bk *BuiltinKnowledge) Search(ctx context.Context, query string, limit int) ([]*SearchHit, error) {
	if !bk.loaded {
		return nil, ErrNotLoaded
	}
	if limit <= 0 {
		limit = bk.defaultLimit
	}

	vector, err := bk.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	result, err := bk.vectorStore.Search(ctx, &vectorstore.SearchQuery{
		Vector: vector,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	hits := make([]*SearchHit, 0, len(result.Results))
	for _, scored := range result.Results {
		hits = append(hits, &SearchHit{Document: scored.Document, Score: scored.Score})
	}
	return hits, nil
}
