//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package assistant composes the knowledge index and a generator into a
// question-answering pipeline: query in, grounded answer plus the exact
// retrieval context out.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ringside-ai/ringside/knowledge"
	"github.com/ringside-ai/ringside/log"
	"github.com/ringside-ai/ringside/model"
)

// ContextSeparator joins retrieved chunk texts into the context string.
const ContextSeparator = "\n---\n"

// Pipeline errors.
var (
	// ErrEmptyQuery is returned when Answer is called with a blank query.
	ErrEmptyQuery = errors.New("assistant: query is empty")
	// ErrMissingKnowledge is returned when no knowledge index is configured.
	ErrMissingKnowledge = errors.New("assistant: knowledge index is required")
	// ErrMissingGenerator is returned when no generator is configured.
	ErrMissingGenerator = errors.New("assistant: generator is required")
)

// answerPromptFormat instructs the model to stay inside the supplied
// context. The context placeholder comes first, the query second. The
// prompt is Spanish, like the corpus and the customers it serves.
const answerPromptFormat = `Eres un asistente de ventas de una tienda de artículos de boxeo.
Responde la pregunta del cliente usando SOLO el contexto de abajo.
Si el contexto no contiene la respuesta, di que no tienes esa información.

Contexto:
%s

Pregunta: %s

Respuesta:`

// Searcher retrieves the most similar chunks for a query, most-relevant
// first. Implemented by knowledge.BuiltinKnowledge.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]*knowledge.SearchHit, error)
}

// Answer is the outcome of one pipeline run.
type Answer struct {
	// Text is the raw generated answer.
	Text string

	// Context is exactly the text that was fed to the model as retrieval
	// context: the retrieved chunks joined with ContextSeparator, in
	// retrieval order. It is reproducible for audit.
	Context string

	// Hits are the retrieved chunks backing Context, most-relevant first.
	Hits []*knowledge.SearchHit
}

// Pipeline answers queries from the knowledge index.
type Pipeline struct {
	knowledge Searcher
	generator model.Generator
	topK      int
}

// Option represents a functional option for configuring the Pipeline.
type Option func(*Pipeline)

// WithTopK sets how many chunks are retrieved per query.
func WithTopK(k int) Option {
	return func(p *Pipeline) {
		if k > 0 {
			p.topK = k
		}
	}
}

// New creates a pipeline over the given knowledge index and generator.
func New(kb Searcher, gen model.Generator, opts ...Option) (*Pipeline, error) {
	if kb == nil {
		return nil, ErrMissingKnowledge
	}
	if gen == nil {
		return nil, ErrMissingGenerator
	}
	p := &Pipeline{
		knowledge: kb,
		generator: gen,
		topK:      knowledge.DefaultSearchLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Answer retrieves the top-k chunks for the query, builds the context
// string and asks the generator for an answer grounded in it.
//
// Zero retrieved chunks is not an error: the pipeline proceeds with an
// empty context, which shows up as low faithfulness downstream. A
// generator failure is propagated so the caller can decide the fallback.
func (p *Pipeline) Answer(ctx context.Context, query string) (*Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	hits, err := p.knowledge.Search(ctx, query, p.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	if len(hits) == 0 {
		log.WarnContext(ctx, "no chunks retrieved, answering with empty context")
	}

	contextText := JoinContext(hits)
	prompt := fmt.Sprintf(answerPromptFormat, contextText, query)

	text, err := p.generator.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &Answer{
		Text:    text,
		Context: contextText,
		Hits:    hits,
	}, nil
}

// JoinContext joins hit chunk texts with ContextSeparator in retrieval order.
func JoinContext(hits []*knowledge.SearchHit) string {
	parts := make([]string, 0, len(hits))
	for _, hit := range hits {
		parts = append(parts, hit.Document.Content)
	}
	return strings.Join(parts, ContextSeparator)
}
