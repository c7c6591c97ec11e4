//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package openai provides an OpenAI embedder implementation.
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ringside-ai/ringside/knowledge/embedder"
	"github.com/ringside-ai/ringside/log"
	"github.com/ringside-ai/ringside/telemetry"
)

// Verify that Embedder implements the embedder.Embedder interface.
var _ embedder.Embedder = (*Embedder)(nil)

const (
	// DefaultModel is the default OpenAI embedding model.
	DefaultModel = "text-embedding-3-small"
	// DefaultDimensions is the default embedding dimension for text-embedding-3-small.
	DefaultDimensions = 1536
	// DefaultMaxRetries is the default maximum number of retries.
	DefaultMaxRetries = 2
	// DefaultTimeout bounds a single embedding request so a stalled
	// backend cannot hang the caller indefinitely.
	DefaultTimeout = 30 * time.Second

	// Model prefix for text-embedding-3 series.
	textEmbedding3Prefix = "text-embedding-3"
)

// defaultRetryBackoff is the default backoff durations for retry attempts.
var defaultRetryBackoff = []time.Duration{
	100 * time.Millisecond,
	200 * time.Millisecond,
	400 * time.Millisecond,
	800 * time.Millisecond,
}

// Embedder implements the embedder.Embedder interface for the OpenAI API.
type Embedder struct {
	client         openai.Client
	model          string
	dimensions     int
	apiKey         string
	baseURL        string
	timeout        time.Duration
	requestOptions []option.RequestOption

	// Retry configuration
	maxRetries   int
	retryBackoff []time.Duration
}

// Option represents a functional option for configuring the Embedder.
type Option func(*Embedder)

// WithModel sets the embedding model to use.
func WithModel(model string) Option {
	return func(e *Embedder) {
		e.model = model
	}
}

// WithDimensions sets the number of dimensions for the embedding.
// Only works with text-embedding-3 and later models.
func WithDimensions(dimensions int) Option {
	return func(e *Embedder) {
		e.dimensions = dimensions
	}
}

// WithAPIKey sets the OpenAI API key.
// If not provided, the OPENAI_API_KEY environment variable is used.
func WithAPIKey(apiKey string) Option {
	return func(e *Embedder) {
		e.apiKey = apiKey
	}
}

// WithBaseURL sets the base URL for the embeddings API.
// Optional, for OpenAI-compatible APIs.
func WithBaseURL(baseURL string) Option {
	return func(e *Embedder) {
		e.baseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout. Zero or negative disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Embedder) {
		e.timeout = timeout
	}
}

// WithRequestOptions sets additional options for the OpenAI client requests.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(e *Embedder) {
		e.requestOptions = append(e.requestOptions, opts...)
	}
}

// WithMaxRetries sets the maximum number of retries for errors.
// Negative values are treated as 0.
func WithMaxRetries(maxRetries int) Option {
	return func(e *Embedder) {
		if maxRetries < 0 {
			maxRetries = 0
		}
		e.maxRetries = maxRetries
	}
}

// WithRetryBackoff sets the backoff durations for each retry attempt.
// If the number of retries exceeds the length of the backoff slice,
// the last backoff duration is used for the remaining retries.
func WithRetryBackoff(backoff []time.Duration) Option {
	return func(e *Embedder) {
		e.retryBackoff = backoff
	}
}

// New creates a new OpenAI embedder with the given options.
func New(opts ...Option) *Embedder {
	e := &Embedder{
		model:        DefaultModel,
		dimensions:   DefaultDimensions,
		maxRetries:   DefaultMaxRetries,
		timeout:      DefaultTimeout,
		retryBackoff: defaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(e)
	}

	// Build client options.
	var clientOpts []option.RequestOption
	if e.apiKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(e.apiKey))
	}
	if e.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(e.baseURL))
	}

	// Retries are handled here, with context-aware backoff.
	clientOpts = append(clientOpts, option.WithMaxRetries(0))

	e.client = openai.NewClient(clientOpts...)
	return e
}

// GetEmbedding implements the embedder.Embedder interface.
// It generates an embedding vector for the given text.
func (e *Embedder) GetEmbedding(ctx context.Context, text string) ([]float64, error) {
	response, err := e.responseWithRetry(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}

	if len(response.Data) == 0 {
		log.WarnContext(ctx, "received empty embedding response from OpenAI API")
		return []float64{}, nil
	}

	embedding := response.Data[0].Embedding
	if len(embedding) == 0 {
		log.WarnContext(ctx, "received empty embedding vector from OpenAI API")
		return []float64{}, nil
	}
	return embedding, nil
}

// GetDimensions implements the embedder.Embedder interface.
func (e *Embedder) GetDimensions() int {
	return e.dimensions
}

// responseWithRetry wraps response with retry logic for errors.
func (e *Embedder) responseWithRetry(ctx context.Context, text string) (*openai.CreateEmbeddingResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		rsp, err := e.response(ctx, text)
		if err == nil {
			return rsp, nil
		}
		lastErr = err

		// No more retries
		if attempt >= e.maxRetries {
			break
		}

		backoff := e.getBackoffDuration(attempt)
		if backoff > 0 {
			log.InfoContext(ctx, fmt.Sprintf("embedding request failed, retrying in %v (attempt %d/%d): %v", backoff, attempt+1, e.maxRetries, err))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		} else {
			log.InfoContext(ctx, fmt.Sprintf("embedding request failed, retrying immediately (attempt %d/%d): %v", attempt+1, e.maxRetries, err))
		}
	}
	return nil, lastErr
}

// getBackoffDuration returns the backoff duration for the given attempt.
// If the attempt index exceeds the backoff slice length, returns the last duration.
func (e *Embedder) getBackoffDuration(attempt int) time.Duration {
	if len(e.retryBackoff) == 0 {
		return 0
	}
	if attempt < len(e.retryBackoff) {
		return e.retryBackoff[attempt]
	}
	return e.retryBackoff[len(e.retryBackoff)-1]
}

func (e *Embedder) response(ctx context.Context, text string) (rsp *openai.CreateEmbeddingResponse, err error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	ctx, span := telemetry.Tracer.Start(ctx, fmt.Sprintf("%s %s", telemetry.OperationEmbeddings, e.model))
	embeddingAttributes := &telemetry.EmbeddingAttributes{
		RequestModel: e.model,
		Dimensions:   e.dimensions,
	}
	defer func() {
		embeddingAttributes.Error = err
		if rsp != nil {
			embeddingAttributes.InputTokens = &rsp.Usage.PromptTokens
		}
		telemetry.TraceEmbedding(span, embeddingAttributes)
		span.End()
	}()

	request := openai.EmbeddingNewParams{
		Input:          openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model:          e.model,
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	}

	// Set dimensions for text-embedding-3 models.
	if isTextEmbedding3Model(e.model) {
		request.Dimensions = openai.Int(int64(e.dimensions))
	}

	requestOpts := make([]option.RequestOption, len(e.requestOptions))
	copy(requestOpts, e.requestOptions)

	return e.client.Embeddings.New(ctx, request, requestOpts...)
}

// isTextEmbedding3Model checks if the model is a text-embedding-3 series model.
func isTextEmbedding3Model(model string) bool {
	return strings.HasPrefix(model, textEmbedding3Prefix)
}
