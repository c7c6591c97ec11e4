//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package openai provides an OpenAI chat-completions generator.
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ringside-ai/ringside/model"
	"github.com/ringside-ai/ringside/telemetry"
)

// Verify that Model implements the model.Generator interface.
var _ model.Generator = (*Model)(nil)

const (
	// DefaultModel is the default chat model.
	DefaultModel = "gpt-4o"
	// DefaultTemperature keeps answers helpful but mostly grounded.
	DefaultTemperature = 0.3
	// DefaultTimeout bounds a single completion request.
	DefaultTimeout = 30 * time.Second
)

// Model implements model.Generator using the OpenAI chat completions API.
type Model struct {
	client         openai.Client
	name           string
	temperature    float64
	maxTokens      int
	apiKey         string
	baseURL        string
	timeout        time.Duration
	requestOptions []option.RequestOption
}

// Option represents a functional option for configuring the Model.
type Option func(*Model)

// WithModel sets the chat model name.
func WithModel(name string) Option {
	return func(m *Model) {
		m.name = name
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) Option {
	return func(m *Model) {
		m.temperature = temperature
	}
}

// WithMaxTokens caps the completion length. Zero leaves it to the backend.
func WithMaxTokens(maxTokens int) Option {
	return func(m *Model) {
		m.maxTokens = maxTokens
	}
}

// WithAPIKey sets the OpenAI API key.
// If not provided, the OPENAI_API_KEY environment variable is used.
func WithAPIKey(apiKey string) Option {
	return func(m *Model) {
		m.apiKey = apiKey
	}
}

// WithBaseURL sets the base URL for the chat completions API.
// Optional, for OpenAI-compatible APIs.
func WithBaseURL(baseURL string) Option {
	return func(m *Model) {
		m.baseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout. Zero or negative disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(m *Model) {
		m.timeout = timeout
	}
}

// WithRequestOptions sets additional options for the OpenAI client requests.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(m *Model) {
		m.requestOptions = append(m.requestOptions, opts...)
	}
}

// New creates a new OpenAI generator with the given options.
func New(opts ...Option) *Model {
	m := &Model{
		name:        DefaultModel,
		temperature: DefaultTemperature,
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}

	var clientOpts []option.RequestOption
	if m.apiKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(m.apiKey))
	}
	if m.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(m.baseURL))
	}
	m.client = openai.NewClient(clientOpts...)
	return m
}

// Name returns the chat model name.
func (m *Model) Name() string {
	return m.name
}

// Complete implements the model.Generator interface. It sends the prompt
// as a single user message and returns the assistant text. A backend
// error, an empty choice list or blank content all surface as errors so
// the caller can distinguish a failed generation from a real answer.
func (m *Model) Complete(ctx context.Context, prompt string) (text string, err error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	ctx, span := telemetry.Tracer.Start(ctx, fmt.Sprintf("%s %s", telemetry.OperationCompletion, m.name))
	completionAttributes := &telemetry.CompletionAttributes{RequestModel: m.name}
	defer func() {
		completionAttributes.Error = err
		telemetry.TraceCompletion(span, completionAttributes)
		span.End()
	}()

	request := openai.ChatCompletionNewParams{
		Model: m.name,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(m.temperature),
	}
	if m.maxTokens > 0 {
		request.MaxTokens = openai.Int(int64(m.maxTokens))
	}

	completion, err := m.client.Chat.Completions.New(ctx, request, m.requestOptions...)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	completionAttributes.InputTokens = &completion.Usage.PromptTokens
	completionAttributes.OutputTokens = &completion.Usage.CompletionTokens

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}
	return content, nil
}
