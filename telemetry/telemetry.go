//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package telemetry provides tracing helpers for backend model calls.
//
// The tracer is a no-op until the host application installs a global
// OpenTelemetry tracer provider.
package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentName is the instrumentation scope name used for all spans.
const InstrumentName = "github.com/ringside-ai/ringside"

// Operation names recorded on spans.
const (
	OperationEmbeddings = "embeddings"
	OperationCompletion = "completion"
)

// Span attribute keys, following the GenAI semantic conventions.
const (
	KeyOperationName = "gen_ai.operation.name"
	KeyRequestModel  = "gen_ai.request.model"
	KeyDimensions    = "gen_ai.embeddings.dimension.count"
	KeyInputTokens   = "gen_ai.usage.input_tokens"
	KeyOutputTokens  = "gen_ai.usage.output_tokens"
	KeyErrorMessage  = "error.message"
)

// Tracer is the tracer used for all ringside spans.
var Tracer = otel.Tracer(InstrumentName)

// EmbeddingAttributes represents the attributes of an embedding call.
type EmbeddingAttributes struct {
	RequestModel string
	Dimensions   int
	InputTokens  *int64
	Error        error
}

// TraceEmbedding records the attributes of an embedding call on the span.
func TraceEmbedding(span trace.Span, attrs *EmbeddingAttributes) {
	kvs := []attribute.KeyValue{
		attribute.String(KeyOperationName, OperationEmbeddings),
		attribute.String(KeyRequestModel, attrs.RequestModel),
		attribute.Int(KeyDimensions, attrs.Dimensions),
	}
	if attrs.InputTokens != nil {
		kvs = append(kvs, attribute.Int64(KeyInputTokens, *attrs.InputTokens))
	}
	if attrs.Error != nil {
		kvs = append(kvs, attribute.String(KeyErrorMessage, attrs.Error.Error()))
	}
	span.SetAttributes(kvs...)
	if attrs.Error != nil {
		span.SetStatus(codes.Error, attrs.Error.Error())
	}
}

// CompletionAttributes represents the attributes of a completion call.
type CompletionAttributes struct {
	RequestModel string
	InputTokens  *int64
	OutputTokens *int64
	Error        error
}

// TraceCompletion records the attributes of a completion call on the span.
func TraceCompletion(span trace.Span, attrs *CompletionAttributes) {
	kvs := []attribute.KeyValue{
		attribute.String(KeyOperationName, OperationCompletion),
		attribute.String(KeyRequestModel, attrs.RequestModel),
	}
	if attrs.InputTokens != nil {
		kvs = append(kvs, attribute.Int64(KeyInputTokens, *attrs.InputTokens))
	}
	if attrs.OutputTokens != nil {
		kvs = append(kvs, attribute.Int64(KeyOutputTokens, *attrs.OutputTokens))
	}
	if attrs.Error != nil {
		kvs = append(kvs, attribute.String(KeyErrorMessage, attrs.Error.Error()))
	}
	span.SetAttributes(kvs...)
	if attrs.Error != nil {
		span.SetStatus(codes.Error, attrs.Error.Error())
	}
}
