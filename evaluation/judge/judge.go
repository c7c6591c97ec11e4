//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package judge scores generated answers with an LLM used as a judge.
//
// Scoring is best-effort: a judge failure never propagates as an error.
// Instead the result carries a neutral fallback score tagged as such, so
// callers can tell a genuine mid-range judgment from a failed one.
package judge

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ringside-ai/ringside/log"
	"github.com/ringside-ai/ringside/model"
)

const (
	// MinScore is the lowest genuine judge score.
	MinScore = 1.0
	// MaxScore is the highest genuine judge score.
	MaxScore = 10.0
	// FallbackScore substitutes for a failed judgment. It deliberately
	// sits mid-range; the Fallback flag is what marks it as degraded.
	FallbackScore = 5.0
)

// faithfulnessPromptFormat asks whether the answer is grounded solely in
// the retrieved context. Judge prompts are Spanish, like the answer
// prompt and the corpus.
const faithfulnessPromptFormat = `Evalúa si la respuesta es fiel al contexto proporcionado.
Pregunta: %s
Contexto: %s
Respuesta: %s
¿La respuesta se basa únicamente en el contexto? Responde con un número del 1 al 10.
Responde SOLO con el número:`

// relevancePromptFormat asks whether the answer addresses the query.
const relevancePromptFormat = `Evalúa qué tan relevante es la respuesta para la pregunta.
Pregunta: %s
Respuesta: %s
¿Qué tan bien responde la respuesta a la pregunta? Responde con un número del 1 al 10.
Responde SOLO con el número:`

// Judgment is the tagged outcome of one scoring call.
type Judgment struct {
	// Score is the numeric judgment in [MinScore, MaxScore], or
	// FallbackScore when Fallback is set.
	Score float64 `json:"score"`

	// Fallback is true when the judge call failed or its output could
	// not be parsed, and Score is the neutral substitute.
	Fallback bool `json:"fallback,omitempty"`

	// Reason records why the judgment fell back.
	Reason string `json:"reason,omitempty"`
}

// Judge scores answers using a generator as the judge model.
type Judge struct {
	generator model.Generator
}

// New creates a judge backed by the given generator.
func New(gen model.Generator) *Judge {
	return &Judge{generator: gen}
}

// Faithfulness scores how well the answer is grounded in the supplied
// context. The context must be exactly the text the answer was generated
// from.
func (j *Judge) Faithfulness(ctx context.Context, query, contextText, answer string) Judgment {
	prompt := fmt.Sprintf(faithfulnessPromptFormat, query, contextText, answer)
	return j.score(ctx, "faithfulness", prompt)
}

// Relevance scores how well the answer addresses the query.
func (j *Judge) Relevance(ctx context.Context, query, answer string) Judgment {
	prompt := fmt.Sprintf(relevancePromptFormat, query, answer)
	return j.score(ctx, "relevance", prompt)
}

// score runs one judge call and converts any failure into a tagged
// fallback judgment.
func (j *Judge) score(ctx context.Context, metric, prompt string) Judgment {
	text, err := j.generator.Complete(ctx, prompt)
	if err != nil {
		log.WarnfContext(ctx, "%s judge call failed, using fallback score: %v", metric, err)
		return Judgment{Score: FallbackScore, Fallback: true, Reason: err.Error()}
	}

	score, err := parseScore(text)
	if err != nil {
		log.WarnfContext(ctx, "%s judge output unparseable, using fallback score: %v", metric, err)
		return Judgment{Score: FallbackScore, Fallback: true, Reason: err.Error()}
	}
	return Judgment{Score: score}
}

// parseScore parses the judge output as a floating-point number.
// Values outside [MinScore, MaxScore] are clamped into range with a
// warning rather than treated as failures: the judge did produce a
// numeric verdict, just an overshooting one.
func parseScore(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("parse judge score %q: %w", trimmed, err)
	}
	if value < MinScore {
		log.Warnf("judge score %v below range, clamping to %v", value, MinScore)
		return MinScore, nil
	}
	if value > MaxScore {
		log.Warnf("judge score %v above range, clamping to %v", value, MaxScore)
		return MaxScore, nil
	}
	return value, nil
}
