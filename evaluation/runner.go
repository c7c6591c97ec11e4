//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package evaluation runs the answer pipeline under the judge, for single
// interactive queries and for batch runs over a labeled dataset.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ringside-ai/ringside/assistant"
	"github.com/ringside-ai/ringside/evaluation/judge"
	"github.com/ringside-ai/ringside/log"
)

// FailedScore is the sentinel recorded for both metrics when no answer
// was produced at all. It is distinct from judge.FallbackScore, which
// means an answer was produced but the judge failed to score it.
const FailedScore = 0.0

// Runner errors.
var (
	// ErrMissingPipeline is returned when no answer pipeline is configured.
	ErrMissingPipeline = errors.New("evaluation: answer pipeline is required")
	// ErrMissingJudge is returned when no judge is configured.
	ErrMissingJudge = errors.New("evaluation: judge is required")
)

// AnswerPipeline produces grounded answers for queries.
// Implemented by assistant.Pipeline.
type AnswerPipeline interface {
	Answer(ctx context.Context, query string) (*assistant.Answer, error)
}

// EvalResult is the outcome of one batch dataset item.
type EvalResult struct {
	Query        string  `json:"query"`
	GroundTruth  string  `json:"ground_truth"`
	Answer       string  `json:"answer"`
	Faithfulness float64 `json:"faithfulness"`
	Relevance    float64 `json:"relevance"`
	Failed       bool    `json:"failed,omitempty"`
}

// BatchReport aggregates a full batch run.
type BatchReport struct {
	// Results holds one entry per dataset item, in dataset order.
	Results []EvalResult `json:"results"`

	// Evaluated is the number of produced results.
	Evaluated int `json:"evaluated"`

	// MeanFaithfulness is the mean over Results; 0 when there is no data.
	MeanFaithfulness float64 `json:"mean_faithfulness"`

	// MeanRelevance is the mean over Results; 0 when there is no data.
	MeanRelevance float64 `json:"mean_relevance"`
}

// HasData reports whether the batch produced any results. Callers must
// check it before reading the means: an empty dataset yields an empty
// report, never a division error.
func (r *BatchReport) HasData() bool {
	return r.Evaluated > 0
}

// Runner drives the answer pipeline and judge over queries, logging every
// outcome to an explicit session log.
type Runner struct {
	pipeline   AnswerPipeline
	judge      *judge.Judge
	sessionLog *SessionLog
}

// NewRunner creates a runner. The session log may be nil, in which case
// a fresh one is created and owned by the runner.
func NewRunner(pipeline AnswerPipeline, j *judge.Judge, sessionLog *SessionLog) (*Runner, error) {
	if pipeline == nil {
		return nil, ErrMissingPipeline
	}
	if j == nil {
		return nil, ErrMissingJudge
	}
	if sessionLog == nil {
		sessionLog = NewSessionLog()
	}
	return &Runner{pipeline: pipeline, judge: j, sessionLog: sessionLog}, nil
}

// SessionLog returns the log this runner appends to.
func (r *Runner) SessionLog() *SessionLog {
	return r.sessionLog
}

// Step processes one query end to end: answer, score faithfulness against
// the exact context used, score relevance, log, return.
//
// A pipeline failure does not raise: the record carries an error
// placeholder answer with both scores forced to FailedScore, and it is
// still logged so failures stay visible in session metrics.
func (r *Runner) Step(ctx context.Context, query string) *QueryRecord {
	record := &QueryRecord{
		ID:        uuid.NewString(),
		Query:     query,
		CreatedAt: time.Now().UTC(),
	}

	answer, err := r.pipeline.Answer(ctx, query)
	if err != nil {
		log.ErrorfContext(ctx, "answer pipeline failed for query %q: %v", query, err)
		record.Answer = fmt.Sprintf("An error occurred: %v", err)
		record.Faithfulness = FailedScore
		record.Relevance = FailedScore
		record.Failed = true
		r.sessionLog.Append(record)
		return record
	}

	faith := r.judge.Faithfulness(ctx, query, answer.Context, answer.Text)
	rel := r.judge.Relevance(ctx, query, answer.Text)

	record.Answer = answer.Text
	record.Context = answer.Context
	record.Faithfulness = faith.Score
	record.FaithfulnessFallback = faith.Fallback
	record.Relevance = rel.Score
	record.RelevanceFallback = rel.Fallback
	r.sessionLog.Append(record)
	return record
}

// RunBatch evaluates the dataset items in order with the same answer and
// scoring step as interactive queries. Ground truth labels are held out:
// they are copied into the results for review but never fed into the
// pipeline.
func (r *Runner) RunBatch(ctx context.Context, items []DatasetItem) *BatchReport {
	report := &BatchReport{Results: make([]EvalResult, 0, len(items))}

	for _, item := range items {
		record := r.Step(ctx, item.Query)
		report.Results = append(report.Results, EvalResult{
			Query:        item.Query,
			GroundTruth:  item.GroundTruth,
			Answer:       record.Answer,
			Faithfulness: record.Faithfulness,
			Relevance:    record.Relevance,
			Failed:       record.Failed,
		})
	}

	report.Evaluated = len(report.Results)
	if report.Evaluated == 0 {
		log.Warn("batch evaluation ran over an empty dataset, no aggregate metrics")
		return report
	}

	var faithSum, relSum float64
	for _, res := range report.Results {
		faithSum += res.Faithfulness
		relSum += res.Relevance
	}
	report.MeanFaithfulness = faithSum / float64(report.Evaluated)
	report.MeanRelevance = relSum / float64(report.Evaluated)
	return report
}
