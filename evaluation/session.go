//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

package evaluation

import (
	"math"
	"sync"
	"time"
)

// histogramBuckets is the number of score buckets in session summaries,
// one per integer score 1..10. Failed records carry no judgment and are
// counted separately, not in the histograms.
const histogramBuckets = 10

// QueryRecord is one scored interaction. It is immutable after creation
// and appended to the session log in chronological order.
type QueryRecord struct {
	// ID uniquely identifies the record.
	ID string `json:"id"`

	// Query is the user query.
	Query string `json:"query"`

	// Answer is the generated answer, or an error placeholder when
	// Failed is set.
	Answer string `json:"answer"`

	// Context is exactly the retrieval context the answer was generated
	// from: chunks joined in retrieval order.
	Context string `json:"context"`

	// Faithfulness is the groundedness score. 0 when Failed.
	Faithfulness float64 `json:"faithfulness"`

	// Relevance is the query-relevance score. 0 when Failed.
	Relevance float64 `json:"relevance"`

	// FaithfulnessFallback marks Faithfulness as a judge-failure
	// substitute rather than a genuine judgment.
	FaithfulnessFallback bool `json:"faithfulness_fallback,omitempty"`

	// RelevanceFallback marks Relevance as a judge-failure substitute.
	RelevanceFallback bool `json:"relevance_fallback,omitempty"`

	// Failed is true when no answer was produced at all. Both scores are
	// the 0 sentinel in that case, distinct from the judge fallback.
	Failed bool `json:"failed,omitempty"`

	// CreatedAt is the record creation time.
	CreatedAt time.Time `json:"created_at"`
}

// SessionSummary aggregates the records of one session.
type SessionSummary struct {
	// Count is the number of records.
	Count int `json:"count"`

	// MeanFaithfulness is the mean faithfulness over all records.
	MeanFaithfulness float64 `json:"mean_faithfulness"`

	// MeanRelevance is the mean relevance over all records.
	MeanRelevance float64 `json:"mean_relevance"`

	// Failed is the number of records with no produced answer. Their 0
	// sentinel scores count toward the means but not the histograms.
	Failed int `json:"failed"`

	// FaithfulnessHist counts non-failed records per integer score
	// bucket 1..10; index i holds scores in (i, i+1].
	FaithfulnessHist [histogramBuckets]int `json:"faithfulness_hist"`

	// RelevanceHist counts non-failed records per integer score bucket 1..10.
	RelevanceHist [histogramBuckets]int `json:"relevance_hist"`
}

// SessionLog is the append-only record log of one session. It is owned
// by the session that created it and passed explicitly to whoever needs
// it; there is no ambient global log. Safe for concurrent use.
//
// Log lifetime equals session lifetime; records are not persisted.
type SessionLog struct {
	mu      sync.RWMutex
	records []*QueryRecord
}

// NewSessionLog creates an empty session log.
func NewSessionLog() *SessionLog {
	return &SessionLog{}
}

// Append adds a record to the log.
func (sl *SessionLog) Append(record *QueryRecord) {
	if record == nil {
		return
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.records = append(sl.records, record)
}

// Len returns the number of records.
func (sl *SessionLog) Len() int {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return len(sl.records)
}

// Records returns a copy of the record list in insertion order.
func (sl *SessionLog) Records() []*QueryRecord {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	out := make([]*QueryRecord, len(sl.records))
	copy(out, sl.records)
	return out
}

// Summary computes aggregate statistics over the logged records.
func (sl *SessionLog) Summary() SessionSummary {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	summary := SessionSummary{Count: len(sl.records)}
	if len(sl.records) == 0 {
		return summary
	}

	var faithSum, relSum float64
	for _, rec := range sl.records {
		faithSum += rec.Faithfulness
		relSum += rec.Relevance
		if rec.Failed {
			summary.Failed++
			continue
		}
		summary.FaithfulnessHist[bucketFor(rec.Faithfulness)]++
		summary.RelevanceHist[bucketFor(rec.Relevance)]++
	}
	summary.MeanFaithfulness = faithSum / float64(len(sl.records))
	summary.MeanRelevance = relSum / float64(len(sl.records))
	return summary
}

// bucketFor maps a score to its histogram bucket: index i holds scores
// in (i, i+1], so integer scores sit at the top of their bucket. Scores
// at or below 1 land in bucket 0.
func bucketFor(score float64) int {
	bucket := int(math.Ceil(score)) - 1
	if bucket < 0 {
		return 0
	}
	if bucket >= histogramBuckets {
		return histogramBuckets - 1
	}
	return bucket
}
