//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

package evaluation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLogAppendAndRecords(t *testing.T) {
	sl := NewSessionLog()
	assert.Zero(t, sl.Len())

	sl.Append(&QueryRecord{ID: "a", Faithfulness: 8, Relevance: 9})
	sl.Append(&QueryRecord{ID: "b", Faithfulness: 6, Relevance: 7})
	sl.Append(nil) // ignored

	require.Equal(t, 2, sl.Len())
	records := sl.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
}

func TestSessionLogRecordsIsCopy(t *testing.T) {
	sl := NewSessionLog()
	sl.Append(&QueryRecord{ID: "a"})

	records := sl.Records()
	records[0] = &QueryRecord{ID: "mutated"}
	assert.Equal(t, "a", sl.Records()[0].ID)
}

func TestSummaryEmpty(t *testing.T) {
	summary := NewSessionLog().Summary()
	assert.Zero(t, summary.Count)
	assert.Zero(t, summary.MeanFaithfulness)
	assert.Zero(t, summary.MeanRelevance)
}

func TestSummary(t *testing.T) {
	sl := NewSessionLog()
	sl.Append(&QueryRecord{Faithfulness: 8, Relevance: 10})
	sl.Append(&QueryRecord{Faithfulness: 6, Relevance: 7})
	sl.Append(&QueryRecord{Faithfulness: 0, Relevance: 0, Failed: true})

	summary := sl.Summary()
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 1, summary.Failed)
	assert.InDelta(t, 14.0/3, summary.MeanFaithfulness, 1e-9)
	assert.InDelta(t, 17.0/3, summary.MeanRelevance, 1e-9)

	// Integer score n lands in bucket n-1. The failed record counts
	// toward the means but never appears as a score judgment.
	assert.Equal(t, 1, summary.FaithfulnessHist[7])
	assert.Equal(t, 1, summary.FaithfulnessHist[5])
	assert.Equal(t, 0, summary.FaithfulnessHist[0])
	assert.Equal(t, 1, summary.RelevanceHist[9])
	assert.Equal(t, 1, summary.RelevanceHist[6])
	assert.Equal(t, 0, summary.RelevanceHist[0])
}

func TestSummaryFailedOnlyRecords(t *testing.T) {
	sl := NewSessionLog()
	sl.Append(&QueryRecord{Faithfulness: 0, Relevance: 0, Failed: true})
	sl.Append(&QueryRecord{Faithfulness: 0, Relevance: 0, Failed: true})

	summary := sl.Summary()
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 2, summary.Failed)
	assert.Zero(t, summary.MeanFaithfulness)
	for i := 0; i < 10; i++ {
		assert.Zero(t, summary.FaithfulnessHist[i])
		assert.Zero(t, summary.RelevanceHist[i])
	}
}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{0, 0},
		{0.5, 0},
		{1, 0},
		{1.5, 1},
		{5, 4},
		{7.5, 7},
		{10, 9},
		{12, 9},
		{-1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bucketFor(tt.score), "score %v", tt.score)
	}
}

func TestSessionLogConcurrentAppend(t *testing.T) {
	sl := NewSessionLog()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sl.Append(&QueryRecord{ID: fmt.Sprintf("rec-%d", i), Faithfulness: 5, Relevance: 5})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, sl.Len())
	summary := sl.Summary()
	assert.Equal(t, 50, summary.Count)
	assert.InDelta(t, 5.0, summary.MeanFaithfulness, 1e-9)
}
