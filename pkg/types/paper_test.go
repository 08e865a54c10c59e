// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitTighter(t *testing.T) {
	reset := time.Unix(1767225600, 0).UTC()
	none := RateLimit{}
	high := RateLimit{Observed: true, Limit: 5000, Remaining: 4000, Reset: reset}
	low := RateLimit{Observed: true, Limit: 5000, Remaining: 12, Reset: reset}

	tests := []struct {
		name string
		a, b RateLimit
		want RateLimit
	}{
		{"both unobserved", none, none, none},
		{"observed beats unobserved", none, high, high},
		{"unobserved never wins", high, none, high},
		{"lower remaining wins", high, low, low},
		{"keeps lower", low, high, low},
		{"zero remaining is tightest", low, RateLimit{Observed: true}, RateLimit{Observed: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Tighter(tt.b))
		})
	}
}

func TestBulkResultFound(t *testing.T) {
	r := BulkResult{
		Requested: []string{"C", "A", "B"},
		Papers:    map[string]PaperRecord{"A": {Bibcode: "A"}, "C": {Bibcode: "C"}},
		NotFound:  []string{"B"},
	}
	assert.Equal(t, []string{"C", "A"}, r.Found())
	assert.False(t, r.HasFailures())

	r.FailedBatches = 1
	assert.True(t, r.HasFailures())
}

func TestBulkResultFoundWithoutRequested(t *testing.T) {
	r := BulkResult{Papers: map[string]PaperRecord{"Z": {}, "A": {}}}
	assert.Equal(t, []string{"A", "Z"}, r.Found())
	assert.Empty(t, BulkResult{}.Found())
}
