// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ads

import (
	"net/http"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/ads-parser/pkg/types"
)

func TestParseRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    types.RateLimit
	}{
		{
			name:    "all headers",
			headers: map[string]string{headerLimit: "5000", headerRemaining: "4321", headerReset: "1700000000"},
			want:    types.RateLimit{Observed: true, Limit: 5000, Remaining: 4321, Reset: time.Unix(1700000000, 0).UTC()},
		},
		{
			name:    "remaining only",
			headers: map[string]string{headerRemaining: "7"},
			want:    types.RateLimit{Observed: true, Remaining: 7},
		},
		{
			name:    "no headers",
			headers: nil,
			want:    types.RateLimit{},
		},
		{
			name:    "garbage remaining",
			headers: map[string]string{headerLimit: "5000", headerRemaining: "lots"},
			want:    types.RateLimit{},
		},
		{
			name:    "zero remaining is observed",
			headers: map[string]string{headerRemaining: "0"},
			want:    types.RateLimit{Observed: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			assert.Equal(t, tt.want, ParseRateLimit(h))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&AuthError{StatusCode: 401}).Error(), "401")
	assert.Contains(t, (&AuthError{StatusCode: 403, Body: "nope"}).Error(), "nope")
	assert.Contains(t, (&TransientError{StatusCode: 503}).Error(), "503")
	assert.Contains(t, (&AuthConfigError{Reason: "missing"}).Error(), "missing")
	assert.False(t, (&TransientError{StatusCode: 500}).RateLimited())
	assert.Len(t, truncateBody([]byte(strings.Repeat("a", 500))), 200)
	assert.Equal(t, "short", truncateBody([]byte("  short\n")))
}

func TestTruncateCountsRunes(t *testing.T) {
	body := truncateBody([]byte(strings.Repeat("é", 300)))
	assert.True(t, utf8.ValidString(body))
	assert.Equal(t, 200, utf8.RuneCountInString(body))
	assert.Equal(t, "ß", truncate("ß", 1))
	assert.Equal(t, "ab...", truncate("abcdef", 5))
}
