// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ads

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/ads-parser/pkg/types"
)

// ADS quota headers. Reset is a Unix timestamp in seconds.
const (
	headerLimit     = "X-RateLimit-Limit"
	headerRemaining = "X-RateLimit-Remaining"
	headerReset     = "X-RateLimit-Reset"
)

// ParseRateLimit reads the quota headers of a response. The snapshot is
// marked observed only when X-RateLimit-Remaining parses; limit and reset
// are best effort.
func ParseRateLimit(h http.Header) types.RateLimit {
	var rl types.RateLimit

	remaining, ok := headerInt(h, headerRemaining)
	if !ok {
		return rl
	}
	rl.Observed = true
	rl.Remaining = remaining

	if limit, ok := headerInt(h, headerLimit); ok {
		rl.Limit = limit
	}
	if reset, ok := headerInt(h, headerReset); ok && reset > 0 {
		rl.Reset = time.Unix(int64(reset), 0).UTC()
	}
	return rl
}

func headerInt(h http.Header, key string) (int, bool) {
	v := strings.TrimSpace(h.Get(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
