// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ads is a small client for the NASA Astrophysics Data System
// search API. It issues token-authenticated single-record and batched
// bibcode lookups, maps responses to PaperRecords, and reports the quota
// headers ADS attaches to every response.
package ads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/ads-parser/internal/httputil"
	"github.com/pdiddy/ads-parser/pkg/types"
)

const (
	// DefaultBaseURL is the ADS API root.
	DefaultBaseURL = "https://api.adsabs.harvard.edu/v1"

	// DefaultTimeout applies to every request unless the config overrides it.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBatchSize is the largest bulk lookup accepted. ADS answers
	// up to 2000 rows, but OR-joined queries get slow well before that.
	DefaultMaxBatchSize = 100

	// DefaultUserAgent identifies the client to ADS.
	DefaultUserAgent = "ads-parser/0.1"

	searchPath = "/search/query"
)

var recordFields = []string{"bibcode", "title", "author", "pub", "year", "citation_count"}

// Fields returns the ADS field list requested for records.
func Fields(includeAbstract bool) string {
	fl := strings.Join(recordFields, ",")
	if includeAbstract {
		fl += ",abstract"
	}
	return fl
}

// Client talks to the ADS search endpoint. It holds no global state; the
// token comes from the config value it was built with.
type Client struct {
	httpClient *http.Client
	cfg        types.ADSConfig
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client. Its Timeout is left as is.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient validates the token and applies defaults. It fails with an
// AuthConfigError, without touching the network, when the token is
// missing or malformed.
func NewClient(cfg types.ADSConfig, opts ...ClientOption) (*Client, error) {
	cfg.Token = strings.TrimSpace(cfg.Token)
	if cfg.Token == "" {
		return nil, &AuthConfigError{Reason: "no API token configured (set ADS_API_TOKEN or .secrets/ads-api-token)"}
	}
	if strings.ContainsAny(cfg.Token, " \t\r\n") {
		return nil, &AuthConfigError{Reason: "API token contains whitespace"}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = DefaultMaxBatchSize
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MaxBatchSize returns the largest batch BulkLookup accepts.
func (c *Client) MaxBatchSize() int { return c.cfg.MaxBatchSize }

// Headers returns the headers sent with every request.
func (c *Client) Headers() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+c.cfg.Token)
	h.Set("User-Agent", c.cfg.UserAgent)
	h.Set("Accept", "application/json")
	return h
}

// BulkResponse is the payload of one bulk lookup.
type BulkResponse struct {
	Docs      []Document
	NumFound  int
	RateLimit types.RateLimit
}

// Lookup fetches one record by bibcode. It returns a NotFoundError when
// ADS has no matching document.
func (c *Client) Lookup(ctx context.Context, bibcode string, includeAbstract bool) (types.PaperRecord, error) {
	bibcode = strings.TrimSpace(bibcode)
	if bibcode == "" {
		return types.PaperRecord{}, fmt.Errorf("empty bibcode")
	}

	params := url.Values{
		"q":    {bibcodeClause(bibcode)},
		"fl":   {Fields(includeAbstract)},
		"rows": {"1"},
	}
	sr, _, err := c.query(ctx, params)
	if err != nil {
		return types.PaperRecord{}, err
	}
	if len(sr.Response.Docs) == 0 {
		return types.PaperRecord{}, &NotFoundError{Bibcode: bibcode}
	}
	return Extract(sr.Response.Docs[0])
}

// BulkLookup fetches up to MaxBatchSize bibcodes in a single request. The
// quota snapshot is returned on success and, when the headers were
// present, alongside transient and auth failures too.
func (c *Client) BulkLookup(ctx context.Context, bibcodes []string, includeAbstract bool) (BulkResponse, error) {
	if len(bibcodes) == 0 {
		return BulkResponse{}, nil
	}
	if len(bibcodes) > c.cfg.MaxBatchSize {
		return BulkResponse{}, fmt.Errorf("batch of %d bibcodes exceeds limit of %d", len(bibcodes), c.cfg.MaxBatchSize)
	}

	params := url.Values{
		"q":    {BulkQuery(bibcodes)},
		"fl":   {Fields(includeAbstract)},
		"rows": {strconv.Itoa(len(bibcodes))},
	}
	sr, rl, err := c.query(ctx, params)
	out := BulkResponse{RateLimit: rl}
	if err != nil {
		return out, err
	}
	out.Docs = sr.Response.Docs
	out.NumFound = sr.Response.NumFound
	return out, nil
}

// Ping runs a one-row query to confirm the token works and returns the
// number of matching documents.
func (c *Client) Ping(ctx context.Context) (int, error) {
	params := url.Values{
		"q":    {"author:Einstein"},
		"fl":   {"bibcode,title"},
		"rows": {"1"},
	}
	sr, _, err := c.query(ctx, params)
	if err != nil {
		return 0, err
	}
	return sr.Response.NumFound, nil
}

// BulkQuery joins bibcode clauses with OR.
func BulkQuery(bibcodes []string) string {
	clauses := make([]string, len(bibcodes))
	for i, b := range bibcodes {
		clauses[i] = bibcodeClause(b)
	}
	return strings.Join(clauses, " OR ")
}

// bibcodeClause quotes the bibcode; many contain '&' or '.' runs.
func bibcodeClause(bibcode string) string {
	return `bibcode:"` + strings.ReplaceAll(bibcode, `"`, `\"`) + `"`
}

// query sends a search request and classifies the outcome.
func (c *Client) query(ctx context.Context, params url.Values) (searchResponse, types.RateLimit, error) {
	var sr searchResponse
	reqURL := c.cfg.BaseURL + searchPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return sr, types.RateLimit{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.Headers()

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return sr, types.RateLimit{}, ctxErr
		}
		return sr, types.RateLimit{}, &TransientError{Err: err}
	}
	defer resp.Body.Close()

	rl := ParseRateLimit(resp.Header)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return sr, rl, &AuthError{StatusCode: resp.StatusCode, Body: truncateBody(body)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var cause error
		if msg := truncateBody(body); msg != "" {
			cause = errors.New(msg)
		}
		return sr, rl, &TransientError{StatusCode: resp.StatusCode, Err: cause}
	}

	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return sr, rl, &TransientError{StatusCode: resp.StatusCode, Err: fmt.Errorf("parsing ADS response: %w", err)}
	}
	return sr, rl, nil
}

// ADS search response envelope.
type searchResponse struct {
	Response searchBody `json:"response"`
}

type searchBody struct {
	NumFound int        `json:"numFound"`
	Docs     []Document `json:"docs"`
}
