// Package omdb implements a best-effort metadata lookup against the
// OMDb API. A lookup either finds a movie, reports an explicit miss
// via ErrNotFound, or fails with a transport error. Callers are
// expected to treat every failure as non-fatal and fall back to the
// values the user supplied.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public OMDb endpoint.
const DefaultBaseURL = "https://www.omdbapi.com/"

// NotAvailable is the sentinel OMDb uses for fields it has no data
// for. Fields missing from a response entirely are defaulted to it.
const NotAvailable = "N/A"

// ErrNotFound is returned when OMDb explicitly reports no match for
// the requested title.
var ErrNotFound = errors.New("omdb: movie not found")

// Movie is the metadata OMDb returns for a title. All fields are the
// raw upstream strings; Year and Rating are not parsed here because
// OMDb emits values like "N/A" or "2010–2013" that only the caller
// can decide how to handle.
type Movie struct {
	Title    string
	Year     string
	Rating   string
	Director string
	Plot     string
	Poster   string
}

// Client performs lookups against a single OMDb endpoint. One request
// per Lookup call, no retries; the transport timeout is the only
// bound besides the caller's context.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewClient returns a Client for the given API key. baseURL may be
// empty, in which case DefaultBaseURL is used.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

// lookupResp mirrors the subset of the OMDb payload this service
// consumes. Response is "True" or "False"; on "False" the Error field
// carries the upstream reason.
type lookupResp struct {
	Title      string
	Year       string
	ImdbRating string `json:"imdbRating"`
	Director   string
	Plot       string
	Poster     string
	Response   string
	Error      string
}

// Lookup fetches metadata for the given title. It returns ErrNotFound
// when OMDb reports no match, and a wrapped transport or decode error
// otherwise. On success every absent field is defaulted to
// NotAvailable and the director is cut down to the first credited
// name (OMDb sometimes returns a comma-separated list).
func (c *Client) Lookup(ctx context.Context, title string) (*Movie, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("omdb: parse base url: %w", err)
	}
	q := u.Query()
	q.Set("apikey", c.apiKey)
	q.Set("t", title)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("omdb: build request: %w", err)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("omdb: request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omdb: unexpected status %d", res.StatusCode)
	}

	var lr lookupResp
	if err := json.NewDecoder(res.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("omdb: decode response: %w", err)
	}
	if lr.Response == "False" {
		return nil, ErrNotFound
	}

	return &Movie{
		Title:    orNA(lr.Title),
		Year:     orNA(lr.Year),
		Rating:   orNA(lr.ImdbRating),
		Director: firstDirector(orNA(lr.Director)),
		Plot:     orNA(lr.Plot),
		Poster:   orNA(lr.Poster),
	}, nil
}

// orNA substitutes NotAvailable for empty upstream fields.
func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// firstDirector truncates a comma-separated credit list to the first
// name, so "Alice Director, Bob Director" becomes "Alice Director".
func firstDirector(s string) string {
	first, _, _ := strings.Cut(s, ",")
	return strings.TrimSpace(first)
}
