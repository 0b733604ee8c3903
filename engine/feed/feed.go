// Package feed fetches the near-earth-object feed whose first date sets the initial asteroid count.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// DefaultURL is the NeoWs feed for the current day.
const DefaultURL = "https://www.neowsapp.com/rest/v1/feed/today"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrUnexpectedStatus is returned when the feed endpoint answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected feed response status")
	// ErrMissingURL is returned when a Client has no URL to fetch.
	ErrMissingURL = errors.New("feed url is empty")
)

// Object is one near-earth object listed under a date.
type Object struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	AbsoluteMagnitude    float64 `json:"absolute_magnitude_h"`
	PotentiallyHazardous bool    `json:"is_potentially_hazardous_asteroid"`
}

// Feed is the decoded feed payload.
type Feed struct {
	ElementCount     int                 `json:"element_count"`
	NearEarthObjects map[string][]Object `json:"near_earth_objects"`
}

// Dates returns the feed's date keys in ascending order.
func (f *Feed) Dates() []string {
	if f == nil {
		return nil
	}
	dates := make([]string, 0, len(f.NearEarthObjects))
	for d := range f.NearEarthObjects {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	return dates
}

// FirstDateCount returns the number of objects listed under the lexicographically first date key,
// or 0 when the feed lists no dates.
func (f *Feed) FirstDateCount() int {
	dates := f.Dates()
	if len(dates) == 0 {
		return 0
	}
	return len(f.NearEarthObjects[dates[0]])
}

// Decode reads one feed payload from r.
//
// Parameters:
//   - r: the JSON payload
//
// Returns:
//   - *Feed: the decoded feed
//   - error: an error if the payload is not valid JSON
func Decode(r io.Reader) (*Feed, error) {
	var f Feed
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	return &f, nil
}

type client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// Client fetches the feed once per call. It never retries.
type Client interface {
	// Fetch performs a GET on the configured URL and decodes the response.
	//
	// Parameters:
	//   - ctx: cancels the request
	//
	// Returns:
	//   - *Feed: the decoded feed
	//   - error: a transport, status or decode error
	Fetch(ctx context.Context) (*Feed, error)

	// URL returns the endpoint the client fetches.
	URL() string
}

var _ Client = &client{}

// NewClient creates a Client for DefaultURL with a 30 second timeout unless overridden.
//
// Parameters:
//   - options: functional options such as WithURL and WithHTTPClient
//
// Returns:
//   - Client: the new client
func NewClient(options ...ClientBuilderOption) Client {
	c := &client{
		url:        DefaultURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *client) URL() string {
	return c.url
}

func (c *client) Fetch(ctx context.Context) (*Feed, error) {
	if c.url == "" {
		return nil, ErrMissingURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: %w: %d", c.url, ErrUnexpectedStatus, resp.StatusCode)
	}

	f, err := Decode(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Info("feed fetched",
		zap.String("url", c.url),
		zap.Int("elementCount", f.ElementCount),
		zap.Int("dates", len(f.NearEarthObjects)),
		zap.Duration("took", time.Since(start)),
	)
	return f, nil
}
