package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultLabsURL is where the repository publishes the lab registry.
	DefaultLabsURL = "https://sisbsrv2.epfl.ch/static/infoscience_labs.json"

	// DefaultAuthorsURL is where the repository publishes the author registry.
	DefaultAuthorsURL = "https://sisbsrv2.epfl.ch/static/infoscience_authors.json"

	// DefaultUserAgent identifies the exporter to the registry server.
	DefaultUserAgent = "MARC21XML-Infoscience"

	// DefaultTimeout is the default HTTP request timeout. The author
	// registry is several megabytes.
	DefaultTimeout = 60 * time.Second

	// RateLimit is requests per second against the registry server.
	RateLimit = 2.0

	// maxRegistrySize bounds a registry download.
	maxRegistrySize = 64 << 20
)

// Client is a rate-limited HTTP client for the registry documents.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	log        *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient creates a registry client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		userAgent:  DefaultUserAgent,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response, url string) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 400:
		return &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}
	return nil
}

// Get downloads one registry document.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp, url); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRegistrySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}
	c.log.Debug("registry downloaded",
		zap.String("url", url), zap.Int("bytes", len(data)), zap.Duration("elapsed", time.Since(start)))
	return data, nil
}

// read fetches location over HTTP(S), or reads it as a local file.
func (c *Client) read(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return c.Get(ctx, location)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
		}
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}
	return data, nil
}

// FetchLabs loads the lab registry from a URL or file path.
func (c *Client) FetchLabs(ctx context.Context, location string) (Labs, error) {
	data, err := c.read(ctx, location)
	if err != nil {
		return nil, err
	}
	labs, err := ParseLabs(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return labs, nil
}

// FetchAuthors loads the author registry from a URL or file path.
func (c *Client) FetchAuthors(ctx context.Context, location string) (Authors, error) {
	data, err := c.read(ctx, location)
	if err != nil {
		return nil, err
	}
	authors, err := ParseAuthors(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return authors, nil
}

// Sources names where each registry is loaded from: an http(s) URL or a
// local file path.
type Sources struct {
	Labs    string
	Authors string
}

// DefaultSources returns the published registry locations.
func DefaultSources() Sources {
	return Sources{Labs: DefaultLabsURL, Authors: DefaultAuthorsURL}
}

// Load runs the two-step initialisation: the lab registry first, then the
// author registry. The first failure aborts the load.
func (c *Client) Load(ctx context.Context, src Sources) (*Registries, error) {
	labs, err := c.FetchLabs(ctx, src.Labs)
	if err != nil {
		return nil, fmt.Errorf("loading lab registry: %w", err)
	}
	c.log.Info("lab registry loaded", zap.String("source", src.Labs), zap.Int("labs", len(labs)))

	authors, err := c.FetchAuthors(ctx, src.Authors)
	if err != nil {
		return nil, fmt.Errorf("loading author registry: %w", err)
	}
	c.log.Info("author registry loaded", zap.String("source", src.Authors), zap.Int("names", len(authors)))

	return &Registries{Labs: labs, Authors: authors}, nil
}
