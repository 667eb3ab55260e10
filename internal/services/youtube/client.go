package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kotoba/internal/services"
	"kotoba/internal/subtitle"
	"kotoba/internal/videoid"
)

const (
	defaultBaseURL   = "https://www.youtube.com"
	defaultUserAgent = "kotoba/dev"
	timedtextPath    = "/api/timedtext"
	oembedPath       = "/oembed"
	clientTimeout    = 60 * time.Second
	component        = "fetcher"
)

// Client retrieves subtitle tracks from the platform's timedtext endpoint.
type Client struct {
	baseURL   string
	language  string
	userAgent string
	http      *http.Client
}

// Option customizes a client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithBaseURL overrides the default base URL. Tests point this at a local server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if strings.TrimSpace(agent) != "" {
			c.userAgent = strings.TrimSpace(agent)
		}
	}
}

// NewClient constructs a subtitle track client for the given track language.
func NewClient(language string, opts ...Option) *Client {
	client := &Client{
		baseURL:   defaultBaseURL,
		language:  strings.TrimSpace(language),
		userAgent: defaultUserAgent,
		http: &http.Client{
			Timeout: clientTimeout,
		},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// FetchTrack downloads the subtitle track for a video.
//
// Failure classification follows the ingestion contract: a malformed
// identifier fails fatally before any network work; a missing track reports
// ErrNotAvailable; network errors, timeouts, rate limiting, and upstream
// errors report ErrTransient. The caller owns retry policy.
func (c *Client) FetchTrack(ctx context.Context, videoID string) (subtitle.RawTrack, error) {
	if !videoid.Valid(videoID) {
		return subtitle.RawTrack{}, services.Wrap(services.ErrFatal, component, "fetch track",
			fmt.Sprintf("malformed video id %q", videoID), nil)
	}

	query := url.Values{}
	query.Set("v", videoID)
	query.Set("lang", c.language)
	query.Set("fmt", "json3")
	endpoint := c.baseURL + timedtextPath + "?" + query.Encode()

	payload, err := c.get(ctx, endpoint, videoID)
	if err != nil {
		return subtitle.RawTrack{}, err
	}

	// The timedtext endpoint answers 200 with an empty body when the
	// requested language has no track.
	if len(strings.TrimSpace(string(payload))) == 0 {
		return subtitle.RawTrack{}, services.Wrap(services.ErrNotAvailable, component, "fetch track",
			fmt.Sprintf("no %s track for %s", c.language, videoID), nil)
	}

	track := subtitle.RawTrack{
		VideoID: videoID,
		Format:  subtitle.FormatJSON3,
		Data:    payload,
	}
	track.Title = c.lookupTitle(ctx, videoID)
	return track, nil
}

// lookupTitle resolves the video title via the oEmbed endpoint. Best effort: a
// failure leaves the title empty rather than failing the fetch.
func (c *Client) lookupTitle(ctx context.Context, videoID string) string {
	query := url.Values{}
	query.Set("url", defaultBaseURL+"/watch?v="+videoID)
	query.Set("format", "json")
	endpoint := c.baseURL + oembedPath + "?" + query.Encode()

	payload, err := c.get(ctx, endpoint, videoID)
	if err != nil {
		return ""
	}
	var decoded struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return ""
	}
	return strings.TrimSpace(decoded.Title)
}

func (c *Client) get(ctx context.Context, endpoint, videoID string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrFatal, component, "build request", videoID, err)
	}
	request.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(request)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, context.Canceled
		}
		// Timeouts and connection failures are retry-eligible.
		return nil, services.Wrap(services.ErrTransient, component, "http request", videoID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, services.Wrap(services.ErrNotAvailable, component, "http request",
			fmt.Sprintf("%s: status 404", videoID), nil)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, services.Wrap(services.ErrTransient, component, "http request",
			fmt.Sprintf("%s: status %d", videoID, resp.StatusCode), nil)
	case resp.StatusCode != http.StatusOK:
		return nil, services.Wrap(services.ErrFatal, component, "http request",
			fmt.Sprintf("%s: status %d", videoID, resp.StatusCode), nil)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, component, "read response", videoID, err)
	}
	return payload, nil
}
