package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RadiographFetcher retrieves raw radiograph image bytes from a remote
// location. The pipeline consumes opaque bytes, so fetching stays separate
// from decoding.
type RadiographFetcher interface {
	FetchRadiograph(ctx context.Context, imageURL string) ([]byte, error)
}

// HTTPRadiographFetcher implements RadiographFetcher over plain HTTP(S)
type HTTPRadiographFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPRadiographFetcher creates an HTTP radiograph fetcher. maxBytes
// caps the response body; zero or negative means a 10MB default.
func NewHTTPRadiographFetcher(timeout time.Duration, maxBytes int64) RadiographFetcher {
	if maxBytes <= 0 {
		maxBytes = 10 * 1024 * 1024
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPRadiographFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,

			// Prevent redirects to avoid unexpected behavior
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		maxBytes: maxBytes,
	}
}

// FetchRadiograph downloads the image at imageURL and returns its raw
// bytes. Only image/* content types are accepted; downloads larger than
// the configured cap fail rather than truncate.
func (h *HTTPRadiographFetcher) FetchRadiograph(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req.Header.Set("Accept", "image/jpeg, image/png, */*")
	req.Header.Set("User-Agent", "Dental-Annotator/1.0")

	// Retry transient failures; a retry can only help for network errors
	// and 5xx responses, never for client errors.
	var resp *http.Response
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		resp, err = h.client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			break
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("server error: %s", resp.Status)
			resp.Body.Close()
			resp = nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 200 * time.Millisecond):
		}
	}
	if resp == nil {
		return nil, fmt.Errorf("failed to fetch radiograph: %w", lastErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching radiograph: %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("not an image: content type %q", contentType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read radiograph body: %w", err)
	}
	if int64(len(data)) > h.maxBytes {
		return nil, fmt.Errorf("radiograph exceeds %d byte limit", h.maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	return data, nil
}
