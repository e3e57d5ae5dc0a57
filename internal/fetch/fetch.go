// SPDX-License-Identifier: MPL-2.0

// Package fetch downloads release archives for provisioning tasks.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"toil-cli/internal/fsutil"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds a single download.
const DefaultTimeout = 10 * time.Minute

// ErrBadStatus is wrapped by StatusError.
var ErrBadStatus = errors.New("unexpected HTTP status")

type (
	// Fetcher downloads url into dest.
	Fetcher interface {
		Fetch(ctx context.Context, url, dest string) error
	}

	// HTTPFetcher fetches over HTTP(S). Bodies are streamed to dest and
	// only replace it once complete.
	HTTPFetcher struct {
		client *http.Client
		logger *log.Logger
	}

	// StatusError reports a non-2xx response.
	StatusError struct {
		URL        string
		StatusCode int
	}
)

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap returns ErrBadStatus.
func (e *StatusError) Unwrap() error { return ErrBadStatus }

// NewHTTPFetcher creates a fetcher. A nil client gets DefaultTimeout; a
// nil logger discards.
func NewHTTPFetcher(client *http.Client, logger *log.Logger) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &HTTPFetcher{client: client, logger: logger}
}

// Fetch downloads url into dest.
func (f *HTTPFetcher) Fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("invalid download URL %q: %w", url, err)
	}

	f.logger.Info("downloading", "url", url, "dest", dest)
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	n, err := fsutil.WriteFrom(dest, resp.Body, 0o644)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	f.logger.Debug("downloaded", "url", url, "bytes", n)
	return nil
}
