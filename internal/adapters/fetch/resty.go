// Package fetch provides the HTTP download adapter.
package fetch

import (
	"context"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"

	"github.com/pireader/provision/internal/ports"
)

// RestyFetcher downloads URLs to files using a resty HTTP client.
// Downloads stream to a temporary file in the destination directory and are
// renamed into place only on success, so a failed fetch leaves nothing behind.
type RestyFetcher struct {
	client *resty.Client
}

// NewRestyFetcher creates a RestyFetcher with default settings.
func NewRestyFetcher() *RestyFetcher {
	return &RestyFetcher{client: resty.New()}
}

// NewRestyFetcherWithClient creates a RestyFetcher over an existing client.
func NewRestyFetcherWithClient(client *resty.Client) *RestyFetcher {
	return &RestyFetcher{client: client}
}

// Fetch performs an HTTP GET and writes the body to dest.
func (f *RestyFetcher) Fetch(ctx context.Context, url, dest string) error {
	tmp := dest + ".partial"

	resp, err := f.client.R().
		SetContext(ctx).
		SetOutput(tmp).
		Get(url)
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		_ = os.Remove(tmp)
		return fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status())
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("fetch %s: move into place: %w", url, err)
	}
	return nil
}

// Ensure RestyFetcher implements ports.Fetcher.
var _ ports.Fetcher = (*RestyFetcher)(nil)
