package ports

import "context"

// Fetcher downloads a URL to a local file. Implementations write the whole
// body or nothing; a partial download must not leave the destination behind.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}
