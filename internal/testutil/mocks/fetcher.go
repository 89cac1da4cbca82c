package mocks

import (
	"context"
	"fmt"
	"sync"
)

// FetchCall records one Fetch invocation.
type FetchCall struct {
	URL  string
	Dest string
}

// Fetcher is a test double for ports.Fetcher. Registered payloads are written
// through the given sink (usually a mock FileSystem) on Fetch.
type Fetcher struct {
	mu       sync.Mutex
	payloads map[string][]byte
	errors   map[string]error
	calls    []FetchCall
	sink     *FileSystem
}

// NewFetcher creates a Fetcher writing fetched payloads into fs.
func NewFetcher(fs *FileSystem) *Fetcher {
	return &Fetcher{
		payloads: make(map[string][]byte),
		errors:   make(map[string]error),
		sink:     fs,
	}
}

// AddPayload registers the bytes served for a URL.
func (m *Fetcher) AddPayload(url string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads[url] = data
}

// AddError registers a URL whose fetch fails.
func (m *Fetcher) AddError(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[url] = err
}

// Fetch writes the registered payload for url to dest in the sink filesystem.
func (m *Fetcher) Fetch(_ context.Context, url, dest string) error {
	m.mu.Lock()
	m.calls = append(m.calls, FetchCall{URL: url, Dest: dest})
	err, failing := m.errors[url]
	data, ok := m.payloads[url]
	m.mu.Unlock()

	if failing {
		return err
	}
	if !ok {
		return fmt.Errorf("no mock payload for URL: %s", url)
	}
	return m.sink.WriteFile(dest, data, 0o644)
}

// Calls returns all recorded fetches.
func (m *Fetcher) Calls() []FetchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]FetchCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}
