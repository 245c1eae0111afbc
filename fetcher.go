package pinemd

import "context"

// Fetcher retrieves raw page bytes from URLs.
type Fetcher interface {
	// Fetch performs a GET request and returns the raw response body.
	// A non-success HTTP status is an error. The context controls
	// timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Close releases any underlying resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
