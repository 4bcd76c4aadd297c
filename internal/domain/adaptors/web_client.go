package adaptors

import "context"

// WebClient issues a single HTTP request and returns the body and status code.
type WebClient interface {
	Do(ctx context.Context, url string, method string) ([]byte, int, error)
}
