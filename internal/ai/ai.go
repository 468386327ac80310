package ai

import (
    "context"
    "errors"
    "fmt"
)

// Image is an encoded raster image ready to be sent to a captioning backend.
type Image struct {
    MIMEType string
    Data     []byte
}

// Backend issues a single captioning request. An empty string with a nil
// error means the backend answered without usable content (safety filters,
// empty candidates, refusals).
type Backend interface {
    Generate(ctx context.Context, prompt string, img Image) (string, error)
    Name() string
}

// ErrRateLimited marks throttling failures. Only these are retried.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimitError wraps a backend error that was classified as throttling.
type RateLimitError struct {
    Backend string
    Err     error
}

func (e *RateLimitError) Error() string {
    return fmt.Sprintf("%s: %v: %v", e.Backend, ErrRateLimited, e.Err)
}

func (e *RateLimitError) Unwrap() []error { return []error{ErrRateLimited, e.Err} }

// IsRateLimited reports whether err is a throttling failure.
func IsRateLimited(err error) bool {
    return errors.Is(err, ErrRateLimited)
}

// Noop answers every request with no content. It backs dry runs that
// exercise extraction and formatting without calling a model.
type Noop struct{}

func (Noop) Generate(ctx context.Context, prompt string, img Image) (string, error) { return "", nil }
func (Noop) Name() string                                                         { return "noop" }
