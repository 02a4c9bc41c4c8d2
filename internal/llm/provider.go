// Package llm holds the thin HTTP clients for the supported text-generation
// backends. Each client returns the raw model text; interpreting it is the
// caller's problem.
package llm

import (
	"context"
	"net/http"
	"time"
)

const defaultTimeout = 60 * time.Second

// Provider is a text-generation backend. Generate returns the raw model
// output for a fully-formed instruction string, or an error on any failure
// (missing credentials, HTTP error, empty completion).
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
