package llm

import (
	"context"
	"time"
)

// timeoutProvider bounds each Generate call with a single deadline covering
// every retry attempt layered underneath it.
type timeoutProvider struct {
	next    Provider
	timeout time.Duration
}

// WithTimeout wraps a provider so every Generate call carries a deadline.
// A non-positive timeout returns the provider unwrapped.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &timeoutProvider{next: p, timeout: timeout}
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Generate(ctx, req)
}

func (t *timeoutProvider) ModelID() string {
	return t.next.ModelID()
}
