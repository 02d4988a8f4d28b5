package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// blockingProvider hangs until the context expires.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeoutBoundsGenerate(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 10*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("deadline not enforced, took %v", elapsed)
	}
}

func TestTimeoutBoundsRetries(t *testing.T) {
	// One deadline spans every attempt: with a per-attempt wait longer
	// than the outer timeout, the retry loop must give up on the first
	// backoff instead of exhausting MaxAttempts.
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	cfg := RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     time.Second,
		Multiplier:  2.0,
	}
	p := WithTimeout(WithRetry(mock, cfg), 20*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected failure once the deadline expired mid-backoff")
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call before the deadline, got %d", mock.CallCount())
	}
}

func TestTimeoutZeroIsPassThrough(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"ok":true}`)})

	p := WithTimeout(mock, 0)
	if p != Provider(mock) {
		t.Fatal("non-positive timeout should return the provider unwrapped")
	}
	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Errorf("unexpected content %s", resp.Content)
	}
}
