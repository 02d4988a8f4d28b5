package llm

import (
	"context"
	"time"

	"github.com/abhisek/pathweaver/internal/logger"
)

// RequestLog captures one provider call for persistence.
type RequestLog struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestLogger persists provider call records. The store package
// implements this against the llm_request_events table.
type RequestLogger interface {
	AppendLLMRequest(ctx context.Context, rec RequestLog) error
}

// LoggingProvider is a decorator that records every provider call, both to
// the structured log and to the RequestLogger sink.
type LoggingProvider struct {
	inner Provider
	sink  RequestLogger
	log   *logger.Logger
}

// WithLogging wraps a Provider with call logging. sink may be nil, in which
// case only the structured log is written.
func WithLogging(p Provider, sink RequestLogger, log *logger.Logger) Provider {
	return &LoggingProvider{inner: p, sink: sink, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	rec := RequestLog{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
		l.log.Warn("llm request failed",
			"purpose", purpose, "model", rec.Model, "latency_ms", rec.LatencyMs, "error", err)
	} else {
		l.log.Debug("llm request",
			"purpose", purpose, "model", rec.Model, "latency_ms", rec.LatencyMs,
			"input_tokens", rec.InputTokens, "output_tokens", rec.OutputTokens)
	}

	// A failed write must not fail the generation itself.
	if l.sink != nil {
		if logErr := l.sink.AppendLLMRequest(ctx, rec); logErr != nil {
			l.log.Warn("failed to persist llm request event", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
