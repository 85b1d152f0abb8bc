package translator

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Guarded bounds concurrent access to an inner translator and applies a
// per-call timeout. The external engine is a shared resource with a fixed
// safe concurrency limit, so every caller goes through the same semaphore.
type Guarded struct {
	inner   Translator
	sem     chan struct{}
	timeout time.Duration
}

// NewGuarded wraps inner with a concurrency cap and per-call timeout.
// maxConcurrent values below 1 are treated as 1.
func NewGuarded(inner Translator, maxConcurrent int, timeout time.Duration) *Guarded {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Guarded{
		inner:   inner,
		sem:     make(chan struct{}, maxConcurrent),
		timeout: timeout,
	}
}

// Translate acquires a semaphore slot, then calls the inner translator with
// the per-call timeout. Timeouts surface as ErrUnavailable so they resolve
// through the same per-field fallback as an engine outage.
func (g *Guarded) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	select {
	case g.sem <- struct{}{}:
		defer func() { <-g.sem }()
	case <-ctx.Done():
		return "", fmt.Errorf("translator: waiting for slot: %w", ErrUnavailable)
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	out, err := g.inner.Translate(callCtx, text, sourceLang, targetLang)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("translator: call timed out: %w", ErrUnavailable)
		}
		return "", err
	}

	return out, nil
}
