package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tallybook/internal/logger"
)

// Chain tries an ordered list of back-ends and short-circuits on the first
// non-empty answer. Per-back-end calls carry a timeout so one slow provider
// cannot stall the whole chain; a timeout counts as "try the next one".
type Chain struct {
	clients []Client
	timeout time.Duration
}

// NewChain creates a fallback chain over the given back-ends.
func NewChain(timeout time.Duration, clients ...Client) *Chain {
	return &Chain{clients: clients, timeout: timeout}
}

// Empty reports whether the chain has no configured back-ends.
func (c *Chain) Empty() bool { return c == nil || len(c.clients) == 0 }

// Complete runs the chain. On total failure it returns the collected
// per-back-end errors so callers can log what was tried.
func (c *Chain) Complete(ctx context.Context, req Request) (string, error) {
	if c.Empty() {
		return "", errors.New("llm: no back-ends configured")
	}

	var errs []error
	for _, client := range c.clients {
		callCtx := ctx
		var cancel context.CancelFunc
		if c.timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		}

		answer, err := client.Complete(callCtx, req)
		if cancel != nil {
			cancel()
		}
		if err == nil && answer != "" {
			return answer, nil
		}
		if err == nil {
			err = ErrEmptyResponse
		}
		logger.Get().Warnw("model back-end failed, trying next",
			"backend", client.Name(),
			"error", err.Error(),
		)
		errs = append(errs, fmt.Errorf("%s: %w", client.Name(), err))
	}

	return "", errors.Join(errs...)
}
