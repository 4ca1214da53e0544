package resolver

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
)

const (
	// DefaultAttempts is how many times a turn completion is tried
	DefaultAttempts = 3

	// DefaultBackoff is the first retry delay; later delays grow linearly
	DefaultBackoff = time.Second

	// ConnectionFailureMessage is shown when every attempt failed
	ConnectionFailureMessage = "Sorry, I'm still having trouble connecting after a few tries. Please check your connection and try again later."
)

// LinearBackOff waits step, 2*step, 3*step and so on between attempts
type LinearBackOff struct {
	Step    time.Duration
	attempt int
}

// NextBackOff implements backoff.BackOff
func (b *LinearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return time.Duration(b.attempt) * b.Step
}

// Reset implements backoff.BackOff
func (b *LinearBackOff) Reset() {
	b.attempt = 0
}

var _ backoff.BackOff = (*LinearBackOff)(nil)

// CompleterConfig configures the retrying completer
type CompleterConfig struct {
	Provider providers.CompletionProvider
	Attempts int
	Backoff  time.Duration
	Options  providers.CompletionOptions
}

// Validate ensures all required dependencies are provided
func (c *CompleterConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Provider == nil {
		vb.RequiredField("Provider")
	}
	if c.Attempts < 0 {
		vb.Field("Attempts", "must not be negative")
	}
	if c.Backoff < 0 {
		vb.Field("Backoff", "must not be negative")
	}

	return vb.Build()
}

// Completer sends turn conversations to the completion provider, retrying
// provider failures with linear backoff. Malformed responses are not its
// concern; the parser repairs those.
type Completer struct {
	provider providers.CompletionProvider
	attempts int
	step     time.Duration
	opts     providers.CompletionOptions
}

// NewCompleter creates a new retrying completer
func NewCompleter(cfg *CompleterConfig) (*Completer, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := &Completer{
		provider: cfg.Provider,
		attempts: cfg.Attempts,
		step:     cfg.Backoff,
		opts:     cfg.Options,
	}
	if c.attempts == 0 {
		c.attempts = DefaultAttempts
	}
	if c.step == 0 {
		c.step = DefaultBackoff
	}
	return c, nil
}

// retryable reports whether a provider error is worth another attempt.
// A finished context never is.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return errors.IsTransient(err)
}

// Complete returns the model text for messages. Exhausted retries return
// an Unavailable error carrying ConnectionFailureMessage.
func (c *Completer) Complete(ctx context.Context, messages []providers.Message) (string, error) {
	attempt := 0
	op := func() (string, error) {
		attempt++
		text, err := c.provider.Complete(ctx, messages, c.opts)
		if err == nil {
			return text, nil
		}
		if !retryable(ctx, err) {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	text, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(&LinearBackOff{Step: c.step}),
		backoff.WithMaxTries(uint(c.attempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			slog.Warn("Completion failed, retrying", "attempt", attempt, "next_in", next, "error", err)
		}),
	)
	if err == nil {
		return text, nil
	}

	if ctxErr := errors.FromContext(ctx); ctxErr != nil {
		return "", ctxErr
	}
	if !retryable(ctx, err) {
		return "", err
	}

	slog.Error("Completion failed after retries", "attempts", attempt, "error", err)
	return "", errors.WrapWithCode(err, errors.CodeUnavailable, ConnectionFailureMessage).
		WithMeta("attempts", attempt)
}
