package ai

import (
    "context"
    "log/slog"
    "math/rand"
    "strings"
    "sync"
    "time"

    retry "github.com/avast/retry-go/v4"
)

const (
    // First backoff ceiling is 2*baseDelay = 1s, doubling after that.
    baseDelay = 500 * time.Millisecond
    maxDelay  = 5 * time.Minute
)

// RetryPolicy bounds retries of rate-limited requests. Zero values mean
// unbounded; when both are zero the request is retried until it succeeds
// or fails with a non-throttling error.
type RetryPolicy struct {
    MaxAttempts int
    MaxElapsed  time.Duration
}

// Captioner wraps a Backend with prompt selection and the retry policy.
type Captioner struct {
    backend Backend
    prompts PromptPool
    policy  RetryPolicy
    logger  *slog.Logger

    mu  sync.Mutex
    rng *rand.Rand

    timer retry.Timer
    now   func() time.Time
}

// CaptionerOption configures a Captioner.
type CaptionerOption func(*Captioner)

// WithPrompts replaces the default prompt pool.
func WithPrompts(p PromptPool) CaptionerOption {
    return func(c *Captioner) { c.prompts = p }
}

// WithRand sets the random source used for prompt selection.
func WithRand(rng *rand.Rand) CaptionerOption {
    return func(c *Captioner) { c.rng = rng }
}

// WithRetryPolicy sets the rate-limit retry policy.
func WithRetryPolicy(p RetryPolicy) CaptionerOption {
    return func(c *Captioner) { c.policy = p }
}

// WithLogger sets the logger for retry diagnostics.
func WithLogger(l *slog.Logger) CaptionerOption {
    return func(c *Captioner) { c.logger = l }
}

// WithTimer replaces the timer used for backoff waits.
func WithTimer(t retry.Timer) CaptionerOption {
    return func(c *Captioner) { c.timer = t }
}

// WithClock replaces the clock used for the max-elapsed budget.
func WithClock(now func() time.Time) CaptionerOption {
    return func(c *Captioner) { c.now = now }
}

func NewCaptioner(backend Backend, opts ...CaptionerOption) *Captioner {
    c := &Captioner{
        backend: backend,
        prompts: DefaultPrompts(),
        logger:  slog.Default(),
        rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
        now:     time.Now,
    }
    for _, opt := range opts {
        opt(c)
    }
    return c
}

// Caption asks the backend to describe img. It returns "" with a nil error
// when no caption could be produced: the backend returned no content, or the
// rate-limit retry budget ran out. Any other backend error is returned as is.
func (c *Captioner) Caption(ctx context.Context, img Image) (string, error) {
    start := c.now()
    text, err := retry.DoWithData(
        func() (string, error) {
            return c.backend.Generate(ctx, c.pickPrompt(), img)
        },
        c.retryOptions(ctx, start)...,
    )
    if err != nil {
        if IsRateLimited(err) {
            c.logger.Warn("rate limit retry budget exhausted",
                "backend", c.backend.Name(),
                "elapsed", c.now().Sub(start).Round(time.Millisecond),
                "error", err)
            return "", nil
        }
        return "", err
    }
    return strings.TrimSpace(text), nil
}

func (c *Captioner) pickPrompt() string {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.prompts.Pick(c.rng)
}

func (c *Captioner) retryOptions(ctx context.Context, start time.Time) []retry.Option {
    opts := []retry.Option{
        retry.Context(ctx),
        retry.Attempts(uint(c.policy.MaxAttempts)),
        retry.Delay(baseDelay),
        retry.MaxDelay(maxDelay),
        retry.LastErrorOnly(true),
        retry.RetryIf(func(err error) bool {
            if !IsRateLimited(err) {
                return false
            }
            return c.policy.MaxElapsed <= 0 || c.now().Sub(start) < c.policy.MaxElapsed
        }),
        retry.DelayType(func(n uint, err error, cfg *retry.Config) time.Duration {
            d := retry.FullJitterBackoffDelay(n, err, cfg)
            if c.policy.MaxElapsed > 0 {
                if left := c.policy.MaxElapsed - c.now().Sub(start); d > left {
                    d = max(left, 0)
                }
            }
            return d
        }),
        retry.OnRetry(func(n uint, err error) {
            c.logger.Debug("rate limited, backing off",
                "backend", c.backend.Name(),
                "attempt", n+1,
                "error", err)
        }),
    }
    if c.timer != nil {
        opts = append(opts, retry.WithTimer(c.timer))
    }
    return opts
}
