package ai

import (
    "context"
    "fmt"
    "sync"
)

// LazyBackend builds the real backend on first use and reuses it for the
// rest of the process. Construction errors are returned on every call and
// are never classified as rate limiting.
type LazyBackend struct {
    name string
    init func(ctx context.Context) (Backend, error)

    once    sync.Once
    backend Backend
    err     error
}

func NewLazyBackend(name string, init func(ctx context.Context) (Backend, error)) *LazyBackend {
    return &LazyBackend{name: name, init: init}
}

// Get returns the shared backend, constructing it once.
func (l *LazyBackend) Get(ctx context.Context) (Backend, error) {
    l.once.Do(func() {
        l.backend, l.err = l.init(ctx)
        if l.err != nil {
            l.err = fmt.Errorf("init %s backend: %w", l.name, l.err)
        }
    })
    return l.backend, l.err
}

func (l *LazyBackend) Generate(ctx context.Context, prompt string, img Image) (string, error) {
    b, err := l.Get(ctx)
    if err != nil {
        return "", err
    }
    return b.Generate(ctx, prompt, img)
}

func (l *LazyBackend) Name() string { return l.name }
