package txmanager

import (
	"context"
	"sync"
)

type localKey struct{}

// LocalManager serialises critical sections inside one process.
// It backs the key-value storage, which has no transactions of its own.
type LocalManager struct {
	mu sync.Mutex
}

// NewLocalManager создает менеджер с одним мьютексом на процесс
func NewLocalManager() *LocalManager {
	return &LocalManager{}
}

func (m *LocalManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *LocalManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *LocalManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *LocalManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if held, _ := ctx.Value(localKey{}).(*LocalManager); held == m {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(context.WithValue(ctx, localKey{}, m))
}
