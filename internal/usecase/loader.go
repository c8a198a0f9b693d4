package usecase

import (
	"context"
	"sync/atomic"
)

// Generation hands out monotonically increasing request tokens.
type Generation struct {
	n atomic.Uint64
}

func (g *Generation) Next() uint64 {
	return g.n.Add(1)
}

// IsLatest reports whether token belongs to the most recently issued request.
func (g *Generation) IsLatest(token uint64) bool {
	return g.n.Load() == token
}

type LoadResult[T any] struct {
	Token uint64
	Value T
	Err   error
}

// LatestLoader runs loads in the background. Results of loads superseded by a
// later Start are delivered but rejected by Accept, so a slow stale load can
// never overwrite a newer one.
type LatestLoader[T any] struct {
	gen     Generation
	results chan LoadResult[T]
}

func NewLatestLoader[T any]() *LatestLoader[T] {
	return &LatestLoader[T]{
		results: make(chan LoadResult[T], 4),
	}
}

func (l *LatestLoader[T]) Start(ctx context.Context, load func(ctx context.Context) (T, error)) uint64 {
	token := l.gen.Next()
	go func() {
		v, err := load(ctx)
		select {
		case l.results <- LoadResult[T]{Token: token, Value: v, Err: err}:
		case <-ctx.Done():
		}
	}()
	return token
}

func (l *LatestLoader[T]) Results() <-chan LoadResult[T] {
	return l.results
}

func (l *LatestLoader[T]) Accept(r LoadResult[T]) bool {
	return l.gen.IsLatest(r.Token)
}
