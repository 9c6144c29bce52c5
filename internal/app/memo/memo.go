// Package memo caches upstream lookups for the lifetime of one inbound request.
//
// A handler that resolves the same NAICS code or product several times, or
// fans out over a list containing duplicates, pays for one upstream call per
// distinct key:
//
//	m := memo.FromContext(ctx)
//	code, err := memo.GetOrFetch(ctx, m, "naics:"+hash, func(ctx context.Context) (*domain.NaicsCode, error) {
//	    return client.GetNaicsCode(ctx, hash)
//	})
//
// Concurrent callers asking for the same key share a single fetch. Errors are
// not cached, so a later call for the same key tries again.
package memo

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

type ctxKey struct{}

// Memo is a request-scoped cache. The zero value is not usable; call New.
type Memo struct {
	values sync.Map
	group  singleflight.Group
}

// New returns an empty Memo.
func New() *Memo {
	return &Memo{}
}

// WithContext stores m in ctx.
func WithContext(ctx context.Context, m *Memo) context.Context {
	return context.WithValue(ctx, ctxKey{}, m)
}

// FromContext returns the Memo stored in ctx, or a fresh one that caches
// nothing beyond the caller's own use.
func FromContext(ctx context.Context) *Memo {
	if ctx != nil {
		if m, ok := ctx.Value(ctxKey{}).(*Memo); ok {
			return m
		}
	}

	return New()
}

// GetOrFetch returns the cached value for key, calling fetch on a miss.
func GetOrFetch[T any](ctx context.Context, m *Memo, key string, fetch func(context.Context) (T, error)) (T, error) {
	if cached, ok := m.values.Load(key); ok {
		return cast[T](key, cached)
	}

	v, err, _ := m.group.Do(key, func() (any, error) {
		if cached, ok := m.values.Load(key); ok {
			return cached, nil
		}

		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		m.values.Store(key, value)

		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return cast[T](key, v)
}

// Len reports how many keys are cached.
func (m *Memo) Len() int {
	n := 0
	m.values.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}

func cast[T any](key string, v any) (T, error) {
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("memo: key %q holds %T", key, v)
	}

	return typed, nil
}
