package app

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Parallel2 runs two lookups concurrently. The first failure cancels the
// other and is returned.
//
//	codes, groups, err := Parallel2(ctx,
//	    func(ctx context.Context) (*CodePage, error) { return client.SuggestNaicsCodes(ctx, term, opts) },
//	    func(ctx context.Context) (*GroupPage, error) { return client.SuggestNaicsGroups(ctx, term, opts) },
//	)
func Parallel2[T1, T2 any](
	ctx context.Context,
	fn1 func(context.Context) (T1, error),
	fn2 func(context.Context) (T2, error),
) (T1, T2, error) {
	g, ctx := errgroup.WithContext(ctx)

	var (
		r1 T1
		r2 T2
	)

	g.Go(func() (err error) {
		r1, err = fn1(ctx)
		return err
	})
	g.Go(func() (err error) {
		r2, err = fn2(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		var (
			zero1 T1
			zero2 T2
		)

		return zero1, zero2, fmt.Errorf("parallel execution failed: %w", err)
	}

	return r1, r2, nil
}

// ParallelLimit runs fns with at most limit in flight and returns results in
// input order. The first failure cancels the rest. limit < 1 means unbounded.
func ParallelLimit[T any](ctx context.Context, limit int, fns ...func(context.Context) (T, error)) ([]T, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	results := make([]T, len(fns))

	for i, fn := range fns {
		g.Go(func() error {
			result, err := fn(ctx)
			if err != nil {
				return err
			}

			results[i] = result

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parallel execution failed: %w", err)
	}

	return results, nil
}

// PartialResult holds one outcome of ParallelPartialLimit.
type PartialResult[T any] struct {
	Value T
	Err   error
}

// ParallelPartialLimit runs every fn to completion, limit at a time, and
// reports each outcome. Failures do not cancel the others.
func ParallelPartialLimit[T any](ctx context.Context, limit int, fns ...func(context.Context) (T, error)) []PartialResult[T] {
	if limit < 1 {
		limit = len(fns)
	}

	results := make([]PartialResult[T], len(fns))
	sem := make(chan struct{}, max(limit, 1))

	var wg sync.WaitGroup

	for i, fn := range fns {
		wg.Go(func() {
			sem <- struct{}{}
			defer func() { <-sem }()

			value, err := fn(ctx)
			results[i] = PartialResult[T]{Value: value, Err: err}
		})
	}

	wg.Wait()

	return results
}
