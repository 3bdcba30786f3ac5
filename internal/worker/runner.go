// Package worker runs long tasks off the caller's goroutine so the UI stays responsive.
package worker

import (
	"context"
	"fmt"
	"sync"
)

// Result is the outcome of a background task.
type Result[T any] struct {
	Value T
	Err   error
}

// Go runs fn on a new goroutine. The returned channel receives exactly one
// Result and is then closed. A panic in fn is reported as an error.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		ch <- call(ctx, fn)
	}()
	return ch
}

func call[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Result[T]{Err: fmt.Errorf("task panicked: %v", r)}
		}
	}()
	v, err := fn(ctx)
	return Result[T]{Value: v, Err: err}
}

// Runner starts tasks in the background and can wait for all of them.
// It does not serialize tasks; callers that need one-at-a-time
// behaviour check Busy before starting another.
type Runner struct {
	wg      sync.WaitGroup
	mu      sync.Mutex
	running int
}

// Run executes fn in the background and calls done with its error when it
// returns. done runs on the background goroutine.
func (r *Runner) Run(ctx context.Context, fn func(ctx context.Context) error, done func(err error)) {
	r.mu.Lock()
	r.running++
	r.mu.Unlock()
	r.wg.Add(1)

	go func() {
		defer r.wg.Done()
		res := call(ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, fn(ctx)
		})

		r.mu.Lock()
		r.running--
		r.mu.Unlock()

		if done != nil {
			done(res.Err)
		}
	}()
}

// Busy reports whether any task is still running.
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running > 0
}

// Wait blocks until every started task has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}
