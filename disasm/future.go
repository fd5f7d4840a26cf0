package disasm

import (
	"context"
	"sync"
)

// Future is the result of a background resolution. It completes exactly
// once; later completions are ignored.
type Future[T any] struct {
	once sync.Once
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a completed future holding v.
func Resolved[T any](v T) *Future[T] {
	f := newFuture[T]()
	f.complete(v, nil)
	return f
}

// Failed returns a completed future holding err.
func Failed[T any](err error) *Future[T] {
	f := newFuture[T]()
	var zero T
	f.complete(zero, err)
	return f
}

// Go runs fn on a new goroutine and returns a future for its result. The
// future fails with ctx's error if ctx ends first.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		v, err := fn(ctx)
		f.complete(v, err)
	}()
	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				var zero T
				f.complete(zero, ctx.Err())
			case <-f.done:
			}
		}()
	}
	return f
}

func (f *Future[T]) complete(v T, err error) bool {
	fired := false
	f.once.Do(func() {
		f.val, f.err = v, err
		close(f.done)
		fired = true
	})
	return fired
}

// Done is closed once the future completes.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Ready reports whether the future has completed.
func (f *Future[T]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the future completes or ctx ends.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result blocks until the future completes.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.val, f.err
}

// Then waits for completion on a new goroutine and hands fn to post, which
// is expected to run it on the caller's dispatch goroutine.
func (f *Future[T]) Then(post func(func()), fn func(T, error)) {
	go func() {
		v, err := f.Result()
		post(func() { fn(v, err) })
	}()
}
