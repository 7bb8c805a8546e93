package resilience

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/panics"
)

// SingleFlight deduplicates concurrent calls for the same key. A panicking call
// is reported to every waiter as ErrPanicked.
type SingleFlight[T any] struct {
	mu    sync.Mutex
	calls map[string]*call[T]
}

type call[T any] struct {
	wg  sync.WaitGroup
	val T
	err error
}

// Do runs fn once per key among concurrent callers. shared is true for callers
// that received another caller's result.
func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (val T, err error, shared bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call[T])
	}

	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}

	c := &call[T]{}
	c.wg.Add(1)
	g.calls[key] = c
	g.mu.Unlock()

	var catcher panics.Catcher
	catcher.Try(func() {
		c.val, c.err = fn()
	})
	if recovered := catcher.Recovered(); recovered != nil {
		var zero T
		c.val, c.err = zero, errors.Wrapf(ErrPanicked, "%v", recovered.Value)
	}
	c.wg.Done()

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()

	return c.val, c.err, false
}
