// Package scroll turns scrollbar movement into window re-paging.
//
// A Coordinator sits between the scroll-event source and a Window. Small
// movements are absorbed by the window's margins; a movement further than
// Options.Threshold rows from the window's current index resolves the new
// index to a bookmark in the background and re-seeks the window once the
// result is back on the dispatch goroutine.
//
// Event loops that own their dispatch goroutine (Bubble Tea, for example)
// drive the three phases directly:
//
//	req, ok := c.Scroll(idx)            // dispatch goroutine
//	res := c.Resolve(ctx, req)          // any goroutine
//	next, more, err := c.Apply(res)     // dispatch goroutine
//
// HandleScroll wires the same phases together with a post function.
package scroll

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/joshuapare/disasmkit/pkg/types"
)

// Resolver maps scrollbar indices to bookmarks. *disasm.Blob implements it
// through a small adapter; see BlobResolver.
type Resolver interface {
	Position(ctx context.Context, idx types.ScrollbarIndex) (types.Bookmark, error)
}

// Pager is the window being re-paged. *disasm.Window implements it.
type Pager interface {
	CurrentScrollbarIndex() types.ScrollbarIndex
	Generation() uint64
	Seek(anchor types.Bookmark, before, after int)
}

// Options configures a Coordinator.
type Options struct {
	// Threshold is the distance, in scrollbar indices, from the window's
	// current index beyond which a scroll triggers a re-seek.
	Threshold int64
	// Before and After are the margins passed to Seek.
	Before int
	After  int
	// Logger receives debug output. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns a 150-row threshold with 500-entry margins.
func DefaultOptions() Options {
	return Options{Threshold: 150, Before: 500, After: 500}
}

// Request is an issued resolution.
type Request struct {
	Target types.ScrollbarIndex
	// Generation is the window's seek generation when the request was made.
	Generation uint64
	Seq        uint64
}

// Result is a completed resolution.
type Result struct {
	Request Request
	Anchor  types.Bookmark
	Err     error
}

// Coordinator serializes scroll-driven re-paging of one window. At most one
// resolution is in flight; scrolls arriving meanwhile are coalesced and only
// the newest is acted on.
type Coordinator struct {
	res  Resolver
	win  Pager
	opts Options
	log  *slog.Logger

	mu       sync.Mutex
	last     types.ScrollbarIndex
	inflight bool
	pending  bool
	seq      uint64
	seeks    int
	stale    int
}

// New returns a coordinator for win.
func New(res Resolver, win Pager, opts Options) *Coordinator {
	if opts.Threshold < 0 {
		opts.Threshold = 0
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Coordinator{res: res, win: win, opts: opts, log: log, last: win.CurrentScrollbarIndex()}
}

// Options returns the coordinator's configuration.
func (c *Coordinator) Options() Options { return c.opts }

// LastIndex returns the most recent index reported by Scroll.
func (c *Coordinator) LastIndex() types.ScrollbarIndex {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// InFlight reports whether a resolution is outstanding.
func (c *Coordinator) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight
}

// Stats returns the number of seeks applied and stale results discarded.
func (c *Coordinator) Stats() (seeks, stale int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seeks, c.stale
}

// Scroll records idx as the latest scrollbar position and reports whether a
// resolution must be started for it. While one is in flight the index is
// remembered and acted on when Apply runs.
func (c *Coordinator) Scroll(idx types.ScrollbarIndex) (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = idx
	if c.inflight {
		c.pending = true
		return Request{}, false
	}
	return c.issueLocked()
}

// issueLocked starts a request for c.last when it is beyond the threshold.
func (c *Coordinator) issueLocked() (Request, bool) {
	current := c.win.CurrentScrollbarIndex()
	if !c.beyond(c.last, current) {
		return Request{}, false
	}
	c.inflight = true
	c.seq++
	req := Request{Target: c.last, Generation: c.win.Generation(), Seq: c.seq}
	c.log.Debug("scroll request issued", "seq", req.Seq, "target", int64(req.Target), "current", int64(current))
	return req, true
}

func (c *Coordinator) beyond(a, b types.ScrollbarIndex) bool {
	d := int64(a - b)
	if d < 0 {
		d = -d
	}
	return d > c.opts.Threshold
}

// Resolve maps the request's target to a bookmark. It holds no lock and may
// run on any goroutine.
func (c *Coordinator) Resolve(ctx context.Context, req Request) Result {
	anchor, err := c.res.Position(ctx, req.Target)
	return Result{Request: req, Anchor: anchor, Err: err}
}

// Apply installs a resolved anchor on the window. A result is dropped when
// the window was re-seeked since the request was made, or when a newer
// target that is far from it has arrived. When a target coalesced during the
// resolution is still beyond the threshold, a follow-up request is returned.
// A resolution failure is returned after the bookkeeping is done; the window
// keeps its last good state.
func (c *Coordinator) Apply(res Result) (Request, bool, error) {
	c.mu.Lock()
	c.inflight = false
	pending := c.pending
	c.pending = false
	superseded := pending && c.beyond(c.last, res.Request.Target)
	stale := res.Request.Generation != c.win.Generation()
	c.mu.Unlock()

	switch {
	case res.Err != nil:
		c.log.Debug("scroll resolution failed", "seq", res.Request.Seq, "target", int64(res.Request.Target), "error", res.Err)
	case stale || superseded:
		c.mu.Lock()
		c.stale++
		c.mu.Unlock()
		c.log.Debug("scroll result discarded", "seq", res.Request.Seq, "stale", stale, "superseded", superseded)
	default:
		c.win.Seek(res.Anchor, c.opts.Before, c.opts.After)
		c.mu.Lock()
		c.seeks++
		c.mu.Unlock()
		c.log.Debug("scroll applied", "seq", res.Request.Seq, "anchor", res.Anchor.String())
	}

	if !pending {
		return Request{}, false, res.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight {
		return Request{}, false, res.Err
	}
	next, ok := c.issueLocked()
	return next, ok, res.Err
}

// HandleScroll runs the full cycle for idx. Resolution happens on a new
// goroutine; post must run its argument on the dispatch goroutine, where
// Apply and any follow-up are executed. It reports whether a resolution was
// started.
func (c *Coordinator) HandleScroll(ctx context.Context, idx types.ScrollbarIndex, post func(func())) bool {
	req, ok := c.Scroll(idx)
	if !ok {
		return false
	}
	go c.run(ctx, req, post)
	return true
}

func (c *Coordinator) run(ctx context.Context, req Request, post func(func())) {
	res := c.Resolve(ctx, req)
	post(func() {
		next, more, err := c.Apply(res)
		if err != nil {
			c.log.Warn("scroll failed", "target", int64(req.Target), "error", err)
		}
		if more {
			go c.run(ctx, next, post)
		}
	})
}
