package panel

import (
	"sync"
	"time"

	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/state"
)

// Source is the observable selection a controller follows.
type Source interface {
	Snapshot() state.Selection
	Subscribe(fn state.Listener) func()
}

// Options parameterise a Controller.
type Options[In, Out any] struct {
	// Name tags log lines and stream messages.
	Name string
	// Derive maps the selection to a fetch input; false means there is not
	// enough context to fetch (e.g. no portfolio selected).
	Derive func(state.Selection) (In, bool)
	// Equal decides whether two inputs would fetch the same data.
	Equal func(a, b In) bool
	Fetch FetchFunc[In, Out]
	// Debounce is the quiet period; zero means DefaultDebounce.
	// A negative value disables the quiet period.
	Debounce time.Duration
	Logger   *common.Logger
}

// Controller follows a Source and keeps one panel's view-model current.
//
// Every selection change re-derives the input. Once changes have been quiet
// for the debounce period, the latest input is compared with the last one
// acted on; only a different input starts a fetch. A missing input publishes
// not-loading and keeps the previous data.
type Controller[In, Out any] struct {
	derive    func(state.Selection) (In, bool)
	equal     func(a, b In) bool
	debouncer *Debouncer
	exec      *executor[In, Out]
	unsub     func()

	// settleMu keeps overlapping timer callbacks from reordering fetches.
	settleMu sync.Mutex

	mu         sync.Mutex
	pendingIn  In
	pendingOK  bool
	settledIn  In
	settledOK  bool
	hasSettled bool
}

// NewController subscribes to src and schedules the first fetch from its
// current selection. The view-model starts as {Loading: true}.
func NewController[In, Out any](src Source, opts Options[In, Out]) *Controller[In, Out] {
	debounce := opts.Debounce
	switch {
	case debounce == 0:
		debounce = DefaultDebounce
	case debounce < 0:
		debounce = 0
	}

	c := &Controller[In, Out]{
		derive:    opts.Derive,
		equal:     opts.Equal,
		debouncer: NewDebouncer(debounce),
		exec:      newExecutor(opts.Name, opts.Fetch, opts.Logger, ViewModel[Out]{Loading: true}),
	}

	c.unsub = src.Subscribe(c.onChange)
	c.onChange(src.Snapshot())
	return c
}

func (c *Controller[In, Out]) onChange(sel state.Selection) {
	in, ok := c.derive(sel)

	c.mu.Lock()
	c.pendingIn, c.pendingOK = in, ok
	c.mu.Unlock()

	c.debouncer.Debounce(c.settle)
}

// settle runs once the debounce period has passed without a new change.
func (c *Controller[In, Out]) settle() {
	if !c.exec.begin() {
		return
	}
	defer c.exec.done()

	c.settleMu.Lock()
	defer c.settleMu.Unlock()

	c.mu.Lock()
	in, ok := c.pendingIn, c.pendingOK
	if c.hasSettled && ok == c.settledOK && (!ok || c.equal(c.settledIn, in)) {
		c.mu.Unlock()
		return
	}
	c.settledIn, c.settledOK, c.hasSettled = in, ok, true
	c.mu.Unlock()

	if ok {
		c.exec.trigger(in)
	} else {
		c.exec.clear()
	}
}

// Input returns the input the controller last acted on; false if it has not
// acted yet or the last derived input was missing.
func (c *Controller[In, Out]) Input() (In, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settledIn, c.hasSettled && c.settledOK
}

// Snapshot returns the current view-model.
func (c *Controller[In, Out]) Snapshot() ViewModel[Out] {
	return c.exec.snapshot()
}

// Subscribe registers fn for every future publish and returns its remover.
func (c *Controller[In, Out]) Subscribe(fn Subscriber[Out]) func() {
	return c.exec.subscribe(fn)
}

// Close detaches from the source, drops any pending change, cancels the
// running fetch and waits for it. Nothing is published afterwards.
func (c *Controller[In, Out]) Close() {
	c.unsub()
	c.debouncer.Cancel()
	c.exec.close()
}
