package panel

import (
	"context"
	"sync"
	"time"

	"github.com/kartikm76/middleoffice-ibor/internal/common"
)

// FetchFunc loads a panel's data for one input. It must honour ctx.
type FetchFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

// Subscriber receives every published view-model, in publish order.
type Subscriber[T any] func(ViewModel[T])

// executor owns one view-model and applies only the most recently triggered
// fetch to it. Older fetches are cancelled and their results dropped.
//
// publishMu is held from the moment a view-model is changed until every
// subscriber has seen it, so subscribers observe changes in order. A
// subscriber must therefore not call back into trigger, clear or close.
type executor[In, Out any] struct {
	name   string
	fetch  FetchFunc[In, Out]
	logger *common.Logger

	publishMu sync.Mutex

	mu      sync.Mutex
	vm      ViewModel[Out]
	gen     uint64
	cancel  context.CancelFunc
	closed  bool
	nextSub int
	subs    map[int]Subscriber[Out]
	order   []int

	wg sync.WaitGroup
}

func newExecutor[In, Out any](name string, fetch FetchFunc[In, Out], logger *common.Logger, initial ViewModel[Out]) *executor[In, Out] {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &executor[In, Out]{
		name:   name,
		fetch:  fetch,
		logger: logger,
		vm:     initial,
		subs:   make(map[int]Subscriber[Out]),
	}
}

// begin registers a unit of background work; false once closed.
func (e *executor[In, Out]) begin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	e.wg.Add(1)
	return true
}

func (e *executor[In, Out]) done() { e.wg.Done() }

// trigger marks the view-model loading and starts a fetch for in, superseding
// any fetch still running. The returned channel closes when this fetch has
// been applied or discarded. It is nil if the executor is closed.
func (e *executor[In, Out]) trigger(in In) <-chan struct{} {
	e.publishMu.Lock()
	defer e.publishMu.Unlock()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.gen++
	gen := e.gen
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.vm.Loading = true

	finished := make(chan struct{})
	e.wg.Add(1)
	go e.run(ctx, gen, in, finished)

	vm, subs := e.vm, e.subscribersLocked()
	e.mu.Unlock()

	e.logger.Debug().Str("panel", e.name).Int64("generation", int64(gen)).Msg("Panel fetch started")
	deliver(subs, vm)
	return finished
}

// clear supersedes any running fetch and publishes not-loading with no error,
// keeping the previous data.
func (e *executor[In, Out]) clear() {
	e.publishMu.Lock()
	defer e.publishMu.Unlock()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.gen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.vm = ViewModel[Out]{Data: e.vm.Data}
	vm, subs := e.vm, e.subscribersLocked()
	e.mu.Unlock()

	deliver(subs, vm)
}

func (e *executor[In, Out]) run(ctx context.Context, gen uint64, in In, finished chan struct{}) {
	defer e.wg.Done()
	defer close(finished)

	start := time.Now()
	out, err := e.fetch(ctx, in)

	e.publishMu.Lock()
	defer e.publishMu.Unlock()

	e.mu.Lock()
	if e.closed || gen != e.gen {
		e.mu.Unlock()
		e.logger.Debug().Str("panel", e.name).Int64("generation", int64(gen)).Msg("Discarded superseded panel result")
		return
	}
	e.cancel()
	e.cancel = nil

	if err != nil {
		e.vm = ViewModel[Out]{Error: err.Error(), Data: e.vm.Data}
	} else {
		e.vm = ViewModel[Out]{Data: &out}
	}
	vm, subs := e.vm, e.subscribersLocked()
	e.mu.Unlock()

	if err != nil {
		e.logger.Warn().Str("panel", e.name).Err(err).Dur("elapsed", time.Since(start)).Msg("Panel fetch failed")
	} else {
		e.logger.Debug().Str("panel", e.name).Dur("elapsed", time.Since(start)).Msg("Panel fetch finished")
	}
	deliver(subs, vm)
}

func (e *executor[In, Out]) snapshot() ViewModel[Out] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vm
}

func (e *executor[In, Out]) subscribe(fn Subscriber[Out]) func() {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.order = append(e.order, id)
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.subs, id)
			for i, v := range e.order {
				if v == id {
					e.order = append(e.order[:i:i], e.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (e *executor[In, Out]) subscribersLocked() []Subscriber[Out] {
	subs := make([]Subscriber[Out], 0, len(e.order))
	for _, id := range e.order {
		subs = append(subs, e.subs[id])
	}
	return subs
}

// close stops publishing, cancels the running fetch and waits for every
// goroutine the executor started.
func (e *executor[In, Out]) close() {
	e.publishMu.Lock()
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.publishMu.Unlock()
		return
	}
	e.closed = true
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.subs = make(map[int]Subscriber[Out])
	e.order = nil
	e.mu.Unlock()
	e.publishMu.Unlock()

	e.wg.Wait()
}

func deliver[T any](subs []Subscriber[T], vm ViewModel[T]) {
	for _, fn := range subs {
		fn(vm)
	}
}
