package panel

import (
	"context"

	"github.com/kartikm76/middleoffice-ibor/internal/common"
)

// Action is a user-triggered fetch (submit a note, ask a question) with the
// same view-model rules as a Controller but no debounce or dedup: every Run
// fetches, and the last Run wins.
type Action[In, Out any] struct {
	exec *executor[In, Out]
}

// NewAction creates an idle action. Its view-model starts empty and not loading.
func NewAction[In, Out any](name string, fetch FetchFunc[In, Out], logger *common.Logger) *Action[In, Out] {
	return &Action[In, Out]{
		exec: newExecutor(name, fetch, logger, ViewModel[Out]{}),
	}
}

// Run starts a fetch for in, superseding any still running.
func (a *Action[In, Out]) Run(in In) {
	a.exec.trigger(in)
}

// RunAndWait starts a fetch for in and waits until it is applied, superseded
// or ctx ends, then returns the current view-model.
func (a *Action[In, Out]) RunAndWait(ctx context.Context, in In) ViewModel[Out] {
	finished := a.exec.trigger(in)
	if finished != nil {
		select {
		case <-finished:
		case <-ctx.Done():
		}
	}
	return a.exec.snapshot()
}

// Snapshot returns the current view-model.
func (a *Action[In, Out]) Snapshot() ViewModel[Out] {
	return a.exec.snapshot()
}

// Subscribe registers fn for every future publish and returns its remover.
func (a *Action[In, Out]) Subscribe(fn Subscriber[Out]) func() {
	return a.exec.subscribe(fn)
}

// Close cancels the running fetch and waits for it.
func (a *Action[In, Out]) Close() {
	a.exec.close()
}
