// Package state holds the desk's shared selection: the active portfolio,
// benchmark and date range. Every panel derives its fetch input from it.
package state

import (
	"sync"

	"github.com/kartikm76/middleoffice-ibor/internal/dates"
)

// Selection is an immutable snapshot of the store. Portfolio is empty when
// nothing is selected.
type Selection struct {
	Portfolio string
	Benchmark string
	Range     dates.Range
}

// HasPortfolio reports whether a portfolio is selected.
func (s Selection) HasPortfolio() bool { return s.Portfolio != "" }

// StartDateStr returns the range start as YYYY-MM-DD.
func (s Selection) StartDateStr() string { return s.Range.StartISO() }

// EndDateStr returns the range end as YYYY-MM-DD.
func (s Selection) EndDateStr() string { return s.Range.EndISO() }

// Listener is called with the new selection after each change.
type Listener func(Selection)

// Store is the observable selection. Setters that do not change the value
// do not notify. Listeners run synchronously on the caller's goroutine,
// after the lock is released, in subscription order. A listener must not
// call a setter on the same store.
type Store struct {
	mu        sync.RWMutex
	sel       Selection
	nextID    int
	listeners map[int]Listener
	order     []int

	// notifyMu serialises notification rounds so listeners observe changes
	// in the order they were made.
	notifyMu sync.Mutex
}

// NewStore creates a store seeded with initial.
func NewStore(initial Selection) *Store {
	return &Store{
		sel:       initial,
		listeners: make(map[int]Listener),
	}
}

// Snapshot returns the current selection.
func (s *Store) Snapshot() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel
}

// Portfolio returns the selected portfolio code, or "" when none.
func (s *Store) Portfolio() string { return s.Snapshot().Portfolio }

// Benchmark returns the selected benchmark code.
func (s *Store) Benchmark() string { return s.Snapshot().Benchmark }

// Range returns the selected date range.
func (s *Store) Range() dates.Range { return s.Snapshot().Range }

// StartDateStr returns the range start as YYYY-MM-DD.
func (s *Store) StartDateStr() string { return s.Snapshot().StartDateStr() }

// EndDateStr returns the range end as YYYY-MM-DD.
func (s *Store) EndDateStr() string { return s.Snapshot().EndDateStr() }

// SetPortfolio selects a portfolio. Pass "" to clear the selection.
func (s *Store) SetPortfolio(code string) bool {
	return s.update(func(sel *Selection) bool {
		if sel.Portfolio == code {
			return false
		}
		sel.Portfolio = code
		return true
	})
}

// SetBenchmark selects a benchmark.
func (s *Store) SetBenchmark(code string) bool {
	return s.update(func(sel *Selection) bool {
		if sel.Benchmark == code {
			return false
		}
		sel.Benchmark = code
		return true
	})
}

// SetRange selects a date range. Boundaries are compared by instant.
func (s *Store) SetRange(r dates.Range) bool {
	return s.update(func(sel *Selection) bool {
		if sel.Range.Equal(r) {
			return false
		}
		sel.Range = r
		return true
	})
}

// Set replaces the whole selection in one change, notifying at most once.
func (s *Store) Set(next Selection) bool {
	return s.update(func(sel *Selection) bool {
		if sel.Portfolio == next.Portfolio && sel.Benchmark == next.Benchmark && sel.Range.Equal(next.Range) {
			return false
		}
		*sel = next
		return true
	})
}

// Subscribe registers fn and returns a func that removes it.
// fn is not called with the current value; use Snapshot for that.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store) update(mutate func(*Selection) bool) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if !mutate(&s.sel) {
		s.mu.Unlock()
		return false
	}
	sel := s.sel
	fns := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(sel)
	}
	return true
}
