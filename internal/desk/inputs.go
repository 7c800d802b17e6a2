// Package desk assembles the portfolio desk: the grid, the detail panels
// (summary, attribution, securities) that follow the shared selection, and
// the user-triggered notes and explain actions.
package desk

import (
	"time"

	"github.com/kartikm76/middleoffice-ibor/internal/dates"
	"github.com/kartikm76/middleoffice-ibor/internal/state"
)

// SummaryInput selects portfolio returns over a range.
type SummaryInput struct {
	Portfolio string
	Range     dates.Range
}

// Equal compares codes exactly and dates by instant.
func (a SummaryInput) Equal(b SummaryInput) bool {
	return a.Portfolio == b.Portfolio && a.Range.Equal(b.Range)
}

// DeriveSummary needs a selected portfolio.
func DeriveSummary(sel state.Selection) (SummaryInput, bool) {
	if !sel.HasPortfolio() {
		return SummaryInput{}, false
	}
	return SummaryInput{Portfolio: sel.Portfolio, Range: sel.Range}, true
}

// AttributionInput selects Brinson attribution against a benchmark.
type AttributionInput struct {
	Portfolio string
	Benchmark string
	Range     dates.Range
}

// Equal compares codes exactly and dates by instant.
func (a AttributionInput) Equal(b AttributionInput) bool {
	return a.Portfolio == b.Portfolio && a.Benchmark == b.Benchmark && a.Range.Equal(b.Range)
}

// DeriveAttribution needs a selected portfolio.
func DeriveAttribution(sel state.Selection) (AttributionInput, bool) {
	if !sel.HasPortfolio() {
		return AttributionInput{}, false
	}
	return AttributionInput{Portfolio: sel.Portfolio, Benchmark: sel.Benchmark, Range: sel.Range}, true
}

// SecuritiesInput selects holdings on one day.
type SecuritiesInput struct {
	Portfolio string
	AsOf      time.Time
}

// Equal compares the code exactly and the day by instant.
func (a SecuritiesInput) Equal(b SecuritiesInput) bool {
	return a.Portfolio == b.Portfolio && a.AsOf.Equal(b.AsOf)
}

// DeriveSecurities needs a selected portfolio and uses the range end as the as-of day.
func DeriveSecurities(sel state.Selection) (SecuritiesInput, bool) {
	if !sel.HasPortfolio() {
		return SecuritiesInput{}, false
	}
	return SecuritiesInput{Portfolio: sel.Portfolio, AsOf: sel.Range.End}, true
}
