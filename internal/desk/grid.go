package desk

import (
	"strings"

	"github.com/kartikm76/middleoffice-ibor/internal/config"
	"github.com/kartikm76/middleoffice-ibor/internal/state"
)

// GridRow is one portfolio in the grid.
type GridRow struct {
	config.PortfolioRow
	Selected bool `json:"selected"`
}

// Grid is the portfolio list the user picks from.
type Grid struct {
	rows  []config.PortfolioRow
	store *state.Store
}

// NewGrid creates a grid over rows that drives store.
func NewGrid(rows []config.PortfolioRow, store *state.Store) *Grid {
	return &Grid{rows: append([]config.PortfolioRow(nil), rows...), store: store}
}

// Search returns the rows whose code or name contains q, case-insensitively.
// An empty q matches every row.
func (g *Grid) Search(q string) []GridRow {
	q = strings.ToLower(strings.TrimSpace(q))
	selected := g.store.Portfolio()

	out := []GridRow{}
	for _, r := range g.rows {
		if q != "" && !strings.Contains(strings.ToLower(r.Code), q) && !strings.Contains(strings.ToLower(r.Name), q) {
			continue
		}
		out = append(out, GridRow{PortfolioRow: r, Selected: r.Code == selected})
	}
	return out
}

// Select makes code the selected portfolio. It reports whether the selection changed.
func (g *Grid) Select(code string) bool {
	if g.store.Portfolio() == code {
		return false
	}
	return g.store.SetPortfolio(code)
}

// AutoSelect picks the first row when nothing is selected.
func (g *Grid) AutoSelect() bool {
	if g.store.Portfolio() != "" || len(g.rows) == 0 {
		return false
	}
	return g.store.SetPortfolio(g.rows[0].Code)
}
