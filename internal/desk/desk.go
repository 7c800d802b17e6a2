package desk

import (
	"context"
	"fmt"
	"time"

	"github.com/kartikm76/middleoffice-ibor/internal/client"
	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/config"
	"github.com/kartikm76/middleoffice-ibor/internal/interfaces"
	"github.com/kartikm76/middleoffice-ibor/internal/panel"
	"github.com/kartikm76/middleoffice-ibor/internal/state"
)

// Panel names, as used in routes and stream messages.
const (
	PanelSummary     = "summary"
	PanelAttribution = "attribution"
	PanelSecurities  = "securities"
	PanelNotes       = "notes"
	PanelExplain     = "explain"
)

// PanelNames lists every panel in display order.
var PanelNames = []string{PanelSummary, PanelAttribution, PanelSecurities, PanelNotes, PanelExplain}

// Update is one published view-model, tagged with its panel.
type Update struct {
	Panel string `json:"panel"`
	View  any    `json:"view"`
}

// Options configure a Desk.
type Options struct {
	Rows     []config.PortfolioRow
	Debounce time.Duration
	Logger   *common.Logger
}

// Desk owns the selection-driven panels and the user actions for one session.
type Desk struct {
	Store *state.Store
	Grid  *Grid

	Summary     *panel.Controller[SummaryInput, Summary]
	Attribution *panel.Controller[AttributionInput, Attribution]
	Securities  *panel.Controller[SecuritiesInput, Securities]

	notes   *panel.Action[NoteForm, client.IngestNoteResponse]
	explain *panel.Action[explainInput, client.HybridAnswerResponse]

	logger *common.Logger
}

// New wires every panel to store and gw. If nothing is selected the first
// grid row is selected before the panels start.
func New(store *state.Store, gw interfaces.Gateway, opts Options) *Desk {
	logger := opts.Logger
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	d := &Desk{
		Store:  store,
		Grid:   NewGrid(opts.Rows, store),
		logger: logger,
	}
	d.Grid.AutoSelect()

	d.Summary = panel.NewController(store, panel.Options[SummaryInput, Summary]{
		Name:     PanelSummary,
		Derive:   DeriveSummary,
		Equal:    SummaryInput.Equal,
		Fetch:    fetchSummary(gw),
		Debounce: opts.Debounce,
		Logger:   logger,
	})
	d.Attribution = panel.NewController(store, panel.Options[AttributionInput, Attribution]{
		Name:     PanelAttribution,
		Derive:   DeriveAttribution,
		Equal:    AttributionInput.Equal,
		Fetch:    fetchAttribution(gw),
		Debounce: opts.Debounce,
		Logger:   logger,
	})
	d.Securities = panel.NewController(store, panel.Options[SecuritiesInput, Securities]{
		Name:     PanelSecurities,
		Derive:   DeriveSecurities,
		Equal:    SecuritiesInput.Equal,
		Fetch:    fetchSecurities(gw),
		Debounce: opts.Debounce,
		Logger:   logger,
	})
	d.notes = panel.NewAction(PanelNotes, ingestNote(gw), logger)
	d.explain = panel.NewAction(PanelExplain, askHybrid(gw), logger)

	sel := store.Snapshot()
	logger.Info().
		Str("portfolio", sel.Portfolio).
		Str("benchmark", sel.Benchmark).
		Str("range", sel.Range.String()).
		Msg("Desk started")

	return d
}

// SubmitNote ingests the note and waits for the outcome.
func (d *Desk) SubmitNote(ctx context.Context, form NoteForm) panel.ViewModel[client.IngestNoteResponse] {
	return d.notes.RunAndWait(ctx, form)
}

// Ask sends the question, scoped to the selected portfolio, and waits for the answer.
func (d *Desk) Ask(ctx context.Context, form ExplainForm) panel.ViewModel[client.HybridAnswerResponse] {
	return d.explain.RunAndWait(ctx, explainInput{Form: form, Portfolio: d.Store.Portfolio()})
}

// NotesView returns the notes panel's view-model.
func (d *Desk) NotesView() panel.ViewModel[client.IngestNoteResponse] { return d.notes.Snapshot() }

// ExplainView returns the explain panel's view-model.
func (d *Desk) ExplainView() panel.ViewModel[client.HybridAnswerResponse] {
	return d.explain.Snapshot()
}

// View returns the named panel's current view-model.
func (d *Desk) View(name string) (any, error) {
	switch name {
	case PanelSummary:
		return d.Summary.Snapshot(), nil
	case PanelAttribution:
		return d.Attribution.Snapshot(), nil
	case PanelSecurities:
		return d.Securities.Snapshot(), nil
	case PanelNotes:
		return d.NotesView(), nil
	case PanelExplain:
		return d.ExplainView(), nil
	}
	return nil, fmt.Errorf("unknown panel %q", name)
}

// Views returns every panel's current view-model keyed by name.
func (d *Desk) Views() map[string]any {
	out := make(map[string]any, len(PanelNames))
	for _, name := range PanelNames {
		out[name], _ = d.View(name)
	}
	return out
}

// Subscribe forwards every panel publish to fn and returns a func removing it.
// fn runs on the publishing goroutine and must not block for long.
func (d *Desk) Subscribe(fn func(Update)) func() {
	unsubs := []func(){
		d.Summary.Subscribe(func(vm panel.ViewModel[Summary]) { fn(Update{Panel: PanelSummary, View: vm}) }),
		d.Attribution.Subscribe(func(vm panel.ViewModel[Attribution]) { fn(Update{Panel: PanelAttribution, View: vm}) }),
		d.Securities.Subscribe(func(vm panel.ViewModel[Securities]) { fn(Update{Panel: PanelSecurities, View: vm}) }),
		d.notes.Subscribe(func(vm panel.ViewModel[client.IngestNoteResponse]) { fn(Update{Panel: PanelNotes, View: vm}) }),
		d.explain.Subscribe(func(vm panel.ViewModel[client.HybridAnswerResponse]) { fn(Update{Panel: PanelExplain, View: vm}) }),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Close stops every panel and waits for in-flight fetches.
func (d *Desk) Close() {
	d.Summary.Close()
	d.Attribution.Close()
	d.Securities.Close()
	d.notes.Close()
	d.explain.Close()
	d.logger.Debug().Msg("Desk closed")
}
