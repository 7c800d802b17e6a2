package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/dates"
	"github.com/kartikm76/middleoffice-ibor/internal/desk"
	"github.com/kartikm76/middleoffice-ibor/internal/state"
	"github.com/kartikm76/middleoffice-ibor/internal/theme"
)

// DeskHandler exposes the desk's selection, panels and actions as JSON.
type DeskHandler struct {
	logger *common.Logger
	desk   *desk.Desk
	themes *theme.Service
}

// NewDeskHandler creates a handler over d and themes.
func NewDeskHandler(logger *common.Logger, d *desk.Desk, themes *theme.Service) *DeskHandler {
	return &DeskHandler{logger: logger, desk: d, themes: themes}
}

// SelectionResponse is the selection as the browser sees it.
type SelectionResponse struct {
	Portfolio string `json:"portfolio"`
	Benchmark string `json:"benchmark"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func selectionResponse(sel state.Selection) SelectionResponse {
	return SelectionResponse{
		Portfolio: sel.Portfolio,
		Benchmark: sel.Benchmark,
		StartDate: sel.StartDateStr(),
		EndDate:   sel.EndDateStr(),
	}
}

// selectionPatch carries only the fields the caller wants to change.
type selectionPatch struct {
	Portfolio *string `json:"portfolio"`
	Benchmark *string `json:"benchmark"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

func (p selectionPatch) apply(sel state.Selection) (state.Selection, error) {
	if p.Portfolio != nil {
		sel.Portfolio = strings.TrimSpace(*p.Portfolio)
	}
	if p.Benchmark != nil {
		bm := strings.TrimSpace(*p.Benchmark)
		if bm == "" {
			return sel, errBenchmarkRequired
		}
		sel.Benchmark = bm
	}
	if p.StartDate != nil || p.EndDate != nil {
		start, end := sel.StartDateStr(), sel.EndDateStr()
		if p.StartDate != nil {
			start = *p.StartDate
		}
		if p.EndDate != nil {
			end = *p.EndDate
		}
		r, err := dates.NewRange(start, end)
		if err != nil {
			return sel, err
		}
		sel.Range = r
	}
	return sel, nil
}

var errBenchmarkRequired = errors.New("benchmark must not be empty")

// GetSelection handles GET /api/desk/selection.
func (h *DeskHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, selectionResponse(h.desk.Store.Snapshot()))
}

// UpdateSelection handles PUT /api/desk/selection. Omitted fields keep their value.
func (h *DeskHandler) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	var patch selectionPatch
	if err := DecodeJSON(r, &patch); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	next, err := patch.apply(h.desk.Store.Snapshot())
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if h.desk.Store.Set(next) && h.logger != nil {
		h.logger.Debug().
			Str("portfolio", next.Portfolio).
			Str("benchmark", next.Benchmark).
			Str("range", next.Range.String()).
			Msg("Selection changed")
	}
	WriteJSON(w, http.StatusOK, selectionResponse(h.desk.Store.Snapshot()))
}

// HandlePortfolios handles GET /api/desk/portfolios?q=.
func (h *DeskHandler) HandlePortfolios(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, h.desk.Grid.Search(r.URL.Query().Get("q")))
}

// HandlePanels handles GET /api/desk/panels.
func (h *DeskHandler) HandlePanels(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, h.desk.Views())
}

// HandlePanel handles GET /api/desk/panels/{name}.
func (h *DeskHandler) HandlePanel(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	view, err := h.desk.View(r.PathValue("name"))
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

// HandleNotes handles POST /api/desk/notes. Omitted fields keep the form defaults.
// Validation and backend failures come back in the view-model's error.
func (h *DeskHandler) HandleNotes(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	form := desk.DefaultNoteForm()
	if err := DecodeJSON(r, &form); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, h.desk.SubmitNote(r.Context(), form))
}

// HandleExplain handles POST /api/desk/explain.
func (h *DeskHandler) HandleExplain(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	form := desk.DefaultExplainForm()
	if err := DecodeJSON(r, &form); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, h.desk.Ask(r.Context(), form))
}

type themeBody struct {
	Theme string `json:"theme"`
}

// GetTheme handles GET /api/desk/theme.
func (h *DeskHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, themeBody{Theme: string(h.themes.Current())})
}

// SetTheme handles POST /api/desk/theme. A body without a theme toggles.
func (h *DeskHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if err := DecodeJSON(r, &body); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		t   theme.Theme
		err error
	)
	if body.Theme == "" {
		t, err = h.themes.Toggle(r.Context())
	} else {
		if t, err = theme.Parse(body.Theme); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		err = h.themes.Set(r.Context(), t)
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, themeBody{Theme: string(t)})
}
