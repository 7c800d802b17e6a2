package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeIbor serves the backend endpoints the desk reads, echoing the
// requested codes and dates back.
type fakeIbor struct {
	*httptest.Server
}

func newFakeIbor(t *testing.T) *fakeIbor {
	t.Helper()
	f := &fakeIbor{}
	mux := http.NewServeMux()

	mux.HandleFunc("/actuator/health", func(w http.ResponseWriter, r *http.Request) {
		f.writeJSON(w, r, map[string]any{"status": "UP"})
	})
	mux.HandleFunc("/api/analytics/returns/portfolio", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f.writeJSON(w, r, map[string]any{
			"portfolioCode": q.Get("portfolioCode"),
			"dailyReturns": []map[string]any{
				{"asOfDate": q.Get("endDate"), "twrr": 0.004, "totalMVBase": 1200000},
			},
			"periodReturn": 0.0123,
		})
	})
	mux.HandleFunc("/api/analytics/returns/securities", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f.writeJSON(w, r, map[string]any{
			"portfolioCode": q.Get("portfolioCode"),
			"asOfDate":      q.Get("asOfDate"),
			"securities": []map[string]any{
				{"ticker": "IBM", "segment": "Tech", "weight": 0.12, "returnPct": 0.015},
			},
		})
	})
	mux.HandleFunc("/api/analytics/attribution/brinson/daily", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f.writeJSON(w, r, map[string]any{
			"portfolioCode":    q.Get("portfolioCode"),
			"benchmarkCode":    q.Get("benchmarkCode"),
			"dailyAttribution": []map[string]any{},
		})
	})
	mux.HandleFunc("/api/analytics/attribution/brinson/period", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f.writeJSON(w, r, map[string]any{
			"portfolioCode": q.Get("portfolioCode"),
			"benchmarkCode": q.Get("benchmarkCode"),
			"periodAttribution": []map[string]any{
				{"segment": "Tech", "allocation": 0.001, "selection": 0.0005, "interaction": 0.0001, "total": 0.0016},
			},
			"totalAttribution": 0.0016,
		})
	})
	mux.HandleFunc("/api/analytics/benchmark/segments", func(w http.ResponseWriter, r *http.Request) {
		f.writeJSON(w, r, map[string]any{
			"benchmarkCode": r.URL.Query().Get("benchmarkCode"),
			"segments": []map[string]any{
				{"asOfDate": r.URL.Query().Get("asOfDate"), "segment": "Tech", "weight": 0.3, "returnPct": 0.01},
			},
		})
	})
	mux.HandleFunc("/api/notes/ingest", func(w http.ResponseWriter, r *http.Request) {
		f.writeJSON(w, r, map[string]any{"status": "ok", "chunks": 1})
	})
	mux.HandleFunc("/api/rag/hybrid", func(w http.ResponseWriter, r *http.Request) {
		f.writeJSON(w, r, map[string]any{
			"answer":   "IBM was trimmed by 20bps.",
			"facts":    nil,
			"contexts": []any{},
			"asOf":     "2025-09-26T00:00:00Z",
		})
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeIbor) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
