package handlers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kartikm76/middleoffice-ibor/internal/client"
	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/config"
	"github.com/kartikm76/middleoffice-ibor/internal/dates"
	"github.com/kartikm76/middleoffice-ibor/internal/desk"
	"github.com/kartikm76/middleoffice-ibor/internal/interfaces"
	"github.com/kartikm76/middleoffice-ibor/internal/state"
	"github.com/kartikm76/middleoffice-ibor/internal/theme"
)

// stubGateway answers every backend call with a small fixed payload.
type stubGateway struct {
	mu      sync.Mutex
	lastAsk client.HybridAskRequest
	askErr  error
}

func (g *stubGateway) PortfolioReturnsForRange(_ context.Context, pf string, r dates.Range) (*client.PortfolioReturnResponse, error) {
	return &client.PortfolioReturnResponse{
		PortfolioCode: pf,
		DailyReturns:  []client.DailyReturn{{AsOfDate: r.EndISO(), TWRR: 0.01, TotalMVBase: 1200000}},
		PeriodReturn:  0.0123,
	}, nil
}

func (g *stubGateway) SecurityReturnsAsOf(_ context.Context, pf string, day time.Time) (*client.SecurityReturnResponse, error) {
	asOf := dates.ToISODate(day)
	return &client.SecurityReturnResponse{PortfolioCode: pf, AsOfDate: asOf}, nil
}

func (g *stubGateway) BrinsonDailyForRange(_ context.Context, pf, bm string, _ dates.Range) (*client.BrinsonDailyResponse, error) {
	return &client.BrinsonDailyResponse{PortfolioCode: pf, BenchmarkCode: bm}, nil
}

func (g *stubGateway) BrinsonPeriodForRange(_ context.Context, pf, bm string, _ dates.Range) (*client.BrinsonPeriodResponse, error) {
	return &client.BrinsonPeriodResponse{PortfolioCode: pf, BenchmarkCode: bm, TotalAttribution: 0.0016}, nil
}

func (g *stubGateway) BenchmarkSegments(_ context.Context, bm, _, _ string) (*client.BenchmarkSegmentResponse, error) {
	return &client.BenchmarkSegmentResponse{BenchmarkCode: bm}, nil
}

func (g *stubGateway) IngestNote(_ context.Context, note client.IngestNoteRequest) (client.IngestNoteResponse, error) {
	return client.IngestNoteResponse{"status": "ok", "title": note.Title}, nil
}

func (g *stubGateway) HybridAsk(_ context.Context, ask client.HybridAskRequest) (*client.HybridAnswerResponse, error) {
	g.mu.Lock()
	g.lastAsk = ask
	err := g.askErr
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &client.HybridAnswerResponse{Answer: "IBM was trimmed."}, nil
}

func (g *stubGateway) Health(context.Context) (*client.HealthResponse, error) {
	return &client.HealthResponse{Status: "UP"}, nil
}

// memKV is an in-memory preference store.
type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", interfaces.ErrKeyNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

var errAskFailed = errors.New("hybrid ask: server returned 500: boom")

type fixture struct {
	desk   *desk.Desk
	gw     *stubGateway
	kv     *memKV
	themes *theme.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.NewDefaultConfig()
	r, err := cfg.Desk.DefaultRange()
	if err != nil {
		t.Fatalf("default range: %v", err)
	}

	logger := common.NewSilentLogger()
	gw := &stubGateway{}
	store := state.NewStore(state.Selection{Benchmark: cfg.Desk.DefaultBenchmark, Range: r})
	d := desk.New(store, gw, desk.Options{Rows: cfg.Desk.Portfolios, Debounce: 10 * time.Millisecond, Logger: logger})
	t.Cleanup(d.Close)

	kv := newMemKV()
	return &fixture{
		desk:   d,
		gw:     gw,
		kv:     kv,
		themes: theme.NewService(context.Background(), kv, logger),
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within 2s")
}
