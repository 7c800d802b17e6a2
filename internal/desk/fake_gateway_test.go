package desk

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kartikm76/middleoffice-ibor/internal/client"
	"github.com/kartikm76/middleoffice-ibor/internal/dates"
)

type gatewayCall struct {
	Op        string
	Portfolio string
	Benchmark string
	Start     string
	End       string
	AsOf      string
}

// fakeGateway answers every backend call from memory and records it.
type fakeGateway struct {
	mu    sync.Mutex
	calls []gatewayCall
	fail  map[string]error

	lastNote client.IngestNoteRequest
	lastAsk  client.HybridAskRequest
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{fail: map[string]error{}}
}

func (f *fakeGateway) record(c gatewayCall) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.fail[c.Op]
}

func (f *fakeGateway) setFailure(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, op)
		return
	}
	f.fail[op] = err
}

func (f *fakeGateway) callsFor(op string) []gatewayCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []gatewayCall
	for _, c := range f.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeGateway) PortfolioReturnsForRange(_ context.Context, pf string, r dates.Range) (*client.PortfolioReturnResponse, error) {
	start, end := r.StartISO(), r.EndISO()
	if err := f.record(gatewayCall{Op: "returns", Portfolio: pf, Start: start, End: end}); err != nil {
		return nil, err
	}
	return &client.PortfolioReturnResponse{
		PortfolioCode: pf,
		DailyReturns: []client.DailyReturn{
			{AsOfDate: start, TWRR: 0.001, TotalMVBase: 1000000},
			{AsOfDate: end, TWRR: 0.002, TotalMVBase: 1200000},
		},
		PeriodReturn: 0.0123,
	}, nil
}

func (f *fakeGateway) SecurityReturnsAsOf(_ context.Context, pf string, day time.Time) (*client.SecurityReturnResponse, error) {
	asOf := dates.ToISODate(day)
	if err := f.record(gatewayCall{Op: "securities", Portfolio: pf, AsOf: asOf}); err != nil {
		return nil, err
	}
	return &client.SecurityReturnResponse{
		PortfolioCode: pf,
		AsOfDate:      asOf,
		Securities: []client.SecurityRow{
			{Ticker: "AAPL", Segment: "Tech", Weight: 0.05, ReturnPct: 0.01},
			{Ticker: "IBM", Segment: "Tech", Weight: 0.12, ReturnPct: 0.015},
		},
	}, nil
}

func (f *fakeGateway) BrinsonDailyForRange(_ context.Context, pf, bm string, r dates.Range) (*client.BrinsonDailyResponse, error) {
	start, end := r.StartISO(), r.EndISO()
	if err := f.record(gatewayCall{Op: "daily", Portfolio: pf, Benchmark: bm, Start: start, End: end}); err != nil {
		return nil, err
	}
	return &client.BrinsonDailyResponse{PortfolioCode: pf, BenchmarkCode: bm}, nil
}

func (f *fakeGateway) BrinsonPeriodForRange(_ context.Context, pf, bm string, r dates.Range) (*client.BrinsonPeriodResponse, error) {
	start, end := r.StartISO(), r.EndISO()
	if err := f.record(gatewayCall{Op: "period", Portfolio: pf, Benchmark: bm, Start: start, End: end}); err != nil {
		return nil, err
	}
	return &client.BrinsonPeriodResponse{
		PortfolioCode: pf,
		BenchmarkCode: bm,
		PeriodAttribution: []client.BrinsonSegmentRow{
			{Segment: "Tech", Allocation: 0.001, Selection: 0.0005, Interaction: 0.0001, Total: 0.0016},
		},
		TotalAttribution: 0.0016,
	}, nil
}

func (f *fakeGateway) BenchmarkSegments(_ context.Context, bm, start, end string) (*client.BenchmarkSegmentResponse, error) {
	if err := f.record(gatewayCall{Op: "segments", Benchmark: bm, Start: start, End: end}); err != nil {
		return nil, err
	}
	return &client.BenchmarkSegmentResponse{BenchmarkCode: bm}, nil
}

func (f *fakeGateway) IngestNote(_ context.Context, note client.IngestNoteRequest) (client.IngestNoteResponse, error) {
	f.mu.Lock()
	f.lastNote = note
	f.mu.Unlock()
	if err := f.record(gatewayCall{Op: "ingest"}); err != nil {
		return nil, err
	}
	return client.IngestNoteResponse{"status": "ok"}, nil
}

func (f *fakeGateway) HybridAsk(_ context.Context, ask client.HybridAskRequest) (*client.HybridAnswerResponse, error) {
	f.mu.Lock()
	f.lastAsk = ask
	f.mu.Unlock()
	if err := f.record(gatewayCall{Op: "ask"}); err != nil {
		return nil, err
	}
	return &client.HybridAnswerResponse{Answer: "IBM was trimmed."}, nil
}

func (f *fakeGateway) Health(context.Context) (*client.HealthResponse, error) {
	return &client.HealthResponse{Status: "UP"}, nil
}

// barrierGateway holds each period call until a daily call has started, so
// both halves of an attribution fetch are in flight together.
type barrierGateway struct {
	*fakeGateway
	dailyStarted chan struct{}
	once         sync.Once
}

func newBarrierGateway() *barrierGateway {
	return &barrierGateway{fakeGateway: newFakeGateway(), dailyStarted: make(chan struct{})}
}

func (b *barrierGateway) BrinsonDailyForRange(ctx context.Context, pf, bm string, r dates.Range) (*client.BrinsonDailyResponse, error) {
	b.once.Do(func() { close(b.dailyStarted) })
	return b.fakeGateway.BrinsonDailyForRange(ctx, pf, bm, r)
}

func (b *barrierGateway) BrinsonPeriodForRange(ctx context.Context, pf, bm string, r dates.Range) (*client.BrinsonPeriodResponse, error) {
	select {
	case <-b.dailyStarted:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(2 * time.Second):
		return nil, errors.New("daily attribution never started")
	}
	return b.fakeGateway.BrinsonPeriodForRange(ctx, pf, bm, r)
}
