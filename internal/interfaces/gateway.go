package interfaces

import (
	"context"
	"time"

	"github.com/kartikm76/middleoffice-ibor/internal/client"
	"github.com/kartikm76/middleoffice-ibor/internal/dates"
)

// AnalyticsGateway is the read side of the backend used by the data panels
// and MCP tools. Dates travel as calendar values and are formatted by the client.
type AnalyticsGateway interface {
	PortfolioReturnsForRange(ctx context.Context, portfolioCode string, r dates.Range) (*client.PortfolioReturnResponse, error)
	SecurityReturnsAsOf(ctx context.Context, portfolioCode string, asOf time.Time) (*client.SecurityReturnResponse, error)
	BrinsonDailyForRange(ctx context.Context, portfolioCode, benchmarkCode string, r dates.Range) (*client.BrinsonDailyResponse, error)
	BrinsonPeriodForRange(ctx context.Context, portfolioCode, benchmarkCode string, r dates.Range) (*client.BrinsonPeriodResponse, error)
	BenchmarkSegments(ctx context.Context, benchmarkCode, startDate, endDate string) (*client.BenchmarkSegmentResponse, error)
}

// NotesGateway ingests free-text notes.
type NotesGateway interface {
	IngestNote(ctx context.Context, note client.IngestNoteRequest) (client.IngestNoteResponse, error)
}

// RagGateway answers questions from facts and notes.
type RagGateway interface {
	HybridAsk(ctx context.Context, ask client.HybridAskRequest) (*client.HybridAnswerResponse, error)
}

// Gateway is every backend capability the desk consumes.
type Gateway interface {
	AnalyticsGateway
	NotesGateway
	RagGateway
	Health(ctx context.Context) (*client.HealthResponse, error)
}

var _ Gateway = (*client.IborClient)(nil)
