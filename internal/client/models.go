package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyReturn is one day of portfolio performance.
type DailyReturn struct {
	AsOfDate    string  `json:"asOfDate"`
	TWRR        float64 `json:"twrr"`
	TotalMVBase float64 `json:"totalMVBase"`
}

// PortfolioReturnResponse answers GET /api/analytics/returns/portfolio.
type PortfolioReturnResponse struct {
	PortfolioCode string        `json:"portfolioCode"`
	DailyReturns  []DailyReturn `json:"dailyReturns"`
	PeriodReturn  float64       `json:"periodReturn"`
}

// SecurityRow is one holding's weight and return on the as-of date.
type SecurityRow struct {
	Ticker    string  `json:"ticker"`
	Segment   string  `json:"segment"`
	Weight    float64 `json:"weight"`
	ReturnPct float64 `json:"returnPct"`
}

// SecurityReturnResponse answers GET /api/analytics/returns/securities.
type SecurityReturnResponse struct {
	PortfolioCode string        `json:"portfolioCode"`
	AsOfDate      string        `json:"asOfDate"`
	Securities    []SecurityRow `json:"securities"`
}

// BrinsonDailyRow is one segment's attribution effects on one day.
type BrinsonDailyRow struct {
	AsOfDate    string  `json:"asOfDate"`
	Segment     string  `json:"segment"`
	Allocation  float64 `json:"allocation"`
	Selection   float64 `json:"selection"`
	Interaction float64 `json:"interaction"`
	Total       float64 `json:"total"`
}

// BrinsonDailyResponse answers GET /api/analytics/attribution/brinson/daily.
type BrinsonDailyResponse struct {
	PortfolioCode    string            `json:"portfolioCode"`
	BenchmarkCode    string            `json:"benchmarkCode"`
	DailyAttribution []BrinsonDailyRow `json:"dailyAttribution"`
}

// BrinsonSegmentRow is one segment's attribution effects over the period.
type BrinsonSegmentRow struct {
	Segment     string  `json:"segment"`
	Allocation  float64 `json:"allocation"`
	Selection   float64 `json:"selection"`
	Interaction float64 `json:"interaction"`
	Total       float64 `json:"total"`
}

// BrinsonPeriodResponse answers GET /api/analytics/attribution/brinson/period.
type BrinsonPeriodResponse struct {
	PortfolioCode     string              `json:"portfolioCode"`
	BenchmarkCode     string              `json:"benchmarkCode"`
	PeriodAttribution []BrinsonSegmentRow `json:"periodAttribution"`
	TotalAttribution  float64             `json:"totalAttribution"`
}

// BenchmarkSegmentRow is a benchmark segment's weight and return on one day.
type BenchmarkSegmentRow struct {
	AsOfDate  string  `json:"asOfDate"`
	Segment   string  `json:"segment"`
	Weight    float64 `json:"weight"`
	ReturnPct float64 `json:"returnPct"`
}

// BenchmarkSegmentResponse answers GET /api/analytics/benchmark/segments.
type BenchmarkSegmentResponse struct {
	BenchmarkCode string                `json:"benchmarkCode"`
	Segments      []BenchmarkSegmentRow `json:"segments"`
}

// IngestNoteRequest is the body of POST /api/notes/ingest.
type IngestNoteRequest struct {
	Title             string   `json:"title"`
	Author            string   `json:"author"`
	Text              string   `json:"text"`
	InstrumentTickers []string `json:"instrumentTickers"`
	PortfolioCodes    []string `json:"portfolioCodes"`
}

// IngestNoteResponse is the backend's opaque ingest receipt.
type IngestNoteResponse map[string]any

// HybridAskRequest is the body of POST /api/rag/hybrid.
type HybridAskRequest struct {
	Question         string   `json:"question"`
	InstrumentTicker string   `json:"instrumentTicker,omitempty"`
	PortfolioCodes   []string `json:"portfolioCodes"`
	TopK             *int     `json:"topK,omitempty"`
}

// Price is the latest price attached to a position aggregate.
type Price struct {
	PriceLast decimal.Decimal `json:"priceLast"`
	Currency  string          `json:"currency"`
	PriceTime *time.Time      `json:"priceTime"`
}

// PositionFacts is the structured position aggregate behind an answer.
type PositionFacts struct {
	InstrumentID int     `json:"instrumentId"`
	Ticker       string  `json:"ticker"`
	Qty          float64 `json:"qty"`
	Side         string  `json:"side"`
	MarketValue  float64 `json:"marketValue"`
	Price        *Price  `json:"price"`
}

// Context is one retrieved note chunk used to ground an answer.
type Context struct {
	DocID     uuid.UUID  `json:"docId"`
	Title     string     `json:"title"`
	SourceURI string     `json:"sourceUri"`
	Author    string     `json:"author"`
	UpdatedAt *time.Time `json:"updatedAt"`
	ChunkIdx  int        `json:"chunkIdx"`
	Content   string     `json:"content"`
}

// HybridAnswerResponse answers POST /api/rag/hybrid.
type HybridAnswerResponse struct {
	Answer   string         `json:"answer"`
	Facts    *PositionFacts `json:"facts"`
	Contexts []Context      `json:"contexts"`
	AsOf     *time.Time     `json:"asOf"`
}

// HealthResponse is the backend actuator status.
type HealthResponse struct {
	Status string `json:"status"`
}
