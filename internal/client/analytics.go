package client

import (
	"context"
	"net/url"
	"time"

	"github.com/kartikm76/middleoffice-ibor/internal/dates"
)

// PortfolioReturns fetches daily and period TWRR for a portfolio.
// GET /api/analytics/returns/portfolio?portfolioCode&startDate&endDate
func (c *IborClient) PortfolioReturns(ctx context.Context, portfolioCode, startDate, endDate string) (*PortfolioReturnResponse, error) {
	q := url.Values{}
	q.Set("portfolioCode", portfolioCode)
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)

	var out PortfolioReturnResponse
	err := c.get(ctx, "portfolio returns", "/api/analytics/returns/portfolio", q, &out,
		"portfolioCode", "dailyReturns", "periodReturn")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// PortfolioReturnsForRange is PortfolioReturns over a date range.
func (c *IborClient) PortfolioReturnsForRange(ctx context.Context, portfolioCode string, r dates.Range) (*PortfolioReturnResponse, error) {
	return c.PortfolioReturns(ctx, portfolioCode, r.StartISO(), r.EndISO())
}

// SecurityReturns fetches per-holding weights and returns on a day.
// GET /api/analytics/returns/securities?portfolioCode&asOfDate
func (c *IborClient) SecurityReturns(ctx context.Context, portfolioCode, asOfDate string) (*SecurityReturnResponse, error) {
	q := url.Values{}
	q.Set("portfolioCode", portfolioCode)
	q.Set("asOfDate", asOfDate)

	var out SecurityReturnResponse
	err := c.get(ctx, "security returns", "/api/analytics/returns/securities", q, &out,
		"portfolioCode", "asOfDate", "securities")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SecurityReturnsAsOf is SecurityReturns for a calendar day.
func (c *IborClient) SecurityReturnsAsOf(ctx context.Context, portfolioCode string, asOf time.Time) (*SecurityReturnResponse, error) {
	return c.SecurityReturns(ctx, portfolioCode, dates.ToISODate(asOf))
}

// BrinsonDaily fetches daily Brinson attribution by segment.
// GET /api/analytics/attribution/brinson/daily
func (c *IborClient) BrinsonDaily(ctx context.Context, portfolioCode, benchmarkCode, startDate, endDate string) (*BrinsonDailyResponse, error) {
	var out BrinsonDailyResponse
	err := c.get(ctx, "daily attribution", "/api/analytics/attribution/brinson/daily",
		attributionQuery(portfolioCode, benchmarkCode, startDate, endDate), &out,
		"portfolioCode", "benchmarkCode", "dailyAttribution")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// BrinsonPeriod fetches Brinson attribution aggregated over the period.
// GET /api/analytics/attribution/brinson/period
func (c *IborClient) BrinsonPeriod(ctx context.Context, portfolioCode, benchmarkCode, startDate, endDate string) (*BrinsonPeriodResponse, error) {
	var out BrinsonPeriodResponse
	err := c.get(ctx, "period attribution", "/api/analytics/attribution/brinson/period",
		attributionQuery(portfolioCode, benchmarkCode, startDate, endDate), &out,
		"portfolioCode", "benchmarkCode", "periodAttribution", "totalAttribution")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// BrinsonDailyForRange is BrinsonDaily over a date range.
func (c *IborClient) BrinsonDailyForRange(ctx context.Context, portfolioCode, benchmarkCode string, r dates.Range) (*BrinsonDailyResponse, error) {
	return c.BrinsonDaily(ctx, portfolioCode, benchmarkCode, r.StartISO(), r.EndISO())
}

// BrinsonPeriodForRange is BrinsonPeriod over a date range.
func (c *IborClient) BrinsonPeriodForRange(ctx context.Context, portfolioCode, benchmarkCode string, r dates.Range) (*BrinsonPeriodResponse, error) {
	return c.BrinsonPeriod(ctx, portfolioCode, benchmarkCode, r.StartISO(), r.EndISO())
}

// BenchmarkSegments fetches benchmark segment weights and returns.
// GET /api/analytics/benchmark/segments?benchmarkCode&startDate&endDate
func (c *IborClient) BenchmarkSegments(ctx context.Context, benchmarkCode, startDate, endDate string) (*BenchmarkSegmentResponse, error) {
	q := url.Values{}
	q.Set("benchmarkCode", benchmarkCode)
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)

	var out BenchmarkSegmentResponse
	err := c.get(ctx, "benchmark segments", "/api/analytics/benchmark/segments", q, &out,
		"benchmarkCode", "segments")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func attributionQuery(portfolioCode, benchmarkCode, startDate, endDate string) url.Values {
	q := url.Values{}
	q.Set("portfolioCode", portfolioCode)
	q.Set("benchmarkCode", benchmarkCode)
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	return q
}
