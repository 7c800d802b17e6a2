package mcp

import (
	"context"
	"fmt"

	"github.com/kartikm76/middleoffice-ibor/internal/client"
	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/dates"
	"github.com/kartikm76/middleoffice-ibor/internal/interfaces"
	"github.com/kartikm76/middleoffice-ibor/internal/state"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SelectionSource supplies the desk selection that fills omitted parameters.
type SelectionSource interface {
	Snapshot() state.Selection
}

// toolFunc runs one tool against the gateway with resolved arguments.
type toolFunc func(ctx context.Context, gw interfaces.Gateway, args toolArgs) (interface{}, error)

var (
	portfolioParam = CatalogParam{Name: "portfolio_code", Type: "string", Description: "Portfolio code, e.g. ALPHA.", Required: true, DefaultFrom: DefaultFromPortfolio}
	benchmarkParam = CatalogParam{Name: "benchmark_code", Type: "string", Description: "Benchmark code, e.g. SPX.", Required: true, DefaultFrom: DefaultFromBenchmark}
	startParam     = CatalogParam{Name: "start_date", Type: "date", Description: "First day, YYYY-MM-DD.", Required: true, DefaultFrom: DefaultFromStartDate}
	endParam       = CatalogParam{Name: "end_date", Type: "date", Description: "Last day, YYYY-MM-DD.", Required: true, DefaultFrom: DefaultFromEndDate}
)

// DeskCatalog lists the tools the portal exposes over MCP.
func DeskCatalog() []CatalogTool {
	return []CatalogTool{
		{
			Name:        "portfolio_returns",
			Description: "Daily time-weighted returns and the period return for a portfolio.",
			Params:      []CatalogParam{portfolioParam, startParam, endParam},
		},
		{
			Name:        "security_returns",
			Description: "Per-security weight and return for a portfolio on one day.",
			Params: []CatalogParam{
				portfolioParam,
				{Name: "as_of_date", Type: "date", Description: "Day to report, YYYY-MM-DD.", Required: true, DefaultFrom: DefaultFromEndDate},
			},
		},
		{
			Name:        "brinson_attribution",
			Description: "Brinson allocation, selection and interaction effects of a portfolio against a benchmark.",
			Params: []CatalogParam{
				portfolioParam, benchmarkParam, startParam, endParam,
				{Name: "granularity", Type: "string", Description: "period (default) or daily."},
			},
		},
		{
			Name:        "benchmark_segments",
			Description: "Segment weights and returns of a benchmark over a date range.",
			Params:      []CatalogParam{benchmarkParam, startParam, endParam},
		},
		{
			Name:        "ask_desk",
			Description: "Answer a question from position facts and research notes.",
			Params: []CatalogParam{
				{Name: "question", Type: "string", Description: "The question.", Required: true},
				{Name: "ticker", Type: "string", Description: "Instrument ticker to focus on."},
				{Name: "portfolio_code", Type: "string", Description: "Portfolio to scope facts to.", DefaultFrom: DefaultFromPortfolio},
				{Name: "top_k", Type: "number", Description: "Number of note chunks to retrieve (default 5)."},
			},
		},
		{
			Name:        "ingest_note",
			Description: "Store a research note for later retrieval.",
			Params: []CatalogParam{
				{Name: "title", Type: "string", Description: "Note title.", Required: true},
				{Name: "author", Type: "string", Description: "Note author.", Required: true},
				{Name: "text", Type: "string", Description: "Note body.", Required: true},
				{Name: "tickers", Type: "array", Description: "Instrument tickers the note mentions."},
				{Name: "portfolios", Type: "array", Description: "Portfolio codes the note concerns."},
			},
		},
	}
}

var toolFuncs = map[string]toolFunc{
	"portfolio_returns":   portfolioReturns,
	"security_returns":    securityReturns,
	"brinson_attribution": brinsonAttribution,
	"benchmark_segments":  benchmarkSegments,
	"ask_desk":            askDesk,
	"ingest_note":         ingestNote,
}

// RegisterTools adds every catalog tool with a known implementation to s.
// The catalog is expected to have passed ValidateCatalog.
func RegisterTools(s *server.MCPServer, gw interfaces.Gateway, sel SelectionSource, catalog []CatalogTool, logger *common.Logger) int {
	count := 0
	for _, ct := range catalog {
		fn, ok := toolFuncs[ct.Name]
		if !ok {
			logger.Warn().Str("name", ct.Name).Msg("Skipping catalog tool without implementation")
			continue
		}
		s.AddTool(BuildMCPTool(ct), ToolHandler(gw, sel, ct, fn))
		count++
	}
	return count
}

// ToolHandler resolves the call's arguments and runs fn, returning its result as JSON.
func ToolHandler(gw interfaces.Gateway, sel SelectionSource, ct CatalogTool, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := resolveArgs(r, ct.Params, sel.Snapshot())
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		out, err := fn(ctx, gw, args)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(out), nil
	}
}

func argRange(args toolArgs) (dates.Range, error) {
	return dates.NewRange(args.str("start_date"), args.str("end_date"))
}

func portfolioReturns(ctx context.Context, gw interfaces.Gateway, args toolArgs) (interface{}, error) {
	r, err := argRange(args)
	if err != nil {
		return nil, err
	}
	return gw.PortfolioReturnsForRange(ctx, args.str("portfolio_code"), r)
}

func securityReturns(ctx context.Context, gw interfaces.Gateway, args toolArgs) (interface{}, error) {
	asOf, err := dates.FromISODate(args.str("as_of_date"))
	if err != nil {
		return nil, fmt.Errorf("as_of_date: %w", err)
	}
	return gw.SecurityReturnsAsOf(ctx, args.str("portfolio_code"), asOf)
}

func brinsonAttribution(ctx context.Context, gw interfaces.Gateway, args toolArgs) (interface{}, error) {
	r, err := argRange(args)
	if err != nil {
		return nil, err
	}
	pf, bm := args.str("portfolio_code"), args.str("benchmark_code")
	switch args.str("granularity") {
	case "", "period":
		return gw.BrinsonPeriodForRange(ctx, pf, bm, r)
	case "daily":
		return gw.BrinsonDailyForRange(ctx, pf, bm, r)
	default:
		return nil, fmt.Errorf("granularity must be period or daily (got %q)", args.str("granularity"))
	}
}

func benchmarkSegments(ctx context.Context, gw interfaces.Gateway, args toolArgs) (interface{}, error) {
	r, err := argRange(args)
	if err != nil {
		return nil, err
	}
	return gw.BenchmarkSegments(ctx, args.str("benchmark_code"), r.StartISO(), r.EndISO())
}

func askDesk(ctx context.Context, gw interfaces.Gateway, args toolArgs) (interface{}, error) {
	topK := client.DefaultTopK
	if k, ok := args.num("top_k"); ok && k > 0 {
		topK = k
	}
	req := client.HybridAskRequest{
		Question:         args.str("question"),
		InstrumentTicker: args.str("ticker"),
		TopK:             &topK,
	}
	if pf := args.str("portfolio_code"); pf != "" {
		req.PortfolioCodes = []string{pf}
	}
	return gw.HybridAsk(ctx, req)
}

func ingestNote(ctx context.Context, gw interfaces.Gateway, args toolArgs) (interface{}, error) {
	return gw.IngestNote(ctx, client.IngestNoteRequest{
		Title:             args.str("title"),
		Author:            args.str("author"),
		Text:              args.str("text"),
		InstrumentTickers: args.strs("tickers"),
		PortfolioCodes:    args.strs("portfolios"),
	})
}
