package desk

import (
	"context"
	"strconv"

	"github.com/kartikm76/middleoffice-ibor/internal/client"
	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/interfaces"
)

// KPI is one labelled headline figure, already formatted for display.
type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary is the summary panel's data.
type Summary struct {
	Returns *client.PortfolioReturnResponse `json:"returns"`
	KPIs    []KPI                           `json:"kpis"`
}

func fetchSummary(gw interfaces.AnalyticsGateway) func(context.Context, SummaryInput) (Summary, error) {
	return func(ctx context.Context, in SummaryInput) (Summary, error) {
		res, err := gw.PortfolioReturnsForRange(ctx, in.Portfolio, in.Range)
		if err != nil {
			return Summary{}, err
		}
		return Summary{Returns: res, KPIs: summaryKPIs(res)}, nil
	}
}

func summaryKPIs(res *client.PortfolioReturnResponse) []KPI {
	kpis := []KPI{
		{Label: "Period Return", Value: common.FormatPercent(res.PeriodReturn)},
		{Label: "Days", Value: strconv.Itoa(len(res.DailyReturns))},
	}
	if n := len(res.DailyReturns); n > 0 {
		kpis = append(kpis, KPI{Label: "Market Value", Value: common.FormatMoney(res.DailyReturns[n-1].TotalMVBase)})
	}
	return kpis
}
