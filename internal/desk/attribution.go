package desk

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kartikm76/middleoffice-ibor/internal/client"
	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/interfaces"
)

// Attribution is the attribution panel's data: both Brinson views for one input.
type Attribution struct {
	Period *client.BrinsonPeriodResponse `json:"period"`
	Daily  *client.BrinsonDailyResponse  `json:"daily"`
	KPIs   []KPI                         `json:"kpis"`
}

// fetchAttribution issues the period and daily calls concurrently and
// returns only when both are done. Either failing fails the whole fetch and
// cancels the other.
func fetchAttribution(gw interfaces.AnalyticsGateway) func(context.Context, AttributionInput) (Attribution, error) {
	return func(ctx context.Context, in AttributionInput) (Attribution, error) {
		var out Attribution

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			res, err := gw.BrinsonPeriodForRange(gctx, in.Portfolio, in.Benchmark, in.Range)
			out.Period = res
			return err
		})
		g.Go(func() error {
			res, err := gw.BrinsonDailyForRange(gctx, in.Portfolio, in.Benchmark, in.Range)
			out.Daily = res
			return err
		})
		if err := g.Wait(); err != nil {
			return Attribution{}, err
		}

		out.KPIs = attributionKPIs(out.Period)
		return out, nil
	}
}

func attributionKPIs(p *client.BrinsonPeriodResponse) []KPI {
	var alloc, sel, inter float64
	for _, row := range p.PeriodAttribution {
		alloc += row.Allocation
		sel += row.Selection
		inter += row.Interaction
	}
	return []KPI{
		{Label: "Total Active", Value: common.FormatBps(p.TotalAttribution)},
		{Label: "Allocation", Value: common.FormatBps(alloc)},
		{Label: "Selection", Value: common.FormatBps(sel)},
		{Label: "Interaction", Value: common.FormatBps(inter)},
	}
}
