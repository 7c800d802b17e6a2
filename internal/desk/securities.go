package desk

import (
	"context"
	"sort"

	"github.com/kartikm76/middleoffice-ibor/internal/client"
	"github.com/kartikm76/middleoffice-ibor/internal/interfaces"
)

// Securities is the securities panel's data, heaviest holding first.
type Securities struct {
	PortfolioCode string               `json:"portfolioCode"`
	AsOfDate      string               `json:"asOfDate"`
	Rows          []client.SecurityRow `json:"rows"`
}

func fetchSecurities(gw interfaces.AnalyticsGateway) func(context.Context, SecuritiesInput) (Securities, error) {
	return func(ctx context.Context, in SecuritiesInput) (Securities, error) {
		res, err := gw.SecurityReturnsAsOf(ctx, in.Portfolio, in.AsOf)
		if err != nil {
			return Securities{}, err
		}
		rows := append([]client.SecurityRow(nil), res.Securities...)
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Weight > rows[j].Weight })
		return Securities{PortfolioCode: res.PortfolioCode, AsOfDate: res.AsOfDate, Rows: rows}, nil
	}
}
