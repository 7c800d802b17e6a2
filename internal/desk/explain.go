package desk

import (
	"context"
	"errors"
	"strings"

	"github.com/kartikm76/middleoffice-ibor/internal/client"
	"github.com/kartikm76/middleoffice-ibor/internal/interfaces"
)

// ExplainForm is the explain tab's question.
type ExplainForm struct {
	Question string `json:"question"`
	Ticker   string `json:"ticker"`
}

// DefaultExplainForm is the form as first shown.
func DefaultExplainForm() ExplainForm {
	return ExplainForm{
		Question: "What changed in IBM notes last week?",
		Ticker:   "IBM",
	}
}

// explainInput pairs the form with the portfolio selected when it was asked.
type explainInput struct {
	Form      ExplainForm
	Portfolio string
}

// Request builds the hybrid-ask body: the selected portfolio scopes the
// question when there is one, and DefaultTopK chunks are requested.
func (in explainInput) Request() (client.HybridAskRequest, error) {
	q := strings.TrimSpace(in.Form.Question)
	if q == "" {
		return client.HybridAskRequest{}, errors.New("question is required")
	}
	topK := client.DefaultTopK
	req := client.HybridAskRequest{
		Question:         q,
		InstrumentTicker: strings.TrimSpace(in.Form.Ticker),
		TopK:             &topK,
	}
	if in.Portfolio != "" {
		req.PortfolioCodes = []string{in.Portfolio}
	}
	return req, nil
}

func askHybrid(gw interfaces.RagGateway) func(context.Context, explainInput) (client.HybridAnswerResponse, error) {
	return func(ctx context.Context, in explainInput) (client.HybridAnswerResponse, error) {
		req, err := in.Request()
		if err != nil {
			return client.HybridAnswerResponse{}, err
		}
		res, err := gw.HybridAsk(ctx, req)
		if err != nil {
			return client.HybridAnswerResponse{}, err
		}
		return *res, nil
	}
}
