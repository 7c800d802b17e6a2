package client

import "context"

// DefaultTopK is the number of note chunks requested when the caller has no preference.
const DefaultTopK = 5

// HybridAsk answers a natural-language question from position facts and notes.
// POST /api/rag/hybrid
func (c *IborClient) HybridAsk(ctx context.Context, ask HybridAskRequest) (*HybridAnswerResponse, error) {
	var out HybridAnswerResponse
	if err := c.post(ctx, "hybrid ask", "/api/rag/hybrid", ask, &out, "answer"); err != nil {
		return nil, err
	}
	return &out, nil
}
