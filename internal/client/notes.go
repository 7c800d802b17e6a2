package client

import "context"

// IngestNote stores a free-text note against tickers and portfolios.
// POST /api/notes/ingest
func (c *IborClient) IngestNote(ctx context.Context, note IngestNoteRequest) (IngestNoteResponse, error) {
	var out IngestNoteResponse
	if err := c.post(ctx, "ingest note", "/api/notes/ingest", note, &out); err != nil {
		return nil, err
	}
	return out, nil
}
