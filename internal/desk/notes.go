package desk

import (
	"context"
	"fmt"
	"strings"

	"github.com/kartikm76/middleoffice-ibor/internal/client"
	"github.com/kartikm76/middleoffice-ibor/internal/interfaces"
)

// NoteForm is the notes tab as the user fills it in. Tickers and Portfolios
// are comma-separated.
type NoteForm struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Text       string `json:"text"`
	Tickers    string `json:"tickers"`
	Portfolios string `json:"portfolios"`
}

// DefaultNoteForm is the form as first shown.
func DefaultNoteForm() NoteForm {
	return NoteForm{
		Title:      "Weekly update",
		Author:     "PM Desk",
		Text:       "Trimmed IBM by 20bps; strength into earnings.",
		Tickers:    "IBM",
		Portfolios: "ALPHA",
	}
}

// SplitList splits a comma-separated list, trimming entries and dropping empty ones.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Request builds the ingest body. Title, author and text must not be blank.
func (f NoteForm) Request() (client.IngestNoteRequest, error) {
	required := []struct{ name, value string }{
		{"title", f.Title}, {"author", f.Author}, {"text", f.Text},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return client.IngestNoteRequest{}, fmt.Errorf("%s is required", r.name)
		}
	}
	return client.IngestNoteRequest{
		Title:             f.Title,
		Author:            f.Author,
		Text:              f.Text,
		InstrumentTickers: SplitList(f.Tickers),
		PortfolioCodes:    SplitList(f.Portfolios),
	}, nil
}

func ingestNote(gw interfaces.NotesGateway) func(context.Context, NoteForm) (client.IngestNoteResponse, error) {
	return func(ctx context.Context, f NoteForm) (client.IngestNoteResponse, error) {
		req, err := f.Request()
		if err != nil {
			return nil, err
		}
		return gw.IngestNote(ctx, req)
	}
}
