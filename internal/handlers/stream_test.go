package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/kartikm76/middleoffice-ibor/internal/desk"
)

type streamMessage struct {
	Panel string   `json:"panel"`
	View  viewJSON `json:"view"`
}

func dialStream(t *testing.T, f *fixture) (*websocket.Conn, context.Context) {
	t.Helper()
	srv := httptest.NewServer(NewStreamHandler(nil, f.desk))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn, ctx
}

func TestStreamHandler_SendsSnapshotFirst(t *testing.T) {
	f := newFixture(t)
	conn, ctx := dialStream(t, f)

	for _, want := range desk.PanelNames {
		var msg streamMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if msg.Panel != want {
			t.Errorf("expected snapshot of %s, got %s", want, msg.Panel)
		}
	}
}

func TestStreamHandler_PushesSelectionChange(t *testing.T) {
	f := newFixture(t)
	waitFor(t, func() bool {
		vm := f.desk.Summary.Snapshot()
		return !vm.Loading && vm.Data != nil
	})

	conn, ctx := dialStream(t, f)
	for range desk.PanelNames {
		var msg streamMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			t.Fatalf("read failed: %v", err)
		}
	}

	f.desk.Grid.Select("BETA")

	for {
		var msg streamMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			t.Fatalf("expected a BETA summary before timeout: %v", err)
		}
		if msg.Panel != desk.PanelSummary || msg.View.Loading || len(msg.View.Data) == 0 {
			continue
		}
		var summary desk.Summary
		if err := json.Unmarshal(msg.View.Data, &summary); err != nil {
			t.Fatalf("failed to unmarshal summary: %v", err)
		}
		if summary.Returns != nil && summary.Returns.PortfolioCode == "BETA" {
			return
		}
	}
}
