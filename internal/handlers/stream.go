package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/desk"
)

const (
	streamBuffer       = 64
	streamWriteTimeout = 5 * time.Second
)

// StreamHandler pushes every panel publish to a WebSocket client.
type StreamHandler struct {
	logger *common.Logger
	desk   *desk.Desk
}

// NewStreamHandler creates a stream handler over d.
func NewStreamHandler(logger *common.Logger, d *desk.Desk) *StreamHandler {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &StreamHandler{logger: logger, desk: d}
}

// ServeHTTP handles GET /api/desk/stream. The client first receives the
// current view of every panel, then one message per publish. A client that
// falls more than streamBuffer messages behind is disconnected.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")

	// The browser never sends; CloseRead handles control frames and ends ctx on disconnect.
	ctx := conn.CloseRead(r.Context())

	send := make(chan desk.Update, streamBuffer)
	slow := make(chan struct{})
	var slowOnce sync.Once

	unsubscribe := h.desk.Subscribe(func(u desk.Update) {
		select {
		case send <- u:
		default:
			slowOnce.Do(func() { close(slow) })
		}
	})
	defer unsubscribe()

	h.logger.Debug().Str("remote", r.RemoteAddr).Msg("Stream client connected")

	for _, name := range desk.PanelNames {
		view, _ := h.desk.View(name)
		if err := h.write(ctx, conn, desk.Update{Panel: name, View: view}); err != nil {
			h.logger.Debug().Err(err).Msg("Stream client gone during snapshot")
			return
		}
	}

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug().Str("remote", r.RemoteAddr).Msg("Stream client disconnected")
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-slow:
			h.logger.Warn().Str("remote", r.RemoteAddr).Msg("Dropping slow stream client")
			conn.Close(websocket.StatusTryAgainLater, "client too slow")
			return
		case u := <-send:
			if err := h.write(ctx, conn, u); err != nil {
				if websocket.CloseStatus(err) == -1 {
					h.logger.Debug().Err(err).Msg("Stream write failed")
				}
				return
			}
		}
	}
}

func (h *StreamHandler) write(ctx context.Context, conn *websocket.Conn, u desk.Update) error {
	ctx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, u)
}
