package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/dkeye/Voice/internal/broadcast"
	"github.com/dkeye/Voice/internal/core"
	"github.com/dkeye/Voice/internal/dispatch"
	"github.com/dkeye/Voice/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var _ core.Subscriber = (*Conn)(nil)

const writeDeadline = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler owns the single websocket endpoint. Every connection mints a
// fresh domain.SessionID via uuid — never cookie-backed, per the
// design note that chair/session identity must not survive a
// reconnect (the teacher's ClientTokenMiddleware cookie store is
// dropped for exactly this reason; see DESIGN.md).
type Handler struct {
	hub    *broadcast.Hub
	disp   *dispatch.Dispatcher
}

func NewHandler(hub *broadcast.Hub, disp *dispatch.Dispatcher) *Handler {
	return &Handler{hub: hub, disp: disp}
}

// ServeWS upgrades the request and spawns the pumps for a new session.
func (h *Handler) ServeWS(c *gin.Context) {
	sid := domain.SessionID(uuid.NewString())

	raw, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("upgrade failed")
		return
	}

	conn := NewConn(raw)
	h.hub.Register(sid, conn)

	ctx, cancel := context.WithCancel(c.Request.Context())
	go h.writePump(ctx, conn)
	go h.readPump(ctx, cancel, sid, conn)
}

func (h *Handler) writePump(ctx context.Context, c *Conn) {
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				log.Error().Err(err).Str("module", "ws").Msg("set write deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "ws").Msg("write error")
				return
			}
		}
	}
}

func (h *Handler) readPump(ctx context.Context, cancel context.CancelFunc, sid domain.SessionID, c *Conn) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("module", "ws").Str("session", string(sid)).Msg("recovered from panic in read pump")
		}
		cancel()
		c.Close()
		h.disp.HandleDisconnect(sid)
		log.Info().Str("module", "ws").Str("session", string(sid)).Msg("connection closed")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				return
			}
			h.disp.Dispatch(sid, data)
		}
	}
}
