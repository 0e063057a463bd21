// Package http is the HTTP entry surface: room creation/lookup,
// redirect shims for the chair/participant deep links, the websocket
// endpoint, health, and metadata. Grounded on the teacher's
// internal/adapters/http/router.go for the gin setup shape (mode
// switch, Recovery middleware, static file serving), minus the
// cookie-backed ClientTokenMiddleware — dropped because this domain's
// session identity is minted fresh per websocket connection rather
// than persisted across requests (see DESIGN.md).
package http

import (
	"net/http"

	"github.com/dkeye/Voice/internal/broadcast"
	"github.com/dkeye/Voice/internal/config"
	"github.com/dkeye/Voice/internal/dispatch"
	"github.com/dkeye/Voice/internal/domain"
	"github.com/dkeye/Voice/internal/registry"
	"github.com/dkeye/Voice/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SetupRouter wires the full HTTP surface. reg and hub are shared with
// the websocket handler so that a room created here is immediately
// visible to a command arriving over the duplex channel.
func SetupRouter(cfg *config.Config, reg *registry.Registry, hub *broadcast.Hub, disp *dispatch.Dispatcher) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, cfg.LandingPath)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/rooms", func(c *gin.Context) {
		code, err := uniqueCode(reg)
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("room code generation exhausted")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not allocate a room code"})
			return
		}
		reg.Create(code)
		log.Info().Str("module", "adapters.http").Str("room", string(code)).Int("total", reg.Len()).Msg("room created via http")
		c.JSON(http.StatusOK, gin.H{"roomCode": code, "exists": true})
	})

	r.GET("/rooms/:code", func(c *gin.Context) {
		code := domain.NormalizeRoomCode(c.Param("code"))
		_, exists := reg.Find(code)
		c.JSON(http.StatusOK, gin.H{"roomCode": code, "exists": exists})
	})

	r.GET("/chair/:code", func(c *gin.Context) {
		code := domain.NormalizeRoomCode(c.Param("code"))
		c.Redirect(http.StatusFound, "/chair.html?room="+string(code))
	})

	r.GET("/room/:code", func(c *gin.Context) {
		code := domain.NormalizeRoomCode(c.Param("code"))
		c.Redirect(http.StatusFound, "/room.html?room="+string(code))
	})

	r.GET("/metadata/meeting-goals", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": "1.0", "data": domain.MeetingGoals()})
	})
	r.GET("/metadata/participation-formats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": "1.0", "data": domain.ParticipationFormats()})
	})
	r.GET("/metadata/decision-rules", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": "1.0", "data": domain.DecisionRules()})
	})
	r.GET("/metadata/deliverables", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": "1.0", "data": domain.Deliverables()})
	})

	handler := ws.NewHandler(hub, disp)
	r.GET("/ws", handler.ServeWS)

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Int("max_rooms", cfg.MaxRooms).Msg("router setup")
	return r
}

// uniqueCode draws codes until one is absent from the registry. A
// collision is vanishingly unlikely at documented capacity (2500
// rooms against an alphabet of 35^4 codes) but the loop, not a single
// draw, is what the contract promises.
func uniqueCode(reg *registry.Registry) (domain.RoomCode, error) {
	for {
		code, err := domain.GenerateRoomCode()
		if err != nil {
			return "", err
		}
		if _, exists := reg.Find(code); !exists {
			return code, nil
		}
	}
}
