package feed

import (
	"context"
	"log"
	"net/http"
	"time"

	"equiplend/internal/domain"
	"equiplend/internal/modules/access"
	"equiplend/internal/pkg/diagnostics"
	"equiplend/internal/pkg/jwt"
	"equiplend/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const pongWait = 60 * time.Second

type Gate interface {
	Require(ctx context.Context, actorID int64, allowed ...domain.Role) (*domain.Actor, error)
}

type Handler struct {
	hub      *Hub
	jwt      *jwt.Service
	gate     Gate
	diag     diagnostics.Sink
	upgrader websocket.Upgrader
}

// NewHandler builds the feed endpoint. checkOrigin may be nil to accept any
// origin.
func NewHandler(hub *Hub, jwtService *jwt.Service, gate Gate, diag diagnostics.Sink, checkOrigin func(r *http.Request) bool) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Handler{
		hub:  hub,
		jwt:  jwtService,
		gate: gate,
		diag: diag,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/equipment", h.Subscribe)
}

// Subscribe authenticates with ?token= since browsers cannot set headers on
// a websocket handshake. Only staff may subscribe.
func (h *Handler) Subscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.CustomError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Token is required")
		return
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
		return
	}
	if _, err := h.gate.Require(c.Request.Context(), claims.UserID, access.Staff...); err != nil {
		h.diag.Report(c.Request.Context(), "feed.subscribe", err)
		response.Fail(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("feed_upgrade_failed actor_id=%d error=%v", claims.UserID, err)
		return
	}

	cl := h.hub.Register(claims.UserID, conn)
	defer h.hub.Unregister(claims.UserID, cl)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// The feed is one-way; reading only services control frames and
	// notices the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("feed_read_failed actor_id=%d error=%v", claims.UserID, err)
			}
			return
		}
	}
}
