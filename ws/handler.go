package ws

import (
	"net/http"
	"strings"

	"jobmarket_backend/internal/logger"
	"jobmarket_backend/internal/middleware"
	"jobmarket_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	manager  *Manager
	auth     *middleware.Authenticator
	upgrader websocket.Upgrader
}

// NewHandler accepts browser connections from allowedOrigins ("*" for any).
// Requests without an Origin header are always accepted.
func NewHandler(manager *Manager, auth *middleware.Authenticator, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(strings.TrimSpace(o), "/")] = true
	}

	return &Handler{
		manager: manager,
		auth:    auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// ServeWS authenticates with the bearer header or, for browsers that cannot
// set headers on a websocket, ?token=.
func (h *Handler) ServeWS(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		token = c.Query("token")
	}

	user, err := h.auth.Authenticate(c, token)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "WebSocket upgrade failed", "error", err.Error())
		return
	}

	client := newClient(h.manager, conn, user.ID)
	if !h.manager.Register(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
