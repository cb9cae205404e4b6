package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StreamHandler serves the websocket event stream.
type StreamHandler struct {
	Hub http.Handler
}

func (h *StreamHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/stream", h.stream)
}

// @Summary Websocket stream of odd, bet and surface events
// @Tags stream
// @Success 101
// @Router /api/v1/stream [get]
func (h *StreamHandler) stream(c *gin.Context) {
	if h.Hub == nil {
		Error(c, http.StatusServiceUnavailable, "stream disabled", nil)
		return
	}
	h.Hub.ServeHTTP(c.Writer, c.Request)
}
