package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/navalhaprime/barbershop-api/internal/store"
)

// StreamHandler pushes collection change events to the dashboard over
// SSE so open tabs refetch instead of polling.
type StreamHandler struct {
	snaps *store.Store
}

func NewStreamHandler(snaps *store.Store) *StreamHandler {
	return &StreamHandler{snaps: snaps}
}

func (h *StreamHandler) Changes(c *gin.Context) {
	events := h.snaps.SubscribeChanges(c.Request.Context())
	if events == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "stream_disabled",
			"message": "Atualizações em tempo real não estão configuradas.",
		})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	// Heartbeat keeps proxies from closing idle streams.
	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false

		case ev, ok := <-events:
			if !ok {
				return false
			}
			b, err := json.Marshal(ev)
			if err != nil {
				return true
			}
			c.SSEvent("change", string(b))
			return true

		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}
