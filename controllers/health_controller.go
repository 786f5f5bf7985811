package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthController reports liveness plus the state of the long-lived connections.
type HealthController struct {
	socket func() bool
	voice  func() bool
}

func NewHealthController(socketConnected, voiceConnected func() bool) *HealthController {
	return &HealthController{socket: socketConnected, voice: voiceConnected}
}

func (h *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"socket_connected": call(h.socket),
		"voice_connected":  call(h.voice),
	})
}

func call(f func() bool) bool {
	return f != nil && f()
}
