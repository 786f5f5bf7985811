// controllers/webhook_controller.go
package controllers

import (
	"context"
	"crypto/subtle"
	"io"
	"log/slog"
	"net/http"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/donation"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody caps what we read from the platform.
const maxWebhookBody = 1 << 20

// DonationHandler is implemented by *donation.Pipeline.
type DonationHandler interface {
	HandleRaw(ctx context.Context, body []byte, isTest bool) ([]donation.Result, error)
}

type WebhookController struct {
	pipeline  DonationHandler
	streamKey string
}

func NewWebhookController(pipeline DonationHandler, streamKey string) *WebhookController {
	return &WebhookController{pipeline: pipeline, streamKey: streamKey}
}

// HandleSaweriaWebhook feeds a webhook delivery into the same pipeline as the
// socket. Once authenticated the platform always gets 200.
func (w *WebhookController) HandleSaweriaWebhook(c *gin.Context) {
	key := c.GetHeader("X-Stream-Key")
	if key == "" {
		key = c.Query("key")
	}
	if !w.validKey(key) {
		slog.Warn("webhook rejected: invalid stream key", "ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid stream key"})
		return
	}

	// Baca body request
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		slog.Warn("Error reading webhook body", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}
	slog.Debug("Saweria webhook received", "body", string(body))

	results, err := w.pipeline.HandleRaw(c.Request.Context(), body, false)
	if err != nil {
		slog.Warn("Error parsing webhook JSON", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	processed, duplicates := 0, 0
	for _, r := range results {
		if r.Duplicate {
			duplicates++
			continue
		}
		processed++
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Notification processed",
		"processed":  processed,
		"duplicates": duplicates,
	})
}

func (w *WebhookController) validKey(key string) bool {
	if w.streamKey == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(w.streamKey)) == 1
}
