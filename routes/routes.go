package routes

import (
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/controllers"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/websocket"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Webhook *controllers.WebhookController
	Stats   *controllers.StatsController
	Health  *controllers.HealthController
	Overlay *websocket.Manager
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	r.GET("/healthz", h.Health.Health)
	r.POST("/webhook/saweria", h.Webhook.HandleSaweriaWebhook)
	r.GET("/ws/overlay", h.Overlay.HandleWebSocket)

	api := r.Group("/api")
	{
		api.GET("/leaderboard", h.Stats.GetLeaderboard)
		api.GET("/recent", h.Stats.GetRecent)
		api.GET("/stats", h.Stats.GetStats)
		api.GET("/goal", h.Stats.GetGoal)
	}
}
