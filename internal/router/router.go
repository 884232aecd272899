package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vidstats/internal/handler"
	"vidstats/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	log logrus.FieldLogger,
	allowedOrigins []string,
	channelH *handler.ChannelHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Channel dashboard (read-only)
	channels := v1.Group("/channels/:channelId")
	channels.GET("/stats", channelH.GetStats)
	channels.GET("/videos", channelH.ListVideos)

	return r
}
