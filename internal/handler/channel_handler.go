package handler

import (
	"github.com/gin-gonic/gin"

	"vidstats/internal/service"
)

// ChannelHandler handles channel dashboard endpoints.
type ChannelHandler struct {
	statsService service.ChannelStatsService
	videoService service.ChannelVideoService
	responder    *ErrorResponder
}

// NewChannelHandler creates a new ChannelHandler.
func NewChannelHandler(
	statsService service.ChannelStatsService,
	videoService service.ChannelVideoService,
	responder *ErrorResponder,
) *ChannelHandler {
	return &ChannelHandler{statsService: statsService, videoService: videoService, responder: responder}
}

// GetStats handles GET /api/v1/channels/:channelId/stats
// @Summary Get channel statistics
// @Description Get the channel profile with total videos, views, likes and subscribers.
// @Tags channels
// @Produce json
// @Param channelId path string true "Channel ID"
// @Success 200 {object} APIResponse{data=domain.ChannelStats} "Channel statistics"
// @Failure 400 {object} APIResponse "Invalid channel id"
// @Failure 404 {object} APIResponse "Channel not found"
// @Failure 503 {object} APIResponse "Store unavailable"
// @Router /channels/{channelId}/stats [get]
func (h *ChannelHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetChannelStats(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		h.responder.HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

// ListVideos handles GET /api/v1/channels/:channelId/videos
// @Summary List channel videos
// @Description List every video owned by the channel. An unknown channel yields an empty list.
// @Tags channels
// @Produce json
// @Param channelId path string true "Channel ID"
// @Success 200 {object} APIResponse{data=[]domain.Video} "Channel videos"
// @Failure 400 {object} APIResponse "Invalid channel id"
// @Failure 503 {object} APIResponse "Store unavailable"
// @Router /channels/{channelId}/videos [get]
func (h *ChannelHandler) ListVideos(c *gin.Context) {
	videos, err := h.videoService.ListChannelVideos(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		h.responder.HandleError(c, err)
		return
	}

	RespondOK(c, videos)
}
