package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"vidstats/internal/config"
	"vidstats/internal/domain"
	"vidstats/internal/port"
)

// ChannelVideoService lists the videos owned by a channel.
type ChannelVideoService interface {
	ListChannelVideos(ctx context.Context, channelID string) ([]domain.Video, error)
}

type channelVideoService struct {
	repo    port.ChannelRepository
	timeout time.Duration
	log     logrus.FieldLogger
}

// NewChannelVideoService creates a new ChannelVideoService implementation.
func NewChannelVideoService(repo port.ChannelRepository, cfg *config.StatsConfig, log logrus.FieldLogger) ChannelVideoService {
	return &channelVideoService{repo: repo, timeout: cfg.QueryTimeout, log: log}
}

const opListChannelVideos = "ListChannelVideos"

// ListChannelVideos does not check that the channel exists; an unknown
// channel yields an empty list.
func (s *channelVideoService) ListChannelVideos(ctx context.Context, channelID string) ([]domain.Video, error) {
	id, err := domain.ParseID(channelID)
	if err != nil {
		return nil, domain.NewChannelError(opListChannelVideos, channelID, domain.ErrInvalidIdentifier, err)
	}

	ctx, cancel := withQueryTimeout(ctx, s.timeout)
	defer cancel()

	videos, err := s.repo.ListVideosByOwner(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"op":         opListChannelVideos,
			"channel_id": channelID,
			"error":      err,
		}).Error("channel store query failed")
		return nil, domain.NewChannelError(opListChannelVideos, channelID, domain.ErrStoreUnavailable, err)
	}
	if videos == nil {
		videos = []domain.Video{}
	}
	return videos, nil
}
