package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"vidstats/internal/config"
	"vidstats/internal/domain"
	"vidstats/internal/port"
)

// ChannelStatsService computes per-channel statistics from the stored
// videos, likes and subscriptions.
type ChannelStatsService interface {
	GetChannelStats(ctx context.Context, channelID string) (*domain.ChannelStats, error)
}

type channelStatsService struct {
	repo    port.ChannelRepository
	timeout time.Duration
	log     logrus.FieldLogger
}

// NewChannelStatsService creates a new ChannelStatsService implementation.
func NewChannelStatsService(repo port.ChannelRepository, cfg *config.StatsConfig, log logrus.FieldLogger) ChannelStatsService {
	return &channelStatsService{repo: repo, timeout: cfg.QueryTimeout, log: log}
}

const opGetChannelStats = "GetChannelStats"

func (s *channelStatsService) GetChannelStats(ctx context.Context, channelID string) (*domain.ChannelStats, error) {
	id, err := domain.ParseID(channelID)
	if err != nil {
		return nil, domain.NewChannelError(opGetChannelStats, channelID, domain.ErrInvalidIdentifier, err)
	}

	ctx, cancel := withQueryTimeout(ctx, s.timeout)
	defer cancel()

	profile, err := s.repo.GetChannelProfile(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewChannelError(opGetChannelStats, channelID, domain.ErrChannelNotFound, err)
		}
		return nil, s.storeError(opGetChannelStats, channelID, err)
	}

	stats := domain.NewChannelStatistics(id)
	var subscriptions int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.CountSubscriptionsByChannel(gctx, id)
		if err != nil {
			return err
		}
		subscriptions = n
		return nil
	})
	g.Go(func() error {
		return s.aggregateVideos(gctx, id, &stats)
	})
	if err := g.Wait(); err != nil {
		return nil, s.storeError(opGetChannelStats, channelID, err)
	}
	stats.TotalSubscriptions = subscriptions

	return &domain.ChannelStats{ChannelProfile: *profile, ChannelStatistics: stats}, nil
}

// aggregateVideos walks channel -> videos -> likes. The like query is scoped
// to the ids of this channel's videos only.
func (s *channelStatsService) aggregateVideos(ctx context.Context, channelID primitive.ObjectID, stats *domain.ChannelStatistics) error {
	videos, err := s.repo.ListVideosByOwner(ctx, channelID)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		return nil
	}

	ids := make([]primitive.ObjectID, 0, len(videos))
	for i := range videos {
		ids = append(ids, videos[i].ID)
	}
	likes, err := s.repo.CountLikesByVideos(ctx, ids)
	if err != nil {
		return err
	}

	for i := range videos {
		stats.AddVideo(videos[i], likes[videos[i].ID])
	}
	return nil
}

func (s *channelStatsService) storeError(op, channelID string, err error) error {
	s.log.WithFields(logrus.Fields{
		"op":         op,
		"channel_id": channelID,
		"error":      err,
	}).Error("channel store query failed")
	return domain.NewChannelError(op, channelID, domain.ErrStoreUnavailable, err)
}

// withQueryTimeout bounds ctx by d. A non-positive d leaves ctx unbounded.
func withQueryTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
