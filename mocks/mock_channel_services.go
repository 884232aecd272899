package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vidstats/internal/domain"
)

// MockChannelStatsService is a mock implementation of service.ChannelStatsService.
type MockChannelStatsService struct {
	mock.Mock
}

func (m *MockChannelStatsService) GetChannelStats(ctx context.Context, channelID string) (*domain.ChannelStats, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChannelStats), args.Error(1)
}

// MockChannelVideoService is a mock implementation of service.ChannelVideoService.
type MockChannelVideoService struct {
	mock.Mock
}

func (m *MockChannelVideoService) ListChannelVideos(ctx context.Context, channelID string) ([]domain.Video, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Video), args.Error(1)
}
