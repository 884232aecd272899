package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidstats/internal/domain"
)

// MockChannelRepo is a mock implementation of port.ChannelStore.
type MockChannelRepo struct {
	mock.Mock
}

func (m *MockChannelRepo) GetChannelProfile(ctx context.Context, channelID primitive.ObjectID) (*domain.ChannelProfile, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChannelProfile), args.Error(1)
}

func (m *MockChannelRepo) ListVideosByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Video, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Video), args.Error(1)
}

func (m *MockChannelRepo) CountLikesByVideos(ctx context.Context, videoIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	args := m.Called(ctx, videoIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[primitive.ObjectID]int64), args.Error(1)
}

func (m *MockChannelRepo) CountSubscriptionsByChannel(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChannelRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
