package port

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidstats/internal/domain"
)

// ChannelRepository is the read-only query/aggregation interface over the
// users, videos, likes and subscriptions collections.
type ChannelRepository interface {
	// GetChannelProfile returns domain.ErrNotFound when no user has the id.
	GetChannelProfile(ctx context.Context, channelID primitive.ObjectID) (*domain.ChannelProfile, error)
	ListVideosByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Video, error)
	// CountLikesByVideos counts likes per video in a single round trip.
	// Videos without likes may be absent from the result.
	CountLikesByVideos(ctx context.Context, videoIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error)
	CountSubscriptionsByChannel(ctx context.Context, channelID primitive.ObjectID) (int64, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ChannelStore is a ChannelRepository that can also be health checked.
type ChannelStore interface {
	ChannelRepository
	Pinger
}
