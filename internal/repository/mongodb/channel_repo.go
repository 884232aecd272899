package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidstats/internal/domain"
	"vidstats/internal/port"
)

type channelRepo struct {
	db *mongo.Database
}

// NewChannelRepo creates a new MongoDB-backed ChannelStore.
func NewChannelRepo(db *mongo.Database) port.ChannelStore {
	return &channelRepo{db: db}
}

// profileProjection keeps credentials out of the decoded profile.
var profileProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "username", Value: 1},
	{Key: "fullname", Value: 1},
	{Key: "email", Value: 1},
	{Key: "avatar", Value: 1},
	{Key: "coverImage", Value: 1},
	{Key: "createdAt", Value: 1},
}

func (r *channelRepo) GetChannelProfile(ctx context.Context, channelID primitive.ObjectID) (*domain.ChannelProfile, error) {
	var profile domain.ChannelProfile
	err := r.db.Collection(CollUsers).
		FindOne(ctx, bson.M{"_id": channelID}, options.FindOne().SetProjection(profileProjection)).
		Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("channelRepo.GetChannelProfile: %w", err)
	}
	return &profile, nil
}

func (r *channelRepo) ListVideosByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Video, error) {
	cursor, err := r.db.Collection(CollVideos).Find(ctx, bson.M{"owner": ownerID})
	if err != nil {
		return nil, fmt.Errorf("channelRepo.ListVideosByOwner: %w", err)
	}
	defer cursor.Close(ctx)

	videos := []domain.Video{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, fmt.Errorf("channelRepo.ListVideosByOwner decode: %w", err)
	}
	return videos, nil
}

func (r *channelRepo) CountLikesByVideos(ctx context.Context, videoIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	counts := make(map[primitive.ObjectID]int64, len(videoIDs))
	if len(videoIDs) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"video": bson.M{"$in": videoIDs}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$video",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.db.Collection(CollLikes).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("channelRepo.CountLikesByVideos: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc struct {
			ID    primitive.ObjectID `bson:"_id"`
			Count int64              `bson:"count"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("channelRepo.CountLikesByVideos decode: %w", err)
		}
		counts[doc.ID] = doc.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("channelRepo.CountLikesByVideos cursor: %w", err)
	}
	return counts, nil
}

func (r *channelRepo) CountSubscriptionsByChannel(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	n, err := r.db.Collection(CollSubscriptions).CountDocuments(ctx, bson.M{"channel": channelID})
	if err != nil {
		return 0, fmt.Errorf("channelRepo.CountSubscriptionsByChannel: %w", err)
	}
	return n, nil
}

func (r *channelRepo) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}
