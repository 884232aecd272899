package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// readIndexes are the indexes the channel read path filters on.
var readIndexes = []struct {
	coll  string
	model mongo.IndexModel
}{
	{CollVideos, mongo.IndexModel{Keys: bson.D{{Key: "owner", Value: 1}}, Options: options.Index().SetName("idx_videos_owner")}},
	{CollLikes, mongo.IndexModel{Keys: bson.D{{Key: "video", Value: 1}}, Options: options.Index().SetName("idx_likes_video")}},
	{CollSubscriptions, mongo.IndexModel{Keys: bson.D{{Key: "channel", Value: 1}}, Options: options.Index().SetName("idx_subscriptions_channel")}},
}

// EnsureIndexes creates the read path indexes. Existing indexes with the
// same keys and name are left untouched by the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	var created []string
	for _, idx := range readIndexes {
		name, err := db.Collection(idx.coll).Indexes().CreateOne(ctx, idx.model)
		if err != nil {
			return created, fmt.Errorf("creating index on %s: %w", idx.coll, err)
		}
		created = append(created, name)
	}
	return created, nil
}
