package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChannelProfile is the public part of a User acting as a content owner.
type ChannelProfile struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Username   string             `bson:"username" json:"username"`
	FullName   string             `bson:"fullname" json:"fullname"`
	Email      string             `bson:"email" json:"email"`
	Avatar     string             `bson:"avatar" json:"avatar"`
	CoverImage string             `bson:"coverImage" json:"coverImage"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// Video is a published video owned by exactly one channel.
type Video struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Like records a single like event. Video is nil when the like targets a
// comment or a tweet instead of a video.
type Like struct {
	ID        primitive.ObjectID  `bson:"_id" json:"_id"`
	Video     *primitive.ObjectID `bson:"video,omitempty" json:"video,omitempty"`
	LikedBy   primitive.ObjectID  `bson:"likedBy" json:"likedBy"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// Subscription is a subscriber -> channel edge.
type Subscription struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Subscriber primitive.ObjectID `bson:"subscriber" json:"subscriber"`
	Channel    primitive.ObjectID `bson:"channel" json:"channel"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// ChannelStatistics holds the counters derived for a channel at read time.
type ChannelStatistics struct {
	ChannelID          primitive.ObjectID `json:"channelId"`
	TotalVideos        int64              `json:"totalVideos"`
	TotalViews         int64              `json:"totalViews"`
	TotalLikes         int64              `json:"totalLikes"`
	TotalSubscriptions int64              `json:"totalSubscriptions"`
}

// ChannelStats combines a channel profile with its statistics.
type ChannelStats struct {
	ChannelProfile
	ChannelStatistics
}

// NewChannelStatistics returns statistics with every counter set to zero.
func NewChannelStatistics(channelID primitive.ObjectID) ChannelStatistics {
	return ChannelStatistics{ChannelID: channelID}
}

// AddVideo folds one owned video and its like count into the counters.
func (s *ChannelStatistics) AddVideo(v Video, likes int64) {
	s.TotalVideos++
	if v.Views > 0 {
		s.TotalViews += v.Views
	}
	if likes > 0 {
		s.TotalLikes += likes
	}
}
