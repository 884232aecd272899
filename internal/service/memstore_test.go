package service_test

import (
	"context"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidstats/internal/domain"
)

// memStore is an in-memory ChannelRepository that applies the same
// filters the real stores do. It is read-only once built.
type memStore struct {
	users         map[primitive.ObjectID]domain.ChannelProfile
	videos        []domain.Video
	likes         []domain.Like
	subscriptions []domain.Subscription
	calls         atomic.Int64
}

func newMemStore() *memStore {
	return &memStore{users: map[primitive.ObjectID]domain.ChannelProfile{}}
}

func (s *memStore) addChannel(username string) primitive.ObjectID {
	id := primitive.NewObjectID()
	s.users[id] = domain.ChannelProfile{ID: id, Username: username, FullName: username}
	return id
}

func (s *memStore) addVideo(owner primitive.ObjectID, views int64) primitive.ObjectID {
	id := primitive.NewObjectID()
	s.videos = append(s.videos, domain.Video{ID: id, Owner: owner, Views: views, Title: "video " + id.Hex()})
	return id
}

func (s *memStore) addLikes(video primitive.ObjectID, n int) {
	for i := 0; i < n; i++ {
		v := video
		s.likes = append(s.likes, domain.Like{ID: primitive.NewObjectID(), Video: &v, LikedBy: primitive.NewObjectID()})
	}
}

// addCommentLike records a like that targets something other than a video.
func (s *memStore) addCommentLike() {
	s.likes = append(s.likes, domain.Like{ID: primitive.NewObjectID(), LikedBy: primitive.NewObjectID()})
}

func (s *memStore) addSubscribers(channel primitive.ObjectID, n int) {
	for i := 0; i < n; i++ {
		s.subscriptions = append(s.subscriptions, domain.Subscription{
			ID:         primitive.NewObjectID(),
			Subscriber: primitive.NewObjectID(),
			Channel:    channel,
		})
	}
}

func (s *memStore) GetChannelProfile(_ context.Context, channelID primitive.ObjectID) (*domain.ChannelProfile, error) {
	s.calls.Add(1)
	p, ok := s.users[channelID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *memStore) ListVideosByOwner(_ context.Context, ownerID primitive.ObjectID) ([]domain.Video, error) {
	s.calls.Add(1)
	out := []domain.Video{}
	for _, v := range s.videos {
		if v.Owner == ownerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *memStore) CountLikesByVideos(_ context.Context, videoIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	s.calls.Add(1)
	wanted := make(map[primitive.ObjectID]bool, len(videoIDs))
	for _, id := range videoIDs {
		wanted[id] = true
	}
	counts := map[primitive.ObjectID]int64{}
	for _, l := range s.likes {
		if l.Video != nil && wanted[*l.Video] {
			counts[*l.Video]++
		}
	}
	return counts, nil
}

func (s *memStore) CountSubscriptionsByChannel(_ context.Context, channelID primitive.ObjectID) (int64, error) {
	s.calls.Add(1)
	var n int64
	for _, sub := range s.subscriptions {
		if sub.Channel == channelID {
			n++
		}
	}
	return n, nil
}
