package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidstats/internal/config"
	"vidstats/internal/domain"
	"vidstats/internal/service"
	"vidstats/mocks"
)

var testStatsConfig = &config.StatsConfig{QueryTimeout: 2 * time.Second}

func newStatsService(repo *mocks.MockChannelRepo) (service.ChannelStatsService, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	return service.NewChannelStatsService(repo, testStatsConfig, log), hook
}

func TestChannelStatsService_GetChannelStats_SumsVideosViewsAndLikes(t *testing.T) {
	store := newMemStore()
	channel := store.addChannel("chai")
	v1 := store.addVideo(channel, 10)
	store.addLikes(v1, 2)
	store.addVideo(channel, 5)
	store.addSubscribers(channel, 3)

	log, _ := logtest.NewNullLogger()
	svc := service.NewChannelStatsService(store, testStatsConfig, log)

	stats, err := svc.GetChannelStats(context.Background(), channel.Hex())
	require.NoError(t, err)
	assert.Equal(t, channel, stats.ChannelStatistics.ChannelID)
	assert.Equal(t, channel, stats.ChannelProfile.ID)
	assert.Equal(t, "chai", stats.Username)
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(15), stats.TotalViews)
	assert.Equal(t, int64(2), stats.TotalLikes)
	assert.Equal(t, int64(3), stats.TotalSubscriptions)
}

func TestChannelStatsService_GetChannelStats_ZeroVideos(t *testing.T) {
	store := newMemStore()
	channel := store.addChannel("quiet")
	store.addSubscribers(channel, 4)

	log, _ := logtest.NewNullLogger()
	svc := service.NewChannelStatsService(store, testStatsConfig, log)

	stats, err := svc.GetChannelStats(context.Background(), channel.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalVideos)
	assert.Equal(t, int64(0), stats.TotalViews)
	assert.Equal(t, int64(0), stats.TotalLikes)
	assert.Equal(t, int64(4), stats.TotalSubscriptions)
}

func TestChannelStatsService_GetChannelStats_ZeroVideosSkipsLikeQuery(t *testing.T) {
	mockRepo := new(mocks.MockChannelRepo)
	svc, _ := newStatsService(mockRepo)

	channel := primitive.NewObjectID()
	mockRepo.On("GetChannelProfile", mock.Anything, channel).Return(&domain.ChannelProfile{ID: channel}, nil)
	mockRepo.On("ListVideosByOwner", mock.Anything, channel).Return([]domain.Video{}, nil)
	mockRepo.On("CountSubscriptionsByChannel", mock.Anything, channel).Return(int64(0), nil)

	stats, err := svc.GetChannelStats(context.Background(), channel.Hex())
	require.NoError(t, err)
	assert.Equal(t, domain.ChannelStatistics{ChannelID: channel}, stats.ChannelStatistics)
	mockRepo.AssertNotCalled(t, "CountLikesByVideos", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestChannelStatsService_GetChannelStats_LikesOnOtherChannelsDoNotCount(t *testing.T) {
	store := newMemStore()
	channel := store.addChannel("mine")
	other := store.addChannel("theirs")

	mine := store.addVideo(channel, 1)
	store.addLikes(mine, 1)
	theirs := store.addVideo(other, 100)
	store.addLikes(theirs, 50)
	store.addCommentLike()

	log, _ := logtest.NewNullLogger()
	svc := service.NewChannelStatsService(store, testStatsConfig, log)

	stats, err := svc.GetChannelStats(context.Background(), channel.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVideos)
	assert.Equal(t, int64(1), stats.TotalViews)
	assert.Equal(t, int64(1), stats.TotalLikes)

	stats, err = svc.GetChannelStats(context.Background(), other.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(100), stats.TotalViews)
	assert.Equal(t, int64(50), stats.TotalLikes)
}

func TestChannelStatsService_GetChannelStats_CountsLikeEventsNotLikers(t *testing.T) {
	mockRepo := new(mocks.MockChannelRepo)
	svc, _ := newStatsService(mockRepo)

	channel := primitive.NewObjectID()
	video := domain.Video{ID: primitive.NewObjectID(), Owner: channel, Views: 3}
	mockRepo.On("GetChannelProfile", mock.Anything, channel).Return(&domain.ChannelProfile{ID: channel}, nil)
	mockRepo.On("ListVideosByOwner", mock.Anything, channel).Return([]domain.Video{video}, nil)
	mockRepo.On("CountLikesByVideos", mock.Anything, []primitive.ObjectID{video.ID}).
		Return(map[primitive.ObjectID]int64{video.ID: 4}, nil)
	mockRepo.On("CountSubscriptionsByChannel", mock.Anything, channel).Return(int64(1), nil)

	stats, err := svc.GetChannelStats(context.Background(), channel.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalLikes)
	mockRepo.AssertExpectations(t)
}

func TestChannelStatsService_GetChannelStats_UnknownChannel(t *testing.T) {
	store := newMemStore()
	store.addChannel("someone")

	log, _ := logtest.NewNullLogger()
	svc := service.NewChannelStatsService(store, testStatsConfig, log)

	stats, err := svc.GetChannelStats(context.Background(), primitive.NewObjectID().Hex())
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, domain.ErrChannelNotFound)
	assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestChannelStatsService_GetChannelStats_InvalidIdentifier(t *testing.T) {
	for _, raw := range []string{"", "   ", "not-an-id", "12345", "zzzzzzzzzzzzzzzzzzzzzzzz", "000000000000000000000000"} {
		t.Run(fmt.Sprintf("%q", raw), func(t *testing.T) {
			mockRepo := new(mocks.MockChannelRepo)
			svc, _ := newStatsService(mockRepo)

			stats, err := svc.GetChannelStats(context.Background(), raw)
			assert.Nil(t, stats)
			assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
			mockRepo.AssertNotCalled(t, "GetChannelProfile", mock.Anything, mock.Anything)
			assert.Empty(t, mockRepo.Calls)
		})
	}
}

func TestChannelStatsService_GetChannelStats_ProfileStoreError(t *testing.T) {
	mockRepo := new(mocks.MockChannelRepo)
	svc, hook := newStatsService(mockRepo)

	channel := primitive.NewObjectID()
	cause := errors.New("connection refused")
	mockRepo.On("GetChannelProfile", mock.Anything, channel).Return(nil, cause)

	stats, err := svc.GetChannelStats(context.Background(), channel.Hex())
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)

	var chErr *domain.ChannelError
	require.ErrorAs(t, err, &chErr)
	assert.Equal(t, "GetChannelStats", chErr.Op)
	assert.Equal(t, channel.Hex(), chErr.ChannelID)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, channel.Hex(), hook.LastEntry().Data["channel_id"])
	mockRepo.AssertExpectations(t)
}

func TestChannelStatsService_GetChannelStats_VideoStoreError(t *testing.T) {
	mockRepo := new(mocks.MockChannelRepo)
	svc, _ := newStatsService(mockRepo)

	channel := primitive.NewObjectID()
	mockRepo.On("GetChannelProfile", mock.Anything, channel).Return(&domain.ChannelProfile{ID: channel}, nil)
	mockRepo.On("ListVideosByOwner", mock.Anything, channel).Return(nil, errors.New("cursor killed"))
	mockRepo.On("CountSubscriptionsByChannel", mock.Anything, channel).Return(int64(2), nil).Maybe()

	stats, err := svc.GetChannelStats(context.Background(), channel.Hex())
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestChannelStatsService_GetChannelStats_LikeStoreError(t *testing.T) {
	mockRepo := new(mocks.MockChannelRepo)
	svc, _ := newStatsService(mockRepo)

	channel := primitive.NewObjectID()
	video := domain.Video{ID: primitive.NewObjectID(), Owner: channel}
	mockRepo.On("GetChannelProfile", mock.Anything, channel).Return(&domain.ChannelProfile{ID: channel}, nil)
	mockRepo.On("ListVideosByOwner", mock.Anything, channel).Return([]domain.Video{video}, nil)
	mockRepo.On("CountLikesByVideos", mock.Anything, mock.Anything).Return(nil, errors.New("aggregate failed"))
	mockRepo.On("CountSubscriptionsByChannel", mock.Anything, channel).Return(int64(2), nil).Maybe()

	stats, err := svc.GetChannelStats(context.Background(), channel.Hex())
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestChannelStatsService_GetChannelStats_SubscriptionStoreError(t *testing.T) {
	mockRepo := new(mocks.MockChannelRepo)
	svc, _ := newStatsService(mockRepo)

	channel := primitive.NewObjectID()
	mockRepo.On("GetChannelProfile", mock.Anything, channel).Return(&domain.ChannelProfile{ID: channel}, nil)
	mockRepo.On("ListVideosByOwner", mock.Anything, channel).Return([]domain.Video{}, nil).Maybe()
	mockRepo.On("CountSubscriptionsByChannel", mock.Anything, channel).Return(int64(0), errors.New("count failed"))

	stats, err := svc.GetChannelStats(context.Background(), channel.Hex())
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestChannelStatsService_GetChannelStats_Timeout(t *testing.T) {
	mockRepo := new(mocks.MockChannelRepo)
	log, _ := logtest.NewNullLogger()
	svc := service.NewChannelStatsService(mockRepo, &config.StatsConfig{QueryTimeout: 20 * time.Millisecond}, log)

	channel := primitive.NewObjectID()
	mockRepo.On("GetChannelProfile", mock.Anything, channel).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	start := time.Now()
	stats, err := svc.GetChannelStats(context.Background(), channel.Hex())
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestChannelStatsService_GetChannelStats_ConcurrentChannelsAreIndependent(t *testing.T) {
	store := newMemStore()
	type want struct {
		videos, views, likes, subs int64
	}
	channels := map[primitive.ObjectID]want{}
	for i := 1; i <= 5; i++ {
		ch := store.addChannel(fmt.Sprintf("channel-%d", i))
		w := want{subs: int64(i)}
		for j := 0; j < i; j++ {
			v := store.addVideo(ch, int64(10*i))
			store.addLikes(v, i)
			w.videos++
			w.views += int64(10 * i)
			w.likes += int64(i)
		}
		store.addSubscribers(ch, i)
		channels[ch] = w
	}

	log, _ := logtest.NewNullLogger()
	svc := service.NewChannelStatsService(store, testStatsConfig, log)

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for round := 0; round < 20; round++ {
		for ch, w := range channels {
			wg.Add(1)
			go func(ch primitive.ObjectID, w want) {
				defer wg.Done()
				stats, err := svc.GetChannelStats(context.Background(), ch.Hex())
				if err != nil {
					errs <- err
					return
				}
				got := want{stats.TotalVideos, stats.TotalViews, stats.TotalLikes, stats.TotalSubscriptions}
				if got != w || stats.ChannelStatistics.ChannelID != ch {
					errs <- fmt.Errorf("channel %s: got %+v, want %+v", ch.Hex(), got, w)
				}
			}(ch, w)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
