package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidstats/internal/domain"
	"vidstats/internal/port"
)

// Identifiers are stored as the 24 character hex form of the document ids
// so both stores agree on channel ids.

type channelRow struct {
	ID         string    `db:"id"`
	Username   string    `db:"username"`
	FullName   string    `db:"full_name"`
	Email      string    `db:"email"`
	Avatar     string    `db:"avatar"`
	CoverImage string    `db:"cover_image"`
	CreatedAt  time.Time `db:"created_at"`
}

type videoRow struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	VideoFile   string    `db:"video_file"`
	Thumbnail   string    `db:"thumbnail"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Duration    float64   `db:"duration"`
	Views       int64     `db:"views"`
	IsPublished bool      `db:"is_published"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type likeCountRow struct {
	VideoID string `db:"video_id"`
	Count   int64  `db:"count"`
}

type channelRepo struct {
	db *sqlx.DB
}

// NewChannelRepo creates a new PostgreSQL-backed ChannelStore.
func NewChannelRepo(db *sqlx.DB) port.ChannelStore {
	return &channelRepo{db: db}
}

func (r *channelRepo) GetChannelProfile(ctx context.Context, channelID primitive.ObjectID) (*domain.ChannelProfile, error) {
	var row channelRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, username, full_name, email, avatar, cover_image, created_at
		 FROM users WHERE id = $1`, channelID.Hex())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("channelRepo.GetChannelProfile: %w", err)
	}

	id, err := primitive.ObjectIDFromHex(row.ID)
	if err != nil {
		return nil, fmt.Errorf("channelRepo.GetChannelProfile id %q: %w", row.ID, err)
	}
	return &domain.ChannelProfile{
		ID:         id,
		Username:   row.Username,
		FullName:   row.FullName,
		Email:      row.Email,
		Avatar:     row.Avatar,
		CoverImage: row.CoverImage,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func (r *channelRepo) ListVideosByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Video, error) {
	var rows []videoRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, owner_id, video_file, thumbnail, title, description, duration,
		        views, is_published, created_at, updated_at
		 FROM videos WHERE owner_id = $1 ORDER BY created_at, id`, ownerID.Hex())
	if err != nil {
		return nil, fmt.Errorf("channelRepo.ListVideosByOwner: %w", err)
	}

	videos := make([]domain.Video, 0, len(rows))
	for i := range rows {
		v, err := rows[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("channelRepo.ListVideosByOwner: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, nil
}

func (r *channelRepo) CountLikesByVideos(ctx context.Context, videoIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	counts := make(map[primitive.ObjectID]int64, len(videoIDs))
	if len(videoIDs) == 0 {
		return counts, nil
	}

	hexIDs := make([]string, 0, len(videoIDs))
	for _, id := range videoIDs {
		hexIDs = append(hexIDs, id.Hex())
	}
	query, args, err := sqlx.In(
		`SELECT video_id, COUNT(*) AS count FROM likes
		 WHERE video_id IN (?) GROUP BY video_id`, hexIDs)
	if err != nil {
		return nil, fmt.Errorf("channelRepo.CountLikesByVideos build: %w", err)
	}

	var rows []likeCountRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("channelRepo.CountLikesByVideos: %w", err)
	}
	for _, row := range rows {
		id, err := primitive.ObjectIDFromHex(row.VideoID)
		if err != nil {
			return nil, fmt.Errorf("channelRepo.CountLikesByVideos id %q: %w", row.VideoID, err)
		}
		counts[id] = row.Count
	}
	return counts, nil
}

func (r *channelRepo) CountSubscriptionsByChannel(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1", channelID.Hex()); err != nil {
		return 0, fmt.Errorf("channelRepo.CountSubscriptionsByChannel: %w", err)
	}
	return n, nil
}

func (r *channelRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (row *videoRow) toDomain() (domain.Video, error) {
	id, err := primitive.ObjectIDFromHex(row.ID)
	if err != nil {
		return domain.Video{}, fmt.Errorf("video id %q: %w", row.ID, err)
	}
	owner, err := primitive.ObjectIDFromHex(row.OwnerID)
	if err != nil {
		return domain.Video{}, fmt.Errorf("video %s owner %q: %w", row.ID, row.OwnerID, err)
	}
	return domain.Video{
		ID:          id,
		Owner:       owner,
		VideoFile:   row.VideoFile,
		Thumbnail:   row.Thumbnail,
		Title:       row.Title,
		Description: row.Description,
		Duration:    row.Duration,
		Views:       row.Views,
		IsPublished: row.IsPublished,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}
