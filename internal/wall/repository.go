package wall

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"socialwall/internal/dbmysql"
)

// ReactionKind is the reaction counter a request targets.
type ReactionKind string

const (
	ReactionLike     ReactionKind = "like"
	ReactionThumbsUp ReactionKind = "thumbsUp"
)

// LeaderboardEntry is one row of the user or team leaderboard.
type LeaderboardEntry struct {
	Name   string `json:"name"`
	Points int64  `json:"points"`
}

// Leaderboard holds the top users and teams by accumulated reactions.
type Leaderboard struct {
	Users []LeaderboardEntry `json:"users"`
	Teams []LeaderboardEntry `json:"teams"`
}

// Repository is the persistence contract the wall service depends on.
type Repository interface {
	FetchPage(ctx context.Context, before int64, limit int) ([]dbmysql.Post, error)
	FetchNewer(ctx context.Context, after int64) ([]dbmysql.Post, error)
	InsertPost(ctx context.Context, post *dbmysql.Post) error
	IncrementReaction(ctx context.Context, postID string, kind ReactionKind) error
	Leaderboard(ctx context.Context) (*Leaderboard, error)
	TouchLastPost(ctx context.Context, userID string) error
}

type wallRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &wallRepository{db: db}
}

// FetchPage returns posts ordered by timestamp descending. When before > 0
// only posts strictly older than the cursor are returned.
func (r *wallRepository) FetchPage(ctx context.Context, before int64, limit int) ([]dbmysql.Post, error) {
	var posts []dbmysql.Post
	q := r.db.WithContext(ctx).Order("timestamp DESC").Limit(limit)
	if before > 0 {
		q = q.Where("timestamp < ?", before)
	}
	err := q.Find(&posts).Error
	return posts, err
}

// FetchNewer returns posts strictly newer than the cursor, newest first.
func (r *wallRepository) FetchNewer(ctx context.Context, after int64) ([]dbmysql.Post, error) {
	var posts []dbmysql.Post
	err := r.db.WithContext(ctx).
		Where("timestamp > ?", after).
		Order("timestamp DESC").
		Find(&posts).Error
	return posts, err
}

func (r *wallRepository) InsertPost(ctx context.Context, post *dbmysql.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// IncrementReaction bumps the matching counter with a single UPDATE so
// concurrent reactions from other writers are never lost.
func (r *wallRepository) IncrementReaction(ctx context.Context, postID string, kind ReactionKind) error {
	column := "likes_count"
	if kind == ReactionThumbsUp {
		column = "thumbs_up_count"
	}

	res := r.db.WithContext(ctx).Model(&dbmysql.Post{}).
		Where("id = ?", postID).
		Update(column, gorm.Expr(fmt.Sprintf("COALESCE(%s, 0) + 1", column)))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %s not found", postID)
	}
	return nil
}

// Leaderboard aggregates reaction totals: top 10 users and top 5 teams.
func (r *wallRepository) Leaderboard(ctx context.Context) (*Leaderboard, error) {
	var users []LeaderboardEntry
	err := r.db.WithContext(ctx).
		Table("posts").
		Select("users.name AS name, SUM(posts.likes_count + posts.thumbs_up_count) AS points").
		Joins("JOIN users ON posts.user_id = users.id").
		Group("users.id").
		Order("points DESC").
		Limit(10).
		Scan(&users).Error
	if err != nil {
		return nil, err
	}

	var teams []LeaderboardEntry
	err = r.db.WithContext(ctx).
		Table("posts").
		Select("users.team AS name, SUM(posts.likes_count + posts.thumbs_up_count) AS points").
		Joins("JOIN users ON posts.user_id = users.id").
		Where("users.team <> ''").
		Group("users.team").
		Order("points DESC").
		Limit(5).
		Scan(&teams).Error
	if err != nil {
		return nil, err
	}

	return &Leaderboard{Users: users, Teams: teams}, nil
}

func (r *wallRepository) TouchLastPost(ctx context.Context, userID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&dbmysql.User{}).
		Where("id = ?", userID).
		Update("last_post_time", &now).Error
}
