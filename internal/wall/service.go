package wall

import (
	"context"
	"time"

	"github.com/google/uuid"

	"socialwall/internal/common"
	"socialwall/internal/dbmysql"
)

// Usecase is the wall's application surface consumed by the HTTP handler.
type Usecase interface {
	ListPosts(ctx context.Context, before int64, limit int) ([]dbmysql.Post, error)
	ListNewer(ctx context.Context, after int64) ([]dbmysql.Post, error)
	CreatePost(ctx context.Context, post *dbmysql.Post) error
	React(ctx context.Context, postID string, kind ReactionKind) error
	GetLeaderboard(ctx context.Context) (*Leaderboard, error)
}

type Service struct {
	repo     Repository
	pageSize int
}

func NewService(repo Repository, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Service{repo: repo, pageSize: pageSize}
}

func (s *Service) ListPosts(ctx context.Context, before int64, limit int) ([]dbmysql.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = s.pageSize
	}
	return s.repo.FetchPage(ctx, before, limit)
}

func (s *Service) ListNewer(ctx context.Context, after int64) ([]dbmysql.Post, error) {
	return s.repo.FetchNewer(ctx, after)
}

// CreatePost validates and persists a wall post. The client-generated id is
// stored verbatim; one is minted only when the caller sent none.
func (s *Service) CreatePost(ctx context.Context, post *dbmysql.Post) error {
	hasMedia := post.FileURL != nil && *post.FileURL != ""
	if err := common.ValidatePostContent(post.Content, hasMedia); err != nil {
		return err
	}

	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.Timestamp == 0 {
		post.Timestamp = time.Now().UnixMilli()
	}
	if post.Type == "" {
		post.Type = "update"
	}
	if post.Tag == "" {
		post.Tag = "Update"
	}
	if post.UserID == "" {
		post.UserID = common.AnonymousIdentity
	}
	post.CreatedAt = time.Now()

	if err := s.repo.InsertPost(ctx, post); err != nil {
		return err
	}

	// Best effort, a failed touch should not fail the post.
	if post.UserID != common.AnonymousIdentity {
		_ = s.repo.TouchLastPost(ctx, post.UserID)
	}

	return nil
}

func (s *Service) React(ctx context.Context, postID string, kind ReactionKind) error {
	if kind != ReactionLike && kind != ReactionThumbsUp {
		kind = ReactionLike
	}
	return s.repo.IncrementReaction(ctx, postID, kind)
}

func (s *Service) GetLeaderboard(ctx context.Context) (*Leaderboard, error) {
	return s.repo.Leaderboard(ctx)
}
