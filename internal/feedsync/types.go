package feedsync

import (
	"context"
	"io"

	"socialwall/internal/common"
)

// Post is a feed entry as the synchronizer sees it. It is a plain value
// type: the server's storage model never leaks into the client.
type Post struct {
	ID        string           `json:"id"`
	Content   string           `json:"content"`
	FileURL   string           `json:"file_url,omitempty"`
	MediaKind common.MediaKind `json:"media_kind,omitempty"`
	Likes     int64            `json:"likes_count"`
	ThumbsUp  int64            `json:"thumbs_up_count"`
	Timestamp int64            `json:"timestamp"` // millis, the feed ordering key
	Author    string           `json:"author,omitempty"`
}

// ReactionKind selects which counter a reaction targets.
type ReactionKind string

const (
	ReactionLike     ReactionKind = "like"
	ReactionThumbsUp ReactionKind = "thumbsUp"
)

// Store is the remote data store contract the synchronizer consumes.
// FetchPage returns posts ordered by timestamp descending, strictly older
// than before when before > 0. FetchNewer returns posts strictly newer
// than after.
type Store interface {
	FetchPage(ctx context.Context, before int64, limit int) ([]Post, error)
	FetchNewer(ctx context.Context, after int64) ([]Post, error)
	InsertPost(ctx context.Context, post Post) error
	IncrementReaction(ctx context.Context, postID string, kind ReactionKind) error
}

// MediaUpload describes a file attached to a new post.
type MediaUpload struct {
	Name    string
	MIME    string
	Size    int64
	Content io.Reader
}

// Uploader is the media upload service contract: accepts a file, returns
// a durable URL.
type Uploader interface {
	Upload(ctx context.Context, file MediaUpload) (string, error)
}

// Snapshot is a point-in-time copy of the feed state. Items are always
// sorted strictly descending by Timestamp with unique IDs.
type Snapshot struct {
	Items        []Post
	NewestSeen   int64 // high-water mark, forward polling cursor
	OldestLoaded int64 // low-water mark, backward paging cursor
	HasMoreOlder bool
	Loading      bool
	LastError    error
}

func clonePosts(items []Post) []Post {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Post, len(items))
	copy(dup, items)
	return dup
}
