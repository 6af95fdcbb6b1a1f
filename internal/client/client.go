// Package client provides the HTTP implementation of the synchronizer's
// store and uploader contracts against the wall service and media server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"socialwall/internal/common"
	"socialwall/internal/feedsync"
)

// Ensure WallClient satisfies the synchronizer contracts at compile time.
var (
	_ feedsync.Store    = (*WallClient)(nil)
	_ feedsync.Uploader = (*WallClient)(nil)
)

// WallClient talks to the wall HTTP API and the media server.
type WallClient struct {
	wallBase  string
	mediaBase string
	http      *http.Client
	token     string
}

func New(wallBase, mediaBase string) *WallClient {
	return &WallClient{
		wallBase:  strings.TrimRight(wallBase, "/"),
		mediaBase: strings.TrimRight(mediaBase, "/"),
		http:      &http.Client{},
	}
}

// SetToken attaches a session token to subsequent requests.
func (c *WallClient) SetToken(token string) {
	c.token = token
}

// wirePost is the wall API's JSON shape for a post.
type wirePost struct {
	ID            string  `json:"id"`
	Content       string  `json:"content"`
	FileURL       *string `json:"file_url,omitempty"`
	MediaType     *string `json:"media_type,omitempty"`
	Timestamp     int64   `json:"timestamp"`
	LikesCount    int64   `json:"likes_count"`
	ThumbsUpCount int64   `json:"thumbs_up_count"`
	UserID        string  `json:"user_id"`
}

func (p wirePost) toPost() feedsync.Post {
	post := feedsync.Post{
		ID:        p.ID,
		Content:   p.Content,
		Likes:     p.LikesCount,
		ThumbsUp:  p.ThumbsUpCount,
		Timestamp: p.Timestamp,
		Author:    p.UserID,
	}
	if p.FileURL != nil {
		post.FileURL = *p.FileURL
	}
	if p.MediaType != nil {
		post.MediaKind = common.MediaKind(*p.MediaType)
	}
	return post
}

func (c *WallClient) FetchPage(ctx context.Context, before int64, limit int) ([]feedsync.Post, error) {
	path := "/api/posts?limit=" + strconv.Itoa(limit)
	if before > 0 {
		path += "&before=" + strconv.FormatInt(before, 10)
	}
	var payload []wirePost
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}
	return toPosts(payload), nil
}

func (c *WallClient) FetchNewer(ctx context.Context, after int64) ([]feedsync.Post, error) {
	path := "/api/posts/newer?after=" + strconv.FormatInt(after, 10)
	var payload []wirePost
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}
	return toPosts(payload), nil
}

func (c *WallClient) InsertPost(ctx context.Context, post feedsync.Post) error {
	body := wirePost{
		ID:        post.ID,
		Content:   post.Content,
		Timestamp: post.Timestamp,
	}
	if post.FileURL != "" {
		fileURL := post.FileURL
		mediaType := post.MediaKind.String()
		body.FileURL = &fileURL
		body.MediaType = &mediaType
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.wallBase+"/api/posts", bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doExpect(req, http.StatusCreated)
}

func (c *WallClient) IncrementReaction(ctx context.Context, postID string, kind feedsync.ReactionKind) error {
	path := "/like"
	if kind == feedsync.ReactionThumbsUp {
		path = "/thumb"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.wallBase+"/api/posts/"+postID+path, nil)
	if err != nil {
		return err
	}
	return c.doExpect(req, http.StatusOK)
}

// uploadResponse is the media server's reply for a stored file.
type uploadResponse struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Kind string `json:"kind"`
	Size int64  `json:"size"`
}

// Upload sends the file to the media server and returns its durable URL.
func (c *WallClient) Upload(ctx context.Context, file feedsync.MediaUpload) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", file.Name)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.mediaBase+"/media", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if file.MIME != "" {
		req.Header.Set("X-Media-Mime", file.MIME)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusRequestEntityTooLarge {
		return "", common.ErrFileTooLarge
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("upload failed: status %d", resp.StatusCode)
	}

	var payload uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return payload.URL, nil
}

// GetLeaderboard fetches the leaderboard for the presentation widget.
func (c *WallClient) GetLeaderboard(ctx context.Context) (map[string]interface{}, error) {
	var payload map[string]interface{}
	if err := c.get(ctx, "/api/leaderboard", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *WallClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.wallBase+path, nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *WallClient) doExpect(req *http.Request, want int) error {
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Error != "" {
			return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, payload.Error)
		}
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	return nil
}

func (c *WallClient) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func toPosts(payload []wirePost) []feedsync.Post {
	posts := make([]feedsync.Post, 0, len(payload))
	for _, p := range payload {
		posts = append(posts, p.toPost())
	}
	return posts
}
