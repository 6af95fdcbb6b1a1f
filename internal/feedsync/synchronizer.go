package feedsync

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"socialwall/internal/common"
)

const (
	defaultPageSize           = 10
	defaultPollInterval       = 5 * time.Second
	defaultInitialLoadTimeout = 5 * time.Second
	defaultMaxImageBytes      = 4 << 20
	defaultMaxVideoBytes      = 16 << 20
)

// Options tune a Synchronizer. Zero values fall back to defaults.
type Options struct {
	PageSize           int
	PollInterval       time.Duration
	InitialLoadTimeout time.Duration
	MaxImageBytes      int64
	MaxVideoBytes      int64

	// Author is the caller identity stamped on optimistic posts. The
	// synchronizer treats it as an opaque string.
	Author string

	// Now is overridable for tests.
	Now func() time.Time
}

func (o *Options) fillDefaults() {
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	if o.PollInterval <= 0 {
		o.PollInterval = defaultPollInterval
	}
	if o.InitialLoadTimeout <= 0 {
		o.InitialLoadTimeout = defaultInitialLoadTimeout
	}
	if o.MaxImageBytes <= 0 {
		o.MaxImageBytes = defaultMaxImageBytes
	}
	if o.MaxVideoBytes <= 0 {
		o.MaxVideoBytes = defaultMaxVideoBytes
	}
	if o.Author == "" {
		o.Author = common.AnonymousIdentity
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Synchronizer owns a locally consistent, ordered view of the remote post
// collection. It drives the initial load, backward pagination, forward
// polling and optimistic mutation with rollback. The remote store stays
// authoritative; this is a session cache.
type Synchronizer struct {
	store    Store
	uploader Uploader
	opts     Options

	mu           sync.RWMutex
	items        []Post
	newestSeen   int64
	oldestLoaded int64
	hasMoreOlder bool
	lastErr      error

	loading  bool // initial or older page fetch in flight
	polling  bool // forward poll in flight
	creating bool // optimistic create in flight

	closed bool

	subs []func(Snapshot)

	// polling lifecycle, see poller.go
	pollCancel context.CancelFunc
	foreground bool
	wake       chan struct{}
}

func New(store Store, uploader Uploader, opts Options) *Synchronizer {
	opts.fillDefaults()
	return &Synchronizer{
		store:    store,
		uploader: uploader,
		opts:     opts,
		wake:     make(chan struct{}, 1),
	}
}

// Subscribe registers a listener invoked with a fresh snapshot after every
// state change. Listeners run outside the state lock.
func (s *Synchronizer) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Snapshot returns a copy of the current feed state.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Items:        clonePosts(s.items),
		NewestSeen:   s.newestSeen,
		OldestLoaded: s.oldestLoaded,
		HasMoreOlder: s.hasMoreOlder,
		Loading:      s.loading,
		LastError:    s.lastErr,
	}
}

func (s *Synchronizer) notify() {
	s.mu.RLock()
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	snap := s.Snapshot()
	for _, fn := range subs {
		fn(snap)
	}
}

// LoadInitial fetches the newest page and replaces the feed. A second call
// while a load is in flight is a no-op. Exceeding the time budget is
// reported as common.ErrTimeout so callers can show a "still trying"
// message instead of a terminal error.
func (s *Synchronizer) LoadInitial(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.loading {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()
	s.notify()
	defer s.clearLoading()

	ctx, cancel := context.WithTimeout(ctx, s.opts.InitialLoadTimeout)
	defer cancel()

	page, err := s.store.FetchPage(ctx, 0, s.opts.PageSize)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = common.ErrTimeout
		}
		s.recordError(err)
		return err
	}

	sortDescending(page)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.items = clonePosts(page)
	if len(page) > 0 {
		s.newestSeen = page[0].Timestamp
		s.oldestLoaded = page[len(page)-1].Timestamp
	}
	s.hasMoreOlder = len(page) == s.opts.PageSize
	s.lastErr = nil
	s.mu.Unlock()
	s.notify()
	return nil
}

// LoadOlder appends the next page below the low-water mark. A no-op when
// there is nothing more to load or a load is already running.
func (s *Synchronizer) LoadOlder(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.loading || !s.hasMoreOlder || len(s.items) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	before := s.oldestLoaded
	s.mu.Unlock()
	s.notify()
	defer s.clearLoading()

	page, err := s.store.FetchPage(ctx, before, s.opts.PageSize)
	if err != nil {
		s.recordError(err)
		return err
	}

	sortDescending(page)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	seen := make(map[string]struct{}, len(s.items))
	for _, p := range s.items {
		seen[p.ID] = struct{}{}
	}
	for _, p := range page {
		// guards against clock skew or overlapping windows
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		s.items = append(s.items, p)
		if p.Timestamp < s.oldestLoaded {
			s.oldestLoaded = p.Timestamp
		}
	}
	if len(page) < s.opts.PageSize {
		s.hasMoreOlder = false
	}
	s.lastErr = nil
	s.mu.Unlock()
	s.notify()
	return nil
}

// PollNewer fetches posts above the high-water mark and prepends the ones
// not already present. The merge is idempotent by id: polling never drops
// a post and never duplicates one.
func (s *Synchronizer) PollNewer(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.polling {
		s.mu.Unlock()
		return nil
	}
	s.polling = true
	after := s.newestSeen
	s.mu.Unlock()
	defer s.clearPolling()

	fresh, err := s.store.FetchNewer(ctx, after)
	if err != nil {
		// reads degrade gracefully, the next tick tries again
		s.recordError(err)
		return err
	}
	if len(fresh) == 0 {
		return nil
	}

	sortDescending(fresh)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	seen := make(map[string]struct{}, len(s.items))
	for _, p := range s.items {
		seen[p.ID] = struct{}{}
	}
	var prepend []Post
	for _, p := range fresh {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		prepend = append(prepend, p)
	}
	if len(prepend) > 0 {
		s.items = append(prepend, s.items...)
	}
	if fresh[0].Timestamp > s.newestSeen {
		s.newestSeen = fresh[0].Timestamp
	}
	if s.oldestLoaded == 0 && len(s.items) > 0 {
		s.oldestLoaded = s.items[len(s.items)-1].Timestamp
	}
	s.lastErr = nil
	s.mu.Unlock()
	s.notify()
	return nil
}

// CreatePost validates, uploads media if present, prepends an optimistic
// entry, then persists it. On persistence failure the optimistic entry is
// removed and the error returned; there is no automatic retry.
func (s *Synchronizer) CreatePost(ctx context.Context, content string, media *MediaUpload) (Post, error) {
	// all validation happens before any network call
	if err := common.ValidatePostContent(content, media != nil); err != nil {
		return Post{}, err
	}
	var kind common.MediaKind
	if media != nil {
		kind = common.DetectMediaKind(media.MIME)
		limit := s.opts.MaxImageBytes
		if kind == common.MediaKindVideo {
			limit = s.opts.MaxVideoBytes
		}
		if media.Size > limit {
			return Post{}, common.ErrFileTooLarge
		}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Post{}, ErrClosed
	}
	if s.creating {
		s.mu.Unlock()
		return Post{}, ErrBusy
	}
	s.creating = true
	s.mu.Unlock()
	defer s.clearCreating()

	var fileURL string
	if media != nil {
		url, err := s.uploader.Upload(ctx, *media)
		if err != nil {
			return Post{}, err
		}
		fileURL = url
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Post{}, ErrClosed
	}
	// optimistic entries must sort above everything already loaded, even
	// under clock skew
	ts := s.opts.Now().UnixMilli()
	if ts <= s.newestSeen {
		ts = s.newestSeen + 1
	}
	post := Post{
		ID:        uuid.NewString(),
		Content:   content,
		FileURL:   fileURL,
		Timestamp: ts,
		Author:    s.opts.Author,
	}
	if media != nil {
		post.MediaKind = kind
	}
	s.items = append([]Post{post}, s.items...)
	s.newestSeen = ts
	if s.oldestLoaded == 0 {
		s.oldestLoaded = ts
	}
	s.mu.Unlock()
	s.notify()

	if err := s.store.InsertPost(ctx, post); err != nil {
		s.removePost(post.ID)
		return Post{}, err
	}
	return post, nil
}

// React optimistically bumps a reaction counter and persists the
// increment. On failure the counter is restored to its exact pre-call
// value, not merely decremented, so a concurrent poll that refreshed the
// entry is not corrupted.
func (s *Synchronizer) React(ctx context.Context, postID string, kind ReactionKind) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	idx := s.indexOf(postID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrUnknownPost
	}
	var prev int64
	switch kind {
	case ReactionThumbsUp:
		prev = s.items[idx].ThumbsUp
		s.items[idx].ThumbsUp++
	default:
		prev = s.items[idx].Likes
		s.items[idx].Likes++
	}
	s.mu.Unlock()
	s.notify()

	if err := s.store.IncrementReaction(ctx, postID, kind); err != nil {
		s.mu.Lock()
		if i := s.indexOf(postID); i >= 0 {
			switch kind {
			case ReactionThumbsUp:
				s.items[i].ThumbsUp = prev
			default:
				s.items[i].Likes = prev
			}
		}
		s.mu.Unlock()
		s.notify()
		return err
	}
	return nil
}

// Close disposes the synchronizer. Results of in-flight fetches are
// discarded and every later operation returns ErrClosed.
func (s *Synchronizer) Close() {
	s.StopPolling()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Synchronizer) indexOf(postID string) int {
	for i := range s.items {
		if s.items[i].ID == postID {
			return i
		}
	}
	return -1
}

func (s *Synchronizer) removePost(postID string) {
	s.mu.Lock()
	if idx := s.indexOf(postID); idx >= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		if len(s.items) > 0 {
			s.newestSeen = s.items[0].Timestamp
		} else {
			s.newestSeen = 0
			s.oldestLoaded = 0
		}
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Synchronizer) recordError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	s.notify()
}

func (s *Synchronizer) clearLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	s.notify()
}

func (s *Synchronizer) clearPolling() {
	s.mu.Lock()
	s.polling = false
	s.mu.Unlock()
}

func (s *Synchronizer) clearCreating() {
	s.mu.Lock()
	s.creating = false
	s.mu.Unlock()
}

func sortDescending(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp > posts[j].Timestamp
	})
}
