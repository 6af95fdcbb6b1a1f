package feedsync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"socialwall/internal/common"
)

// ---- In-memory fakes for the store and uploader ----

type fakeStore struct {
	mu    sync.Mutex
	posts []Post // kept sorted newest first

	failFetch     error
	failInsert    error
	failIncrement error

	// blockFetch makes fetches wait until released (or ctx expires)
	blockFetch chan struct{}

	FetchPageCalls  int
	FetchNewerCalls int
	InsertCalls     int
	IncrementCalls  int
}

func newFakeStore(timestamps ...int64) *fakeStore {
	s := &fakeStore{}
	for _, ts := range timestamps {
		s.posts = append(s.posts, Post{
			ID:        fmt.Sprintf("p%d", ts),
			Content:   fmt.Sprintf("post at %d", ts),
			Timestamp: ts,
		})
	}
	s.sortPosts()
	return s
}

func (s *fakeStore) sortPosts() {
	sort.SliceStable(s.posts, func(i, j int) bool {
		return s.posts[i].Timestamp > s.posts[j].Timestamp
	})
}

func (s *fakeStore) addServerPost(p Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, p)
	s.sortPosts()
}

func (s *fakeStore) wait(ctx context.Context) error {
	if s.blockFetch == nil {
		return nil
	}
	select {
	case <-s.blockFetch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *fakeStore) FetchPage(ctx context.Context, before int64, limit int) ([]Post, error) {
	s.mu.Lock()
	s.FetchPageCalls++
	s.mu.Unlock()

	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if s.failFetch != nil {
		return nil, s.failFetch
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Post
	for _, p := range s.posts {
		if before > 0 && p.Timestamp >= before {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) FetchNewer(ctx context.Context, after int64) ([]Post, error) {
	s.mu.Lock()
	s.FetchNewerCalls++
	s.mu.Unlock()

	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if s.failFetch != nil {
		return nil, s.failFetch
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Post
	for _, p := range s.posts {
		if p.Timestamp > after {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeStore) InsertPost(ctx context.Context, post Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InsertCalls++
	if s.failInsert != nil {
		return s.failInsert
	}
	s.posts = append(s.posts, post)
	s.sortPosts()
	return nil
}

func (s *fakeStore) IncrementReaction(ctx context.Context, postID string, kind ReactionKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.IncrementCalls++
	if s.failIncrement != nil {
		return s.failIncrement
	}
	for i := range s.posts {
		if s.posts[i].ID == postID {
			if kind == ReactionThumbsUp {
				s.posts[i].ThumbsUp++
			} else {
				s.posts[i].Likes++
			}
			return nil
		}
	}
	return errors.New("post not found")
}

type fakeUploader struct {
	UploadCalls int
	failUpload  error
}

func (u *fakeUploader) Upload(ctx context.Context, file MediaUpload) (string, error) {
	u.UploadCalls++
	if u.failUpload != nil {
		return "", u.failUpload
	}
	return "http://media.local/" + file.Name, nil
}

func newSync(store *fakeStore, up *fakeUploader, pageSize int) *Synchronizer {
	return New(store, up, Options{PageSize: pageSize})
}

// assertOrdered checks the standing invariant: items strictly descending
// by timestamp with unique ids.
func assertOrdered(t *testing.T, snap Snapshot) {
	t.Helper()
	seen := map[string]bool{}
	for i, p := range snap.Items {
		require.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		if i > 0 {
			require.Greater(t, snap.Items[i-1].Timestamp, p.Timestamp,
				"items not strictly descending at index %d", i)
		}
	}
}

func timestamps(snap Snapshot) []int64 {
	out := make([]int64, 0, len(snap.Items))
	for _, p := range snap.Items {
		out = append(out, p.Timestamp)
	}
	return out
}

// ---- Tests ----

func TestScenario_PaginateThenPoll(t *testing.T) {
	store := newFakeStore(100, 90, 80, 70, 60)
	s := newSync(store, &fakeUploader{}, 2)
	ctx := context.Background()

	require.NoError(t, s.LoadInitial(ctx))
	snap := s.Snapshot()
	require.Equal(t, []int64{100, 90}, timestamps(snap))
	require.True(t, snap.HasMoreOlder)
	require.EqualValues(t, 100, snap.NewestSeen)
	require.EqualValues(t, 90, snap.OldestLoaded)
	assertOrdered(t, snap)

	require.NoError(t, s.LoadOlder(ctx))
	snap = s.Snapshot()
	require.Equal(t, []int64{100, 90, 80, 70}, timestamps(snap))
	require.EqualValues(t, 70, snap.OldestLoaded)
	require.True(t, snap.HasMoreOlder)
	assertOrdered(t, snap)

	require.NoError(t, s.LoadOlder(ctx))
	snap = s.Snapshot()
	require.Equal(t, []int64{100, 90, 80, 70, 60}, timestamps(snap))
	require.False(t, snap.HasMoreOlder, "short page must end pagination")
	assertOrdered(t, snap)

	store.addServerPost(Post{ID: "p110", Content: "new", Timestamp: 110})
	require.NoError(t, s.PollNewer(ctx))
	snap = s.Snapshot()
	require.Equal(t, []int64{110, 100, 90, 80, 70, 60}, timestamps(snap))
	require.EqualValues(t, 110, snap.NewestSeen)
	assertOrdered(t, snap)
}

func TestLoadOlder_TerminatesAfterCeilNOverP(t *testing.T) {
	store := newFakeStore(50, 40, 30, 20, 10)
	s := newSync(store, &fakeUploader{}, 2)
	ctx := context.Background()

	require.NoError(t, s.LoadInitial(ctx))

	calls := 0
	for s.Snapshot().HasMoreOlder {
		require.NoError(t, s.LoadOlder(ctx))
		calls++
		require.LessOrEqual(t, calls, 3, "pagination must terminate")
	}

	// ceil(5/2) = 3 pages total, 2 of them via LoadOlder plus the short one
	snap := s.Snapshot()
	require.Len(t, snap.Items, 5)
	assertOrdered(t, snap)

	// further calls are no-ops and hit the store no more
	before := store.FetchPageCalls
	require.NoError(t, s.LoadOlder(ctx))
	require.Equal(t, before, store.FetchPageCalls)
}

func TestPollNewer_Idempotent(t *testing.T) {
	store := newFakeStore(100, 90)
	s := newSync(store, &fakeUploader{}, 10)
	ctx := context.Background()

	require.NoError(t, s.LoadInitial(ctx))
	first := s.Snapshot()

	require.NoError(t, s.PollNewer(ctx))
	require.NoError(t, s.PollNewer(ctx))

	snap := s.Snapshot()
	require.Equal(t, timestamps(first), timestamps(snap))
	assertOrdered(t, snap)
}

func TestPollNewer_DoesNotDuplicateOverlappingResults(t *testing.T) {
	store := newFakeStore(100, 90)
	s := newSync(store, &fakeUploader{}, 10)
	ctx := context.Background()
	require.NoError(t, s.LoadInitial(ctx))

	// server returns a window that overlaps what we already hold
	store.addServerPost(Post{ID: "p110", Timestamp: 110})
	require.NoError(t, s.PollNewer(ctx))
	require.NoError(t, s.PollNewer(ctx))

	snap := s.Snapshot()
	require.Equal(t, []int64{110, 100, 90}, timestamps(snap))
	assertOrdered(t, snap)
}

func TestCreatePost_OptimisticThenConfirmed(t *testing.T) {
	store := newFakeStore(100, 90)
	s := newSync(store, &fakeUploader{}, 10)
	ctx := context.Background()
	require.NoError(t, s.LoadInitial(ctx))

	post, err := s.CreatePost(ctx, "hello wall", nil)
	require.NoError(t, err)
	require.NotEmpty(t, post.ID)

	snap := s.Snapshot()
	require.Equal(t, post.ID, snap.Items[0].ID)
	assertOrdered(t, snap)

	// a later poll returns the same post from the server; it must not
	// appear twice
	require.NoError(t, s.PollNewer(ctx))
	snap = s.Snapshot()
	count := 0
	for _, p := range snap.Items {
		if p.ID == post.ID {
			count++
		}
	}
	require.Equal(t, 1, count, "confirmed post must stay exactly once")
	assertOrdered(t, snap)
}

func TestCreatePost_RollbackOnPersistFailure(t *testing.T) {
	store := newFakeStore(100, 90)
	s := newSync(store, &fakeUploader{}, 10)
	ctx := context.Background()
	require.NoError(t, s.LoadInitial(ctx))

	store.failInsert = errors.New("db down")
	_, err := s.CreatePost(ctx, "doomed", nil)
	require.Error(t, err)

	snap := s.Snapshot()
	require.Equal(t, []int64{100, 90}, timestamps(snap))
	for _, p := range snap.Items {
		require.NotEqual(t, "doomed", p.Content)
	}
	require.EqualValues(t, 100, snap.NewestSeen, "high-water mark rolls back")
	assertOrdered(t, snap)
}

func TestCreatePost_TimestampAlwaysAboveFeed(t *testing.T) {
	store := newFakeStore(100, 90)
	// wall clock is behind the newest loaded post
	frozen := time.UnixMilli(50)
	s := New(store, &fakeUploader{}, Options{PageSize: 10, Now: func() time.Time { return frozen }})
	ctx := context.Background()
	require.NoError(t, s.LoadInitial(ctx))

	post, err := s.CreatePost(ctx, "skewed clock", nil)
	require.NoError(t, err)
	require.EqualValues(t, 101, post.Timestamp)
	assertOrdered(t, s.Snapshot())
}

func TestCreatePost_ValidationRejectsWithoutNetwork(t *testing.T) {
	store := newFakeStore(100)
	up := &fakeUploader{}
	s := newSync(store, up, 10)
	ctx := context.Background()

	_, err := s.CreatePost(ctx, "", nil)
	require.ErrorIs(t, err, common.ErrEmptyPost)

	_, err = s.CreatePost(ctx, "   ", nil)
	require.ErrorIs(t, err, common.ErrEmptyPost)

	_, err = s.CreatePost(ctx, "check this http://x", nil)
	require.ErrorIs(t, err, common.ErrLinksNotAllowed)

	require.Equal(t, 0, store.InsertCalls)
	require.Equal(t, 0, up.UploadCalls)
}

func TestCreatePost_OversizedFileRejectedBeforeUpload(t *testing.T) {
	store := newFakeStore(100)
	up := &fakeUploader{}
	s := newSync(store, up, 10)
	ctx := context.Background()

	big := &MediaUpload{Name: "clip.mp4", MIME: "video/mp4", Size: 17 << 20, Content: strings.NewReader("x")}
	_, err := s.CreatePost(ctx, "watch", big)
	require.ErrorIs(t, err, common.ErrFileTooLarge)

	image := &MediaUpload{Name: "pic.png", MIME: "image/png", Size: 5 << 20, Content: strings.NewReader("x")}
	_, err = s.CreatePost(ctx, "look", image)
	require.ErrorIs(t, err, common.ErrFileTooLarge)

	require.Equal(t, 0, up.UploadCalls)
	require.Equal(t, 0, store.InsertCalls)
}

func TestCreatePost_WithMedia(t *testing.T) {
	store := newFakeStore(100)
	up := &fakeUploader{}
	s := newSync(store, up, 10)
	ctx := context.Background()
	require.NoError(t, s.LoadInitial(ctx))

	media := &MediaUpload{Name: "pic.png", MIME: "image/png", Size: 1024, Content: strings.NewReader("data")}
	post, err := s.CreatePost(ctx, "", media)
	require.NoError(t, err)
	require.Equal(t, "http://media.local/pic.png", post.FileURL)
	require.Equal(t, common.MediaKindImage, post.MediaKind)
	require.Equal(t, 1, up.UploadCalls)
}

func TestReact_OptimisticIncrementAndExactRollback(t *testing.T) {
	store := newFakeStore(100)
	s := newSync(store, &fakeUploader{}, 10)
	ctx := context.Background()
	require.NoError(t, s.LoadInitial(ctx))

	id := s.Snapshot().Items[0].ID

	require.NoError(t, s.React(ctx, id, ReactionLike))
	require.EqualValues(t, 1, s.Snapshot().Items[0].Likes)

	// a failed reaction restores the exact pre-call value
	store.failIncrement = errors.New("db down")
	err := s.React(ctx, id, ReactionLike)
	require.Error(t, err)
	require.EqualValues(t, 1, s.Snapshot().Items[0].Likes)

	err = s.React(ctx, id, ReactionThumbsUp)
	require.Error(t, err)
	require.EqualValues(t, 0, s.Snapshot().Items[0].ThumbsUp)
	require.GreaterOrEqual(t, s.Snapshot().Items[0].ThumbsUp, int64(0), "counter never negative")
}

func TestReact_UnknownPost(t *testing.T) {
	store := newFakeStore(100)
	s := newSync(store, &fakeUploader{}, 10)
	require.NoError(t, s.LoadInitial(context.Background()))

	err := s.React(context.Background(), "nope", ReactionLike)
	require.ErrorIs(t, err, ErrUnknownPost)
	require.Equal(t, 0, store.IncrementCalls)
}

func TestLoadInitial_CoalescesOverlappingCalls(t *testing.T) {
	store := newFakeStore(100, 90)
	store.blockFetch = make(chan struct{})
	s := newSync(store, &fakeUploader{}, 10)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- s.LoadInitial(ctx) }()

	// wait for the first load to be in flight
	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return store.FetchPageCalls == 1
	}, time.Second, 5*time.Millisecond)

	// second call is a no-op while the first is in flight
	require.NoError(t, s.LoadInitial(ctx))
	store.mu.Lock()
	require.Equal(t, 1, store.FetchPageCalls)
	store.mu.Unlock()

	close(store.blockFetch)
	require.NoError(t, <-done)
	require.Len(t, s.Snapshot().Items, 2)
}

func TestLoadInitial_TimeoutIsDistinct(t *testing.T) {
	store := newFakeStore(100)
	store.blockFetch = make(chan struct{}) // never released
	s := New(store, &fakeUploader{}, Options{PageSize: 10, InitialLoadTimeout: 20 * time.Millisecond})

	err := s.LoadInitial(context.Background())
	require.ErrorIs(t, err, common.ErrTimeout)
	require.ErrorIs(t, s.Snapshot().LastError, common.ErrTimeout)
}

func TestLoadInitial_FailureKeepsPreviousItems(t *testing.T) {
	store := newFakeStore(100, 90)
	s := newSync(store, &fakeUploader{}, 10)
	ctx := context.Background()
	require.NoError(t, s.LoadInitial(ctx))

	store.failFetch = errors.New("network down")
	err := s.LoadInitial(ctx)
	require.Error(t, err)

	snap := s.Snapshot()
	require.Equal(t, []int64{100, 90}, timestamps(snap), "retry failure keeps prior state")
	require.Error(t, snap.LastError)
}

func TestPollNewer_FailureLeavesStateIntact(t *testing.T) {
	store := newFakeStore(100, 90)
	s := newSync(store, &fakeUploader{}, 10)
	ctx := context.Background()
	require.NoError(t, s.LoadInitial(ctx))

	store.failFetch = errors.New("flaky")
	err := s.PollNewer(ctx)
	require.Error(t, err)
	require.Equal(t, []int64{100, 90}, timestamps(s.Snapshot()))

	// next poll succeeds again
	store.failFetch = nil
	store.addServerPost(Post{ID: "p110", Timestamp: 110})
	require.NoError(t, s.PollNewer(ctx))
	require.Equal(t, []int64{110, 100, 90}, timestamps(s.Snapshot()))
}

func TestCreatePost_OnEmptyFeed(t *testing.T) {
	store := newFakeStore()
	s := newSync(store, &fakeUploader{}, 10)
	ctx := context.Background()
	require.NoError(t, s.LoadInitial(ctx))

	post, err := s.CreatePost(ctx, "first!", nil)
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	require.Equal(t, post.Timestamp, snap.NewestSeen)
	require.Equal(t, post.Timestamp, snap.OldestLoaded)
}

func TestSubscribe_NotifiedOnChanges(t *testing.T) {
	store := newFakeStore(100)
	s := newSync(store, &fakeUploader{}, 10)

	var mu sync.Mutex
	var got []int
	s.Subscribe(func(snap Snapshot) {
		mu.Lock()
		got = append(got, len(snap.Items))
		mu.Unlock()
	})

	require.NoError(t, s.LoadInitial(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, got)
	require.Equal(t, 1, got[len(got)-1])
}

func TestClose_RejectsFurtherOperations(t *testing.T) {
	store := newFakeStore(100)
	s := newSync(store, &fakeUploader{}, 10)
	require.NoError(t, s.LoadInitial(context.Background()))

	s.Close()

	require.ErrorIs(t, s.LoadInitial(context.Background()), ErrClosed)
	require.ErrorIs(t, s.LoadOlder(context.Background()), ErrClosed)
	require.ErrorIs(t, s.PollNewer(context.Background()), ErrClosed)
	_, err := s.CreatePost(context.Background(), "late", nil)
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, s.React(context.Background(), "p100", ReactionLike), ErrClosed)
}
