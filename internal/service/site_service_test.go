package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/AdamBeresnev/game-hub/internal/content"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContents struct {
	posts       []content.GamePost
	featured    []content.GamePost
	tournaments []content.Tournament
	categories  []content.Category
	byCategory  map[string][]content.GamePost
	byType      map[content.PostType][]content.GamePost
	err         error
	block       chan struct{}
	fail        map[string]error

	mu          sync.Mutex
	calls       []string
	interrupted []string
}

// call waits for block, if set, unless ctx ends first, and records which
// calls saw their context end.
func (s *stubContents) call(ctx context.Context, name string) error {
	if err, ok := s.fail[name]; ok {
		s.record(name, false)
		return err
	}
	var ctxErr error
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			ctxErr = ctx.Err()
		}
	}
	s.record(name, ctxErr != nil)
	return s.err
}

func (s *stubContents) record(name string, interrupted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
	if interrupted {
		s.interrupted = append(s.interrupted, name)
	}
}

func (s *stubContents) finished() (calls, interrupted int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls), len(s.interrupted)
}

func (s *stubContents) called(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (s *stubContents) ListPosts(ctx context.Context) ([]content.GamePost, error) {
	return s.posts, s.call(ctx, "ListPosts")
}

func (s *stubContents) ListFeaturedPosts(ctx context.Context) ([]content.GamePost, error) {
	return s.featured, s.call(ctx, "ListFeaturedPosts")
}

func (s *stubContents) GetPost(ctx context.Context, slug string) (*content.GamePost, error) {
	if err := s.call(ctx, "GetPost:"+slug); err != nil {
		return nil, err
	}
	for i := range s.posts {
		if s.posts[i].Slug == slug {
			return &s.posts[i], nil
		}
	}
	return nil, nil
}

func (s *stubContents) ListTournaments(ctx context.Context) ([]content.Tournament, error) {
	return s.tournaments, s.call(ctx, "ListTournaments")
}

func (s *stubContents) GetTournament(ctx context.Context, slug string) (*content.Tournament, error) {
	if err := s.call(ctx, "GetTournament:"+slug); err != nil {
		return nil, err
	}
	for i := range s.tournaments {
		if s.tournaments[i].Slug == slug {
			return &s.tournaments[i], nil
		}
	}
	return nil, nil
}

func (s *stubContents) ListCategories(ctx context.Context) ([]content.Category, error) {
	return s.categories, s.call(ctx, "ListCategories")
}

func (s *stubContents) ListPostsByCategory(ctx context.Context, categoryID string) ([]content.GamePost, error) {
	return s.byCategory[categoryID], s.call(ctx, "ListPostsByCategory:"+categoryID)
}

func (s *stubContents) ListPostsByType(ctx context.Context, postType content.PostType) ([]content.GamePost, error) {
	return s.byType[postType], s.call(ctx, "ListPostsByType:"+string(postType))
}

func newService(contents Contents) *SiteService {
	return NewSiteService(contents, clockwork.NewRealClock(), 5*time.Second)
}

func post(slug string) content.GamePost {
	return content.GamePost{Object: content.Object{ID: "id-" + slug, Slug: slug, Type: content.KindGamePost}}
}

func tournament(slug string, status content.TournamentStatus) content.Tournament {
	t := content.Tournament{Object: content.Object{ID: "id-" + slug, Slug: slug, Type: content.KindTournament}}
	t.Metadata.Status.Key = status
	return t
}

func category(id, slug string) content.Category {
	return content.Category{Object: content.Object{ID: id, Slug: slug, Type: content.KindCategory}}
}

func TestHomeSelections(t *testing.T) {
	var posts []content.GamePost
	for i := range 8 {
		posts = append(posts, post(fmt.Sprintf("post-%d", i)))
	}
	contents := &stubContents{
		posts:    posts,
		featured: []content.GamePost{post("lead"), post("second")},
		tournaments: []content.Tournament{
			tournament("done", content.StatusCompleted),
			tournament("a", content.StatusUpcoming),
			tournament("live", content.StatusLive),
			tournament("b", content.StatusUpcoming),
			tournament("c", content.StatusUpcoming),
			tournament("d", content.StatusUpcoming),
		},
		categories: []content.Category{category("c1", "maps")},
	}

	data, err := newService(contents).Home(context.Background())
	require.NoError(t, err)

	require.NotNil(t, data.Featured)
	assert.Equal(t, "lead", data.Featured.Slug)
	require.Len(t, data.Recent, RecentPostLimit)
	assert.Equal(t, "post-0", data.Recent[0].Slug)
	assert.Equal(t, "post-5", data.Recent[5].Slug)
	require.Len(t, data.Upcoming, UpcomingTournamentLimit)
	assert.Equal(t, "a", data.Upcoming[0].Slug)
	assert.Equal(t, "c", data.Upcoming[2].Slug)
	assert.Len(t, data.Categories, 1)
}

func TestHomeWithoutFeaturedOrContent(t *testing.T) {
	data, err := newService(&stubContents{}).Home(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data.Featured)
	assert.Empty(t, data.Recent)
	assert.Empty(t, data.Upcoming)
}

func TestHomeSurfacesRetrievalError(t *testing.T) {
	failure := &content.RetrievalError{Op: content.OpListPosts, Err: errors.New("boom")}

	_, err := newService(&stubContents{err: failure}).Home(context.Background())
	require.Error(t, err)
	var re *content.RetrievalError
	assert.ErrorAs(t, err, &re)
}

func TestHomeDeadline(t *testing.T) {
	clock := clockwork.NewFakeClock()
	contents := &stubContents{block: make(chan struct{})}
	svc := NewSiteService(contents, clock, time.Second)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Home(context.Background())
		done <- err
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 4))
	clock.Advance(time.Second)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, content.ErrDeadline)
	case <-ctx.Done():
		t.Fatal("home page did not give up at the deadline")
	}

	// the late calls still run to completion on an uncancelled context
	close(contents.block)
	assert.Eventually(t, func() bool {
		calls, _ := contents.finished()
		return calls == 4
	}, 5*time.Second, 10*time.Millisecond)
	_, interrupted := contents.finished()
	assert.Zero(t, interrupted)
}

func TestPostFailureLeavesSiblingRunning(t *testing.T) {
	contents := &stubContents{
		block: make(chan struct{}),
		fail:  map[string]error{"GetPost:any": errors.New("boom")},
	}
	svc := NewSiteService(contents, clockwork.NewFakeClock(), time.Second)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Post(context.Background(), "any")
		done <- err
	}()

	require.Eventually(t, func() bool { return contents.called("GetPost:any") }, 5*time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return len(done) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
	close(contents.block)

	select {
	case err := <-done:
		assert.EqualError(t, err, "boom")
	case <-time.After(5 * time.Second):
		t.Fatal("post page did not return")
	}
	calls, interrupted := contents.finished()
	assert.Equal(t, 2, calls)
	assert.Zero(t, interrupted)
}

func TestPostMissingIsNil(t *testing.T) {
	contents := &stubContents{posts: []content.GamePost{post("known")}}

	data, err := newService(contents).Post(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, data.Post)
	assert.True(t, contents.called("GetPost:unknown"))

	data, err = newService(contents).Post(context.Background(), "known")
	require.NoError(t, err)
	require.NotNil(t, data.Post)
	assert.Equal(t, "known", data.Post.Slug)
}

func TestTournamentBySlug(t *testing.T) {
	contents := &stubContents{tournaments: []content.Tournament{tournament("cup", content.StatusLive)}}

	data, err := newService(contents).Tournament(context.Background(), "cup")
	require.NoError(t, err)
	require.NotNil(t, data.Tournament)
	assert.Equal(t, content.StatusLive, data.Tournament.Metadata.Status.Key)
}

func TestListPages(t *testing.T) {
	contents := &stubContents{
		posts:       []content.GamePost{post("p1"), post("p2")},
		tournaments: []content.Tournament{tournament("t1", content.StatusUpcoming)},
		categories:  []content.Category{category("c1", "maps")},
	}
	svc := newService(contents)

	posts, err := svc.Posts(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts.Posts, 2)
	assert.Len(t, posts.Categories, 1)

	tournaments, err := svc.Tournaments(context.Background())
	require.NoError(t, err)
	assert.Len(t, tournaments.Tournaments, 1)
	assert.Len(t, tournaments.Categories, 1)
}

func TestCategoryResolvesSlugToID(t *testing.T) {
	contents := &stubContents{
		categories: []content.Category{category("c1", "maps"), category("c2", "weapons")},
		byCategory: map[string][]content.GamePost{"c2": {post("shotguns")}},
	}

	data, err := newService(contents).Category(context.Background(), "weapons")
	require.NoError(t, err)
	require.NotNil(t, data.Category)
	assert.Equal(t, "c2", data.Category.ID)
	require.Len(t, data.Posts, 1)
	assert.Equal(t, "shotguns", data.Posts[0].Slug)
	assert.True(t, contents.called("ListPostsByCategory:c2"))
}

func TestCategoryUnknownSlug(t *testing.T) {
	contents := &stubContents{categories: []content.Category{category("c1", "maps")}}

	data, err := newService(contents).Category(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, data.Category)
	assert.Len(t, data.Categories, 1)
	assert.False(t, contents.called("ListPostsByCategory:c1"))
}

func TestPostTypePassesKey(t *testing.T) {
	contents := &stubContents{
		byType: map[content.PostType][]content.GamePost{content.PostGuide: {post("g1"), post("g2")}},
	}

	data, err := newService(contents).PostType(context.Background(), content.PostGuide)
	require.NoError(t, err)
	assert.Equal(t, content.PostGuide, data.PostType)
	assert.Len(t, data.Posts, 2)
	assert.True(t, contents.called("ListPostsByType:guide"))
}
