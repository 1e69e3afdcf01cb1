package service

import (
	"context"
	"time"

	"github.com/AdamBeresnev/game-hub/internal/content"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

const (
	RecentPostLimit         = 6
	UpcomingTournamentLimit = 3
)

// Contents is the read API pages are built from. *content.Accessor
// satisfies it.
type Contents interface {
	ListPosts(ctx context.Context) ([]content.GamePost, error)
	ListFeaturedPosts(ctx context.Context) ([]content.GamePost, error)
	GetPost(ctx context.Context, slug string) (*content.GamePost, error)
	ListTournaments(ctx context.Context) ([]content.Tournament, error)
	GetTournament(ctx context.Context, slug string) (*content.Tournament, error)
	ListCategories(ctx context.Context) ([]content.Category, error)
	ListPostsByCategory(ctx context.Context, categoryID string) ([]content.GamePost, error)
	ListPostsByType(ctx context.Context, postType content.PostType) ([]content.GamePost, error)
}

// SiteService assembles the data for each page. Every content call is
// bounded by timeout on clock; a call that misses it, or whose sibling
// failed, is left to finish on the request context and its result dropped.
type SiteService struct {
	contents Contents
	clock    clockwork.Clock
	timeout  time.Duration
}

func NewSiteService(contents Contents, clock clockwork.Clock, timeout time.Duration) *SiteService {
	return &SiteService{contents: contents, clock: clock, timeout: timeout}
}

type HomeData struct {
	Categories []content.Category
	Featured   *content.GamePost
	Recent     []content.GamePost
	Upcoming   []content.Tournament
}

type PostsData struct {
	Categories []content.Category
	Posts      []content.GamePost
}

// PostData has a nil Post when the slug is unknown.
type PostData struct {
	Categories []content.Category
	Post       *content.GamePost
}

type TournamentsData struct {
	Categories  []content.Category
	Tournaments []content.Tournament
}

// TournamentData has a nil Tournament when the slug is unknown.
type TournamentData struct {
	Categories []content.Category
	Tournament *content.Tournament
}

// CategoryData has a nil Category when the slug is unknown.
type CategoryData struct {
	Categories []content.Category
	Category   *content.Category
	Posts      []content.GamePost
}

type PostTypeData struct {
	Categories []content.Category
	PostType   content.PostType
	Posts      []content.GamePost
}

func (s *SiteService) Home(ctx context.Context) (*HomeData, error) {
	var (
		data        HomeData
		posts       []content.GamePost
		featured    []content.GamePost
		tournaments []content.Tournament
	)

	var g errgroup.Group
	g.Go(func() (err error) {
		posts, err = await(s, func() ([]content.GamePost, error) { return s.contents.ListPosts(ctx) })
		return err
	})
	g.Go(func() (err error) {
		featured, err = await(s, func() ([]content.GamePost, error) { return s.contents.ListFeaturedPosts(ctx) })
		return err
	})
	g.Go(func() (err error) {
		tournaments, err = await(s, func() ([]content.Tournament, error) { return s.contents.ListTournaments(ctx) })
		return err
	})
	g.Go(func() (err error) {
		data.Categories, err = s.categories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(featured) > 0 {
		data.Featured = &featured[0]
	}
	data.Recent = posts[:min(len(posts), RecentPostLimit)]
	data.Upcoming = content.Upcoming(tournaments, UpcomingTournamentLimit)
	return &data, nil
}

func (s *SiteService) Posts(ctx context.Context) (*PostsData, error) {
	var data PostsData
	var g errgroup.Group
	g.Go(func() (err error) {
		data.Posts, err = await(s, func() ([]content.GamePost, error) { return s.contents.ListPosts(ctx) })
		return err
	})
	g.Go(func() (err error) {
		data.Categories, err = s.categories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *SiteService) Post(ctx context.Context, slug string) (*PostData, error) {
	var data PostData
	var g errgroup.Group
	g.Go(func() (err error) {
		data.Post, err = await(s, func() (*content.GamePost, error) { return s.contents.GetPost(ctx, slug) })
		return err
	})
	g.Go(func() (err error) {
		data.Categories, err = s.categories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *SiteService) Tournaments(ctx context.Context) (*TournamentsData, error) {
	var data TournamentsData
	var g errgroup.Group
	g.Go(func() (err error) {
		data.Tournaments, err = await(s, func() ([]content.Tournament, error) { return s.contents.ListTournaments(ctx) })
		return err
	})
	g.Go(func() (err error) {
		data.Categories, err = s.categories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *SiteService) Tournament(ctx context.Context, slug string) (*TournamentData, error) {
	var data TournamentData
	var g errgroup.Group
	g.Go(func() (err error) {
		data.Tournament, err = await(s, func() (*content.Tournament, error) { return s.contents.GetTournament(ctx, slug) })
		return err
	})
	g.Go(func() (err error) {
		data.Categories, err = s.categories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Category resolves slug against the category list before asking for its
// posts, since posts reference categories by ID.
func (s *SiteService) Category(ctx context.Context, slug string) (*CategoryData, error) {
	categories, err := s.categories(ctx)
	if err != nil {
		return nil, err
	}
	data := &CategoryData{Categories: categories}
	for i := range categories {
		if categories[i].Slug == slug {
			data.Category = &categories[i]
			break
		}
	}
	if data.Category == nil {
		return data, nil
	}

	id := data.Category.ID
	data.Posts, err = await(s, func() ([]content.GamePost, error) { return s.contents.ListPostsByCategory(ctx, id) })
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *SiteService) PostType(ctx context.Context, postType content.PostType) (*PostTypeData, error) {
	data := PostTypeData{PostType: postType}
	var g errgroup.Group
	g.Go(func() (err error) {
		data.Posts, err = await(s, func() ([]content.GamePost, error) { return s.contents.ListPostsByType(ctx, postType) })
		return err
	})
	g.Go(func() (err error) {
		data.Categories, err = s.categories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *SiteService) categories(ctx context.Context) ([]content.Category, error) {
	return await(s, func() ([]content.Category, error) { return s.contents.ListCategories(ctx) })
}

func await[T any](s *SiteService, call func() (T, error)) (T, error) {
	return content.Await(s.clock, s.timeout, call)
}
