// Package content retrieves game posts, tournaments and categories from the
// content bucket and shapes them for the site: typed decoding, fixed relation
// expansion, deterministic ordering, and not-found folded into empty results.
package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/game-hub/internal/cosmic"
)

// Operation names a logical query for diagnostics.
type Operation string

const (
	OpListPosts           Operation = "list posts"
	OpListFeaturedPosts   Operation = "list featured posts"
	OpGetPost             Operation = "get post by slug"
	OpListTournaments     Operation = "list tournaments"
	OpGetTournament       Operation = "get tournament by slug"
	OpListCategories      Operation = "list categories"
	OpListPostsByCategory Operation = "list posts by category"
	OpListPostsByType     Operation = "list posts by post type"
)

// RetrievalError is any failure other than not-found while answering an
// Operation.
type RetrievalError struct {
	Op  Operation
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// Store is the remote bucket as the accessor sees it. *cosmic.Client
// satisfies it.
type Store interface {
	Find(ctx context.Context, q cosmic.Query) (*cosmic.ObjectsResponse, error)
	FindOne(ctx context.Context, q cosmic.Query) (*cosmic.ObjectResponse, error)
}

// Accessor holds no state besides the store and is safe for concurrent use.
type Accessor struct {
	store Store
}

func NewAccessor(store Store) *Accessor {
	return &Accessor{store: store}
}

// ListPosts returns every game post, newest first.
func (a *Accessor) ListPosts(ctx context.Context) ([]GamePost, error) {
	posts, err := list[GamePost](ctx, a, OpListPosts, queryFor[GamePost]())
	if err != nil {
		return nil, err
	}
	SortPostsByNewest(posts)
	return posts, nil
}

func (a *Accessor) ListFeaturedPosts(ctx context.Context) ([]GamePost, error) {
	q := queryFor[GamePost]().Where("metadata.featured", true)
	posts, err := list[GamePost](ctx, a, OpListFeaturedPosts, q)
	if err != nil {
		return nil, err
	}
	SortPostsByNewest(posts)
	return posts, nil
}

// GetPost returns nil, nil when no post has the slug.
func (a *Accessor) GetPost(ctx context.Context, slug string) (*GamePost, error) {
	return one[GamePost](ctx, a, OpGetPost, queryFor[GamePost]().Where("slug", slug))
}

// ListTournaments returns every tournament, earliest start first.
func (a *Accessor) ListTournaments(ctx context.Context) ([]Tournament, error) {
	tournaments, err := list[Tournament](ctx, a, OpListTournaments, queryFor[Tournament]())
	if err != nil {
		return nil, err
	}
	SortTournamentsByStart(tournaments)
	return tournaments, nil
}

func (a *Accessor) GetTournament(ctx context.Context, slug string) (*Tournament, error) {
	return one[Tournament](ctx, a, OpGetTournament, queryFor[Tournament]().Where("slug", slug))
}

// ListCategories returns categories in bucket order.
func (a *Accessor) ListCategories(ctx context.Context) ([]Category, error) {
	return list[Category](ctx, a, OpListCategories, queryFor[Category]())
}

func (a *Accessor) ListPostsByCategory(ctx context.Context, categoryID string) ([]GamePost, error) {
	q := queryFor[GamePost]().Where("metadata.category", categoryID)
	posts, err := list[GamePost](ctx, a, OpListPostsByCategory, q)
	if err != nil {
		return nil, err
	}
	SortPostsByNewest(posts)
	return posts, nil
}

func (a *Accessor) ListPostsByType(ctx context.Context, postType PostType) ([]GamePost, error) {
	q := queryFor[GamePost]().Where("metadata.post_type.key", string(postType))
	posts, err := list[GamePost](ctx, a, OpListPostsByType, q)
	if err != nil {
		return nil, err
	}
	SortPostsByNewest(posts)
	return posts, nil
}

func list[T entity](ctx context.Context, a *Accessor, op Operation, q cosmic.Query) ([]T, error) {
	resp, err := a.store.Find(ctx, q)
	if err != nil {
		if cosmic.IsNotFound(err) {
			return []T{}, nil
		}
		return nil, a.fail(op, err)
	}

	items, err := decodeList[T](resp.Objects)
	if err != nil {
		return nil, a.fail(op, err)
	}
	return items, nil
}

func one[T entity](ctx context.Context, a *Accessor, op Operation, q cosmic.Query) (*T, error) {
	resp, err := a.store.FindOne(ctx, q)
	if err != nil {
		if cosmic.IsNotFound(err) {
			return nil, nil
		}
		return nil, a.fail(op, err)
	}
	if len(resp.Object) == 0 || string(resp.Object) == "null" {
		return nil, nil
	}

	v, err := decode[T](resp.Object)
	if err != nil {
		return nil, a.fail(op, err)
	}
	return &v, nil
}

func (a *Accessor) fail(op Operation, err error) error {
	slog.Error("content retrieval failed", "operation", string(op), "error", err)
	return &RetrievalError{Op: op, Err: err}
}
