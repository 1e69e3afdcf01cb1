package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/AdamBeresnev/game-hub/internal/cosmic"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned by Find when no object matches.
var ErrNotFound = errors.New("no objects found")

// Object is one stored bucket object. Metadata is kept as JSON text.
type Object struct {
	ID         string `db:"id"`
	Type       string `db:"type"`
	Slug       string `db:"slug"`
	Title      string `db:"title"`
	Metadata   string `db:"metadata"`
	Position   int    `db:"position"`
	CreatedAt  string `db:"created_at"`
	ModifiedAt string `db:"modified_at"`
}

func (o Object) document() (map[string]any, error) {
	meta := map[string]any{}
	if o.Metadata != "" {
		if err := json.Unmarshal([]byte(o.Metadata), &meta); err != nil {
			return nil, fmt.Errorf("object %s has invalid metadata: %w", o.ID, err)
		}
	}
	doc := map[string]any{
		"id":       o.ID,
		"type":     o.Type,
		"slug":     o.Slug,
		"title":    o.Title,
		"metadata": meta,
	}
	if o.CreatedAt != "" {
		doc["created_at"] = o.CreatedAt
	}
	if o.ModifiedAt != "" {
		doc["modified_at"] = o.ModifiedAt
	}
	return doc, nil
}

const (
	insertObjectQuery = `INSERT INTO objects (id, type, slug, title, metadata, position, created_at, modified_at)
		VALUES (:id, :type, :slug, :title, :metadata, :position, :created_at, :modified_at)`
	listByTypeQuery   = "SELECT * FROM objects WHERE type = ? ORDER BY position ASC"
	listBySlugQuery   = "SELECT * FROM objects WHERE type = ? AND slug = ? ORDER BY position ASC"
	listByIDsQuery    = "SELECT * FROM objects WHERE id IN (?)"
	deleteObjectsStmt = "DELETE FROM objects"
)

type ObjectStore struct {
	db *sqlx.DB
}

func NewObjectStore(db *sqlx.DB) *ObjectStore {
	return &ObjectStore{db: db}
}

func (s *ObjectStore) CreateObjects(ctx context.Context, tx *sqlx.Tx, objects []Object) error {
	if len(objects) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, insertObjectQuery, objects)
	return err
}

func (s *ObjectStore) DeleteAll(ctx context.Context, tx *sqlx.Tx) error {
	_, err := tx.ExecContext(ctx, deleteObjectsStmt)
	return err
}

func (s *ObjectStore) ListByType(ctx context.Context, objectType string) ([]Object, error) {
	var objects []Object
	err := s.db.SelectContext(ctx, &objects, listByTypeQuery, objectType)
	return objects, err
}

func (s *ObjectStore) GetByIDs(ctx context.Context, ids []string) (map[string]Object, error) {
	found := make(map[string]Object, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	query, args, err := sqlx.In(listByIDsQuery, ids)
	if err != nil {
		return nil, err
	}
	var objects []Object
	if err := s.db.SelectContext(ctx, &objects, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, o := range objects {
		found[o.ID] = o
	}
	return found, nil
}

// Find answers a bucket query: type and slug are matched in SQL, other
// dotted paths against the decoded document. Relations are expanded after
// filtering so a filter on a relation field compares the stored ID.
func (s *ObjectStore) Find(ctx context.Context, q cosmic.Query) (*cosmic.ObjectsResponse, error) {
	var (
		objects []Object
		err     error
	)
	filters := q.Selector()
	delete(filters, "type")
	if slug, ok := filters["slug"].(string); ok {
		delete(filters, "slug")
		err = s.db.SelectContext(ctx, &objects, listBySlugQuery, q.Type, slug)
	} else {
		objects, err = s.ListByType(ctx, q.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", q.Type, err)
	}

	docs := make([]map[string]any, 0, len(objects))
	for _, o := range objects {
		doc, err := o.document()
		if err != nil {
			return nil, err
		}
		if matchesAll(doc, filters) {
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}

	total := len(docs)
	docs = page(docs, q.Skip, q.Limit)

	if q.Depth > cosmic.DepthNone {
		if err := s.expand(ctx, docs); err != nil {
			return nil, err
		}
	}

	resp := &cosmic.ObjectsResponse{
		Objects: make([]json.RawMessage, 0, len(docs)),
		Total:   total,
		Limit:   q.Limit,
		Skip:    q.Skip,
	}
	for _, doc := range docs {
		raw, err := json.Marshal(project(doc, q.Props))
		if err != nil {
			return nil, err
		}
		resp.Objects = append(resp.Objects, raw)
	}
	return resp, nil
}

// expand replaces every metadata string that is the ID of a stored object
// with that object's document, one level deep.
func (s *ObjectStore) expand(ctx context.Context, docs []map[string]any) error {
	var ids []string
	for _, doc := range docs {
		for _, v := range doc["metadata"].(map[string]any) {
			if id, ok := v.(string); ok && id != "" {
				ids = append(ids, id)
			}
		}
	}

	related, err := s.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load relations: %w", err)
	}

	for _, doc := range docs {
		meta := doc["metadata"].(map[string]any)
		for field, v := range meta {
			id, ok := v.(string)
			if !ok {
				continue
			}
			if o, ok := related[id]; ok {
				rel, err := o.document()
				if err != nil {
					return err
				}
				meta[field] = rel
			}
		}
	}
	return nil
}

func matchesAll(doc map[string]any, filters map[string]any) bool {
	for path, want := range filters {
		got, ok := lookup(doc, path)
		if !ok || !sameValue(got, want) {
			return false
		}
	}
	return true
}

func lookup(doc map[string]any, path string) (any, bool) {
	var cur any = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// sameValue compares JSON-decoded values; numbers and booleans may arrive as
// strings from hand-written queries.
func sameValue(got, want any) bool {
	return fmt.Sprint(got) == fmt.Sprint(want)
}

func page(docs []map[string]any, skip, limit int) []map[string]any {
	if skip >= len(docs) {
		return docs[:0]
	}
	docs = docs[skip:]
	if limit > 0 && limit < len(docs) {
		docs = docs[:limit]
	}
	return docs
}

func project(doc map[string]any, props []string) map[string]any {
	if len(props) == 0 {
		return doc
	}
	out := make(map[string]any, len(props))
	for _, p := range props {
		if v, ok := doc[p]; ok {
			out[p] = v
		}
	}
	return out
}
