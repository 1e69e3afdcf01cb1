package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Fixture is one seeded object. Relations map a metadata field to the slug
// of another fixture; seeding stores the target's ID in that field.
type Fixture struct {
	ID         string            `yaml:"id"`
	Type       string            `yaml:"type"`
	Slug       string            `yaml:"slug"`
	Title      string            `yaml:"title"`
	CreatedAt  string            `yaml:"created_at"`
	ModifiedAt string            `yaml:"modified_at"`
	Metadata   map[string]any    `yaml:"metadata"`
	Relations  map[string]string `yaml:"relations"`
}

type Fixtures struct {
	Objects []Fixture `yaml:"objects"`
}

func LoadFixtures(r io.Reader) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &f, nil
}

// Seed replaces the store's contents with the fixtures, in file order.
func (s *ObjectStore) Seed(ctx context.Context, fixtures *Fixtures) (int, error) {
	bySlug := make(map[string]string, len(fixtures.Objects))
	ids := make([]string, len(fixtures.Objects))
	for i, f := range fixtures.Objects {
		if f.Type == "" || f.Slug == "" {
			return 0, fmt.Errorf("fixture %d needs a type and a slug", i)
		}
		ids[i] = f.ID
		if ids[i] == "" {
			ids[i] = uuid.NewString()
		}
		bySlug[f.Slug] = ids[i]
	}

	objects := make([]Object, 0, len(fixtures.Objects))
	for i, f := range fixtures.Objects {
		meta := make(map[string]any, len(f.Metadata)+len(f.Relations))
		for k, v := range f.Metadata {
			meta[k] = v
		}
		for field, slug := range f.Relations {
			id, ok := bySlug[slug]
			if !ok {
				return 0, fmt.Errorf("fixture %s: relation %s points at unknown slug %q", f.Slug, field, slug)
			}
			meta[field] = id
		}
		raw, err := json.Marshal(meta)
		if err != nil {
			return 0, fmt.Errorf("fixture %s: %w", f.Slug, err)
		}

		title := f.Title
		if title == "" {
			title = f.Slug
		}
		objects = append(objects, Object{
			ID:         ids[i],
			Type:       f.Type,
			Slug:       f.Slug,
			Title:      title,
			Metadata:   string(raw),
			Position:   i,
			CreatedAt:  f.CreatedAt,
			ModifiedAt: f.ModifiedAt,
		})
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := s.DeleteAll(ctx, tx); err != nil {
		return 0, fmt.Errorf("failed to clear objects: %w", err)
	}
	if err := s.CreateObjects(ctx, tx, objects); err != nil {
		return 0, fmt.Errorf("failed to insert objects: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(objects), nil
}
