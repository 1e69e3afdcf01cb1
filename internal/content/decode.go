package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/game-hub/internal/cosmic"
)

// ErrUnexpectedKind marks an object whose type does not match the query.
var ErrUnexpectedKind = errors.New("unexpected object type")

var (
	postProps     = []string{"id", "title", "slug", "type", "metadata", "created_at"}
	categoryProps = []string{"id", "title", "slug", "type", "metadata"}
)

// entity is the closed set of object variants the accessor hands out. Each
// variant fixes its own type, projection and relation depth, so a query for
// it cannot be built with the wrong expansion.
type entity interface {
	Category | Tournament | GamePost

	kind() Kind
	props() []string
	expansion() cosmic.Depth
	header() Object
	qualityIssues() []string
}

func (Category) kind() Kind                { return KindCategory }
func (Category) props() []string           { return categoryProps }
func (Category) expansion() cosmic.Depth   { return cosmic.DepthNone }
func (c Category) header() Object          { return c.Object }
func (Tournament) kind() Kind              { return KindTournament }
func (Tournament) props() []string         { return postProps }
func (Tournament) expansion() cosmic.Depth { return cosmic.DepthOne }
func (t Tournament) header() Object        { return t.Object }
func (GamePost) kind() Kind                { return KindGamePost }
func (GamePost) props() []string           { return postProps }
func (GamePost) expansion() cosmic.Depth   { return cosmic.DepthOne }
func (p GamePost) header() Object          { return p.Object }

func (c Category) qualityIssues() []string {
	var issues []string
	if c.Metadata.Name == "" {
		issues = append(issues, "missing name, showing title")
	}
	if c.Metadata.Color == nil || *c.Metadata.Color == "" {
		issues = append(issues, "missing color, using "+DefaultCategoryColor)
	}
	return issues
}

func (t Tournament) qualityIssues() []string {
	var issues []string
	if t.Metadata.StartDate == "" {
		issues = append(issues, "missing start_date, sorting as epoch")
	}
	if t.Metadata.Status.Key == "" {
		issues = append(issues, "missing status")
	} else if !t.Metadata.Status.Key.Valid() {
		issues = append(issues, fmt.Sprintf("unknown status %q, showing as is", t.Metadata.Status.Key))
	} else if t.Metadata.Status.Value == "" {
		issues = append(issues, "status has no label, showing key")
	}
	return issues
}

func (p GamePost) qualityIssues() []string {
	var issues []string
	if p.Metadata.PostType.Key == "" {
		issues = append(issues, "missing post_type")
	} else if !p.Metadata.PostType.Key.Valid() {
		issues = append(issues, fmt.Sprintf("unknown post_type %q, showing as is", p.Metadata.PostType.Key))
	} else if p.Metadata.PostType.Value == "" {
		issues = append(issues, "post_type has no label, showing key")
	}
	if p.Metadata.Category != nil {
		for _, issue := range p.Metadata.Category.qualityIssues() {
			issues = append(issues, "category "+p.Metadata.Category.Slug+": "+issue)
		}
	}
	return issues
}

func queryFor[T entity]() cosmic.Query {
	var zero T
	return cosmic.Query{
		Type:  string(zero.kind()),
		Props: zero.props(),
		Depth: zero.expansion(),
	}
}

func decode[T entity](raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("failed to decode %s object: %w", v.kind(), err)
	}
	got, known := ParseKind(string(v.header().Type))
	if !known {
		return v, fmt.Errorf("%w: unknown type %q (id %s)", ErrUnexpectedKind, v.header().Type, v.header().ID)
	}
	if got != v.kind() {
		return v, fmt.Errorf("%w: got %q, want %q (id %s)", ErrUnexpectedKind, got, v.kind(), v.header().ID)
	}
	for _, issue := range v.qualityIssues() {
		slog.Warn("content data quality", "type", v.kind(), "slug", v.header().Slug, "issue", issue)
	}
	return v, nil
}

// decodeList decodes every object, dropping those of a foreign type.
func decodeList[T entity](raw []json.RawMessage) ([]T, error) {
	items := make([]T, 0, len(raw))
	for _, r := range raw {
		v, err := decode[T](r)
		if errors.Is(err, ErrUnexpectedKind) {
			slog.Warn("quarantined content object", "error", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}
