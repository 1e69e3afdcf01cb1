package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/AdamBeresnev/game-hub/internal/utils"
)

// Kind is the bucket's object type discriminator.
type Kind string

const (
	KindGamePost   Kind = "game-posts"
	KindTournament Kind = "tournaments"
	KindCategory   Kind = "categories"
)

// ParseKind reports whether s names one of the object types this site reads.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindGamePost, KindTournament, KindCategory:
		return k, true
	}
	return "", false
}

type PostType string

const (
	PostNews   PostType = "news"
	PostGuide  PostType = "guide"
	PostReview PostType = "review"
	PostUpdate PostType = "update"
)

func (p PostType) Valid() bool {
	switch p {
	case PostNews, PostGuide, PostReview, PostUpdate:
		return true
	}
	return false
}

type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "upcoming"
	StatusLive      TournamentStatus = "live"
	StatusCompleted TournamentStatus = "completed"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusCompleted:
		return true
	}
	return false
}

// DefaultCategoryColor is shown for categories without a colour of their own.
const DefaultCategoryColor = "#7c3aed"

// Object holds the fields every bucket object carries.
type Object struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Type       Kind   `json:"type"`
	CreatedAt  string `json:"created_at,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
}

func (o Object) Created() time.Time {
	return ParseTimestamp(o.CreatedAt)
}

type Image struct {
	URL      string `json:"url"`
	ImgixURL string `json:"imgix_url"`
}

// SelectOption is a dropdown value: Key is canonical, Value is for display.
type SelectOption[K ~string] struct {
	Key   K      `json:"key"`
	Value string `json:"value"`
}

// Label returns the display value, or the key when the bucket sent none.
func (o SelectOption[K]) Label() string {
	if o.Value == "" {
		return string(o.Key)
	}
	return o.Value
}

type Category struct {
	Object
	Metadata CategoryMetadata `json:"metadata"`
}

type CategoryMetadata struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

func (c Category) DisplayName() string {
	if c.Metadata.Name != "" {
		return c.Metadata.Name
	}
	return c.Title
}

func (c Category) DisplayColor() string {
	return utils.OrDefault(c.Metadata.Color, DefaultCategoryColor)
}

type Tournament struct {
	Object
	Metadata TournamentMetadata `json:"metadata"`
}

type TournamentMetadata struct {
	TournamentName  string                         `json:"tournament_name"`
	Description     *string                        `json:"description,omitempty"`
	StartDate       string                         `json:"start_date"`
	EndDate         *string                        `json:"end_date,omitempty"`
	PrizePool       *string                        `json:"prize_pool,omitempty"`
	TournamentImage *Image                         `json:"tournament_image,omitempty"`
	Status          SelectOption[TournamentStatus] `json:"status"`
}

func (t Tournament) DisplayName() string {
	if t.Metadata.TournamentName != "" {
		return t.Metadata.TournamentName
	}
	return t.Title
}

func (t Tournament) Starts() time.Time {
	return ParseTimestamp(t.Metadata.StartDate)
}

type GamePost struct {
	Object
	Metadata GamePostMetadata `json:"metadata"`
}

type GamePostMetadata struct {
	Title         string                 `json:"title"`
	Content       string                 `json:"content"`
	FeaturedImage *Image                 `json:"featured_image,omitempty"`
	Category      *Category              `json:"category,omitempty"`
	PostType      SelectOption[PostType] `json:"post_type"`
	Featured      bool                   `json:"featured"`
}

// UnmarshalJSON accepts the empty string and null the bucket sends for an
// unset relation. A bare ID string means the relation was not expanded and is
// rejected.
func (m *GamePostMetadata) UnmarshalJSON(data []byte) error {
	type plain GamePostMetadata
	var aux struct {
		plain
		Category json.RawMessage `json:"category,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = GamePostMetadata(aux.plain)

	raw := bytes.TrimSpace(aux.Category)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte(`""`)) {
		m.Category = nil
		return nil
	}
	if raw[0] != '{' {
		return fmt.Errorf("metadata.category is not an expanded object: %s", raw)
	}
	var c Category
	if err := json.Unmarshal(raw, &c); err != nil {
		return fmt.Errorf("metadata.category: %w", err)
	}
	m.Category = utils.Ptr(c)
	return nil
}

var epoch = time.Unix(0, 0).UTC()

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp returns the instant s names, or the Unix epoch when s is
// empty or unparseable.
func ParseTimestamp(s string) time.Time {
	if t, ok := LookupTimestamp(s); ok {
		return t
	}
	return epoch
}

// LookupTimestamp parses s in any of the layouts the bucket is known to emit.
func LookupTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
