package views

import (
	"strings"
	"testing"

	"github.com/AdamBeresnev/game-hub/internal/content"
	"github.com/AdamBeresnev/game-hub/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	long := strings.Repeat("x", 200)
	exact := strings.Repeat("y", ExcerptLength)

	tests := []struct {
		name string
		html string
		want string
	}{
		{"strips tags", "<p>Hello <strong>world</strong></p>", "Hello world"},
		{"collapses whitespace", "<p>a\n\n   b</p>", "a b"},
		{"decodes entities", "<p>Tom &amp; Jerry</p>", "Tom & Jerry"},
		{"empty", "", ""},
		{"plain text", "  just text  ", "just text"},
		{"truncates", long, strings.Repeat("x", ExcerptLength) + "..."},
		{"exact length kept", exact, exact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Excerpt(tt.html, ExcerptLength))
		})
	}
}

func TestExcerptCountsRunes(t *testing.T) {
	assert.Equal(t, "éé...", Excerpt("ééé", 2))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Apr 12, 2025", FormatDate("2025-04-12"))
	assert.Equal(t, "Feb 10, 2025", FormatDate("2025-02-10T14:30:00Z"))
	assert.Equal(t, "sometime soon", FormatDate("sometime soon"))
	assert.Equal(t, "", FormatDate(""))
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "Apr 12, 2025", DateRange("2025-04-12", nil))
	assert.Equal(t, "Apr 12, 2025", DateRange("2025-04-12", utils.Ptr("")))
	assert.Equal(t, "Apr 12, 2025 - Apr 27, 2025", DateRange("2025-04-12", utils.Ptr("2025-04-27")))
}

func TestStatusClasses(t *testing.T) {
	assert.Equal(t, "bg-red-500 text-white animate-pulse", StatusClasses(content.StatusLive))
	assert.Equal(t, "bg-blue-500 text-white", StatusClasses(content.StatusUpcoming))
	assert.Equal(t, "bg-gray-500 text-white", StatusClasses(content.StatusCompleted))
	assert.Equal(t, "bg-gray-500 text-white", StatusClasses("postponed"))
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "", ImageURL(nil, 600, 384))
	assert.Equal(t,
		"https://imgix.cosmicjs.com/a.jpg?w=600&h=384&fit=crop&auto=format,compress",
		ImageURL(&content.Image{URL: "https://cdn.cosmicjs.com/a.jpg", ImgixURL: "https://imgix.cosmicjs.com/a.jpg"}, 600, 384))
	assert.Equal(t, "https://cdn.cosmicjs.com/a.jpg", ImageURL(&content.Image{URL: "https://cdn.cosmicjs.com/a.jpg"}, 600, 384))
}

func TestCategoryColor(t *testing.T) {
	withColor := func(c string) content.Category {
		var cat content.Category
		cat.Metadata.Color = &c
		return cat
	}

	assert.Equal(t, "#22c55e", CategoryColor(withColor("#22c55e")))
	assert.Equal(t, "#fff", CategoryColor(withColor("#fff")))
	assert.Equal(t, content.DefaultCategoryColor, CategoryColor(content.Category{}))
	assert.Equal(t, content.DefaultCategoryColor, CategoryColor(withColor("red; background: url(x)")))
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/posts/best-landing-spots", PostPath("best-landing-spots"))
	assert.Equal(t, "/tournaments/a%2Fb", TournamentPath("a/b"))
	assert.Equal(t, "/categories/creative", CategoryPath("creative"))
	assert.Equal(t, "/types/guide", PostTypePath(content.PostGuide))
}
