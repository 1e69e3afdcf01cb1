package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/AdamBeresnev/game-hub/internal/content"
	"github.com/AdamBeresnev/game-hub/internal/service"
	"github.com/AdamBeresnev/game-hub/internal/utils"
	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDoc(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func testCategory(slug, name, color string) content.Category {
	c := content.Category{Object: content.Object{ID: "id-" + slug, Slug: slug, Title: name, Type: content.KindCategory}}
	c.Metadata.Name = name
	if color != "" {
		c.Metadata.Color = utils.Ptr(color)
	}
	return c
}

func testPost(slug, title string, category *content.Category) content.GamePost {
	p := content.GamePost{Object: content.Object{ID: "id-" + slug, Slug: slug, Title: title, Type: content.KindGamePost, CreatedAt: "2025-02-10T14:30:00Z"}}
	p.Metadata.Title = title
	p.Metadata.Content = "<p>Body of " + title + "</p>"
	p.Metadata.Category = category
	p.Metadata.PostType = content.SelectOption[content.PostType]{Key: content.PostGuide, Value: "Guide"}
	return p
}

func testTournament(slug string, status content.TournamentStatus) content.Tournament {
	tr := content.Tournament{Object: content.Object{ID: "id-" + slug, Slug: slug, Title: slug, Type: content.KindTournament}}
	tr.Metadata.TournamentName = "Cup " + slug
	tr.Metadata.StartDate = "2025-03-06"
	tr.Metadata.Status = content.SelectOption[content.TournamentStatus]{Key: status}
	return tr
}

func TestHomePage(t *testing.T) {
	creative := testCategory("creative", "Creative", "#22c55e")
	lead := testPost("lead", "Lead Story", &creative)
	lead.Metadata.Featured = true
	lead.Metadata.FeaturedImage = &content.Image{ImgixURL: "https://imgix.cosmicjs.com/lead.jpg"}

	data := &service.HomeData{
		Categories: []content.Category{creative},
		Featured:   &lead,
		Recent:     []content.GamePost{lead, testPost("second", "Second", nil)},
		Upcoming:   []content.Tournament{testTournament("solo", content.StatusUpcoming)},
	}
	doc := renderDoc(t, HomePage(data))

	assert.Contains(t, doc.Find("title").Text(), SiteName)
	assert.Equal(t, "lead", doc.Find(".hero").AttrOr("data-slug", ""))
	src, _ := doc.Find(".hero img").Attr("src")
	assert.Equal(t, "https://imgix.cosmicjs.com/lead.jpg?w=1400&h=800&fit=crop&auto=format,compress", src)

	assert.Equal(t, 2, doc.Find(".latest-posts .post-card").Length())
	assert.Equal(t, 1, doc.Find(".latest-posts .featured-badge").Length())
	assert.Equal(t, 1, doc.Find(".upcoming-tournaments .tournament-card").Length())
	assert.Equal(t, "All Posts", doc.Find(".category-filter a.active").Text())
	assert.Equal(t, "/categories/creative", doc.Find("nav a[href^='/categories/']").AttrOr("href", ""))
}

func TestHomePageWithoutContent(t *testing.T) {
	doc := renderDoc(t, HomePage(&service.HomeData{}))

	assert.Equal(t, 0, doc.Find(".hero").Length())
	assert.Equal(t, 0, doc.Find(".upcoming-tournaments").Length())
	assert.Equal(t, "No posts available at the moment.", doc.Find(".latest-posts .empty").Text())
}

func TestPostCardEscapesText(t *testing.T) {
	p := testPost("x", `<script>alert("x")</script>`, nil)
	p.Metadata.Content = "<p>Plain &lt;b&gt; text</p>"
	doc := renderDoc(t, PostCard(p, true))

	assert.Equal(t, `<script>alert("x")</script>`, doc.Find("h3").Text())
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, "Guide", doc.Find(".post-type").Text())
	assert.Equal(t, "Plain <b> text", doc.Find(".excerpt").Text())
}

func TestPostCardCategory(t *testing.T) {
	uncoloured := testCategory("patch-notes", "Patch Notes", "")
	p := testPost("hotfix", "Hotfix", &uncoloured)

	doc := renderDoc(t, PostCard(p, true))
	badge := doc.Find(".badge")
	assert.Equal(t, "Patch Notes", badge.Text())
	assert.Contains(t, badge.AttrOr("style", ""), content.DefaultCategoryColor)

	doc = renderDoc(t, PostCard(p, false))
	assert.Equal(t, 0, doc.Find(".badge").Length())
}

func TestCategoryBadgeAttributes(t *testing.T) {
	doc := renderDoc(t, CategoryBadge(testCategory("creative", "Creative", "#22c55e"), BadgeLarge))
	badge := doc.Find("span.badge")
	require.Equal(t, 1, badge.Length())
	assert.True(t, badge.HasClass("px-4"))
	assert.Contains(t, badge.AttrOr("style", ""), "#22c55e")

	doc = renderDoc(t, CategoryBadge(testCategory("odd", `Odd" onclick="x`, `red;background:url(x)`), BadgeSize("xl")))
	badge = doc.Find("span.badge")
	assert.True(t, badge.HasClass("px-3"), "unknown sizes fall back to medium")
	assert.Contains(t, badge.AttrOr("style", ""), content.DefaultCategoryColor)
	assert.NotContains(t, badge.AttrOr("style", ""), "url(")
	assert.Empty(t, badge.AttrOr("onclick", ""))
	assert.Equal(t, `Odd" onclick="x`, badge.Text())
}

func TestTournamentCard(t *testing.T) {
	tr := testTournament("major", content.StatusLive)
	tr.Metadata.EndDate = utils.Ptr("2025-03-08")
	tr.Metadata.PrizePool = utils.Ptr("$50,000")
	tr.Metadata.TournamentImage = &content.Image{ImgixURL: "https://imgix.cosmicjs.com/major.jpg"}
	tr.Metadata.Status.Value = "Live"

	doc := renderDoc(t, TournamentCard(tr))
	assert.Equal(t, "Cup major", doc.Find("h3").Text())
	assert.Equal(t, "Mar 6, 2025 - Mar 8, 2025", doc.Find(".dates").Text())
	assert.Equal(t, "$50,000", doc.Find(".prize-pool").Text())
	status := doc.Find(".status")
	assert.Equal(t, "Live", status.Text())
	assert.True(t, status.HasClass("animate-pulse"))
	assert.Equal(t, "/tournaments/major", doc.Find("a").AttrOr("href", ""))
}

func TestPostPageRendersContentHTML(t *testing.T) {
	weapons := testCategory("weapons", "Weapons", "#ef4444")
	p := testPost("shotguns", "Shotguns", &weapons)
	p.Metadata.Content = "<h2>Tier list</h2><ul><li>Pump</li></ul>"

	doc := renderDoc(t, PostPage([]content.Category{weapons}, p))
	assert.Equal(t, "Tier list", doc.Find(".post-content h2").Text())
	assert.Equal(t, 1, doc.Find(".post-content li").Length())
	assert.Equal(t, "Feb 10, 2025", doc.Find(".published").Text())
	assert.Equal(t, "/types/guide", doc.Find("a.post-type").AttrOr("href", ""))
}

func TestCategoryPageMarksActiveFilter(t *testing.T) {
	maps := testCategory("maps", "Maps", "#3b82f6")
	weapons := testCategory("weapons", "Weapons", "")
	data := &service.CategoryData{
		Categories: []content.Category{maps, weapons},
		Category:   &weapons,
	}

	doc := renderDoc(t, CategoryPage(data))
	active := doc.Find(".category-filter a.active")
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "/categories/weapons", active.AttrOr("href", ""))
	assert.Equal(t, "No posts in this category yet.", doc.Find(".empty").Text())
}

func TestPostTypePageTitle(t *testing.T) {
	data := &service.PostTypeData{PostType: content.PostGuide, Posts: []content.GamePost{testPost("a", "A", nil)}}
	doc := renderDoc(t, PostTypePage(data))
	assert.Equal(t, "Guide", doc.Find("h2").First().Text())

	doc = renderDoc(t, PostTypePage(&service.PostTypeData{PostType: content.PostReview}))
	assert.Equal(t, "review", doc.Find("h2").First().Text())
}

func TestNotFoundPage(t *testing.T) {
	doc := renderDoc(t, NotFoundPage(nil, "Post not found"))
	assert.Equal(t, "Post not found", doc.Find(".not-found p").Text())
}
