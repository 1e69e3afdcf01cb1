package views

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/AdamBeresnev/game-hub/internal/content"
	"github.com/PuerkitoBio/goquery"
)

const (
	SiteName      = "Fortnite Gaming Hub"
	ExcerptLength = 150
	HeroExcerpt   = 200
)

// Excerpt returns the text of an HTML fragment with whitespace collapsed,
// cut to maxLength runes with "..." appended when longer.
func Excerpt(html string, maxLength int) string {
	text := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > maxLength {
		return string(runes[:maxLength]) + "..."
	}
	return text
}

// FormatDate renders a bucket timestamp as "Jan 2, 2006", or returns it
// unchanged when it does not parse.
func FormatDate(raw string) string {
	if t, ok := content.LookupTimestamp(raw); ok {
		return t.Format("Jan 2, 2006")
	}
	return raw
}

func DateRange(start string, end *string) string {
	if end == nil || *end == "" {
		return FormatDate(start)
	}
	return FormatDate(start) + " - " + FormatDate(*end)
}

func StatusClasses(status content.TournamentStatus) string {
	switch status {
	case content.StatusLive:
		return "bg-red-500 text-white animate-pulse"
	case content.StatusUpcoming:
		return "bg-blue-500 text-white"
	default:
		return "bg-gray-500 text-white"
	}
}

// ImageURL asks imgix for a cropped, compressed rendition. Images without an
// imgix URL are served as uploaded.
func ImageURL(img *content.Image, width, height int) string {
	if img == nil {
		return ""
	}
	if img.ImgixURL == "" {
		return img.URL
	}
	return fmt.Sprintf("%s?w=%d&h=%d&fit=crop&auto=format,compress", img.ImgixURL, width, height)
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// CategoryColor is the category's colour if it is a hex colour, since it ends
// up in a style attribute.
func CategoryColor(c content.Category) string {
	if color := strings.TrimSpace(c.DisplayColor()); hexColor.MatchString(color) {
		return color
	}
	return content.DefaultCategoryColor
}

func PostPath(slug string) string {
	return "/posts/" + url.PathEscape(slug)
}

func TournamentPath(slug string) string {
	return "/tournaments/" + url.PathEscape(slug)
}

func CategoryPath(slug string) string {
	return "/categories/" + url.PathEscape(slug)
}

func PostTypePath(postType content.PostType) string {
	return "/types/" + url.PathEscape(string(postType))
}
