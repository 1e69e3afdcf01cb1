package views

import (
	"strconv"
	"strings"

	"github.com/AdamBeresnev/game-hub/internal/content"
	"github.com/AdamBeresnev/game-hub/internal/service"
	"github.com/AdamBeresnev/game-hub/internal/utils"
	"github.com/a-h/templ"
)

var navLinks = []struct{ path, label string }{
	{"/", "Home"},
	{"/posts", "Posts"},
	{"/tournaments", "Tournaments"},
}

type BadgeSize string

const (
	BadgeSmall  BadgeSize = "sm"
	BadgeMedium BadgeSize = "md"
	BadgeLarge  BadgeSize = "lg"
)

var badgeSizes = map[BadgeSize]string{
	BadgeSmall:  "px-2 py-1 text-xs",
	BadgeMedium: "px-3 py-1 text-sm",
	BadgeLarge:  "px-4 py-2 text-base",
}

func (s BadgeSize) classes() string {
	if c, ok := badgeSizes[s]; ok {
		return c
	}
	return badgeSizes[BadgeMedium]
}

const (
	filterBase     = "px-6 py-3 rounded-lg font-semibold transition-all duration-200 hover:scale-105"
	filterInactive = "bg-white text-foreground hover:bg-muted/50 border border-border"
)

func filterClasses(active bool, extra string) string {
	if active {
		return classes(filterBase, extra, "shadow-lg active")
	}
	return classes(filterBase, extra, filterInactive)
}

func classes(names ...string) string {
	return strings.Join(strings.Fields(strings.Join(names, " ")), " ")
}

// styleAttr carries an inline style. Colours reach it through CategoryColor.
func styleAttr(style string) templ.Attributes {
	return templ.Attributes{"style": style}
}

func heroLabel(postType content.SelectOption[content.PostType]) string {
	if postType.Key == "" {
		return "Featured"
	}
	return postType.Label()
}

func countLabel(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

func categorySubtitle(data *service.CategoryData) string {
	if d := utils.OrZero(data.Category.Metadata.Description); d != "" {
		return d
	}
	return countLabel(len(data.Posts), "post")
}

// postTypeTitle is the bucket's label for the type, or the raw key when no
// post carries one.
func postTypeTitle(data *service.PostTypeData) string {
	if len(data.Posts) > 0 {
		return data.Posts[0].Metadata.PostType.Label()
	}
	return string(data.PostType)
}
