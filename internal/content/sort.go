package content

import "slices"

// SortPostsByNewest orders posts by creation time, newest first. Posts with
// a missing or unparseable timestamp count as the epoch; ties keep their
// relative order.
func SortPostsByNewest(posts []GamePost) {
	slices.SortStableFunc(posts, func(a, b GamePost) int {
		return b.Created().Compare(a.Created())
	})
}

// SortTournamentsByStart orders tournaments by start date, earliest first,
// with the same epoch and tie rules as SortPostsByNewest.
func SortTournamentsByStart(tournaments []Tournament) {
	slices.SortStableFunc(tournaments, func(a, b Tournament) int {
		return a.Starts().Compare(b.Starts())
	})
}

// Upcoming keeps the tournaments whose status key is upcoming, in order, up
// to limit (no limit when limit <= 0).
func Upcoming(tournaments []Tournament, limit int) []Tournament {
	out := make([]Tournament, 0, len(tournaments))
	for _, t := range tournaments {
		if t.Metadata.Status.Key != StatusUpcoming {
			continue
		}
		out = append(out, t)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
