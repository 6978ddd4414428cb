package article

import "time"

// FilterFresh keeps articles whose publish date is known and falls on or
// after the cutoff (date-only, inclusive). Articles with an unknown date
// are dropped: an article that cannot be confirmed fresh must not turn
// into a notification.
func FilterFresh(articles []Article, cutoff Date) []Article {
	fresh := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.Published.IsZero() || a.Published.Before(cutoff) {
			continue
		}
		fresh = append(fresh, a)
	}
	return fresh
}

// DefaultCutoff is the start of yesterday in UTC. Admitting anything
// published yesterday or today absorbs run-time jitter and time-zone
// skew between the scraping host and the source site.
func DefaultCutoff(now time.Time) Date {
	return DateOf(now.UTC().AddDate(0, 0, -1))
}
