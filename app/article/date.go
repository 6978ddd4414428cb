package article

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Date is a calendar date with time-of-day and time zone discarded.
// Freshness comparisons are date-granular on purpose: the scraping host
// and the source site rarely agree on clocks, and a publish timestamp
// scraped off a page is never better than day-accurate anyway.
// The zero value means the date is unknown.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Fixed layouts tried before falling back to the heuristic parser:
// ISO 8601 forms, the RFC 822/1123 family used by syndication feeds,
// and the human-readable month-name forms blogs print next to headings.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// NormalizeDate parses a raw date string into a calendar date. Failure
// is an expected outcome given real-world markup variance, so it is
// reported through the second return value rather than an error.
func NormalizeDate(raw string) (Date, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return DateOf(t), true
		}
	}

	// Catch-all for the formats the fixed layouts miss.
	if t, err := dateparse.ParseAny(raw); err == nil {
		return DateOf(t), true
	}

	return Date{}, false
}

var (
	// "Nov 24, 2025", "November 24 2025"
	monthDayYearRe = regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}`)
	// "6 January 2025", or "6 January" with the year implied
	dayMonthRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(January|February|March|April|May|June|July|August|September|October|November|December)\b(?:\s+(\d{4}))?`)
)

// FindDate locates a human-readable date inside free text, such as the
// publish date printed near an article heading. Year-less day-first
// forms ("6 January") assume the current year.
func FindDate(text string) (Date, bool) {
	return findDate(text, time.Now())
}

func findDate(text string, now time.Time) (Date, bool) {
	if m := monthDayYearRe.FindString(text); m != "" {
		if d, ok := NormalizeDate(m); ok {
			return d, true
		}
	}

	if m := dayMonthRe.FindStringSubmatch(text); m != nil {
		raw := m[0]
		if m[3] == "" {
			raw = fmt.Sprintf("%s %s %d", m[1], m[2], now.Year())
		}
		if d, ok := NormalizeDate(raw); ok {
			return d, true
		}
	}

	return Date{}, false
}
