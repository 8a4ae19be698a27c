package format

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
)

// RelativeDate labels a timestamp relative to now. Whole days elapsed are
// round(|now - ts| / 24h); the mapping is a fixed contract:
//
//	0      -> "Today"
//	1      -> "Yesterday"
//	2..7   -> "N days ago"
//	beyond -> the locale's absolute date
func RelativeDate(ts, now time.Time, locale string) string {
	days := int(math.Round(math.Abs(now.Sub(ts).Hours()) / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return AbsoluteDate(ts, locale)
	}
}

// AbsoluteDate renders day/month/year ordered per the locale's region.
// Month-first regions (the US) get month/day/year; everyone else gets the
// day-first form.
func AbsoluteDate(ts time.Time, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return ts.Format("02/01/2006")
	}

	if region, _ := tag.Region(); region.String() == "US" {
		return ts.Format("1/2/2006")
	}
	return ts.Format("02/01/2006")
}
