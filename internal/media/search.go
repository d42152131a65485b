package media

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// TwitterSearchQuery builds a Twitter search string for term restricted to a
// single day. Twitter's until: is exclusive, so it is set to the next day.
// A missing or unparsable date leaves the term unrestricted.
func TwitterSearchQuery(term, date string) string {
	t := strings.TrimSpace(term)
	if t == "" {
		return ""
	}

	d := strings.TrimSpace(date)
	if d == "" {
		return t
	}
	day, err := time.Parse(dateLayout, d)
	if err != nil {
		return t
	}

	return t + " since:" + day.Format(dateLayout) + " until:" + day.AddDate(0, 0, 1).Format(dateLayout)
}
