package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// periodLayouts are tried in order for plain date labels.
var periodLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParsePeriod converts a source period label into a calendar date. Quarterly
// labels like "2020-Q1" map to the first day of the quarter. Anything else
// must match one of the ISO layouts.
func ParsePeriod(label string) (time.Time, error) {
	s := strings.TrimSpace(label)
	if s == "" {
		return time.Time{}, eris.New("empty period label")
	}

	if t, ok := parseQuarter(s); ok {
		return t, nil
	}

	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, eris.Errorf("unparseable period label %q", label)
}

// parseQuarter handles "YYYY-Qn" and "YYYYQn" labels.
func parseQuarter(s string) (time.Time, bool) {
	i := strings.IndexAny(s, "Qq")
	if i < 4 {
		return time.Time{}, false
	}

	yearPart := strings.TrimSuffix(s[:i], "-")
	if len(yearPart) != 4 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return time.Time{}, false
	}

	quarter, err := strconv.Atoi(s[i+1:])
	if err != nil || quarter < 1 || quarter > 4 {
		return time.Time{}, false
	}

	month := time.Month((quarter-1)*3 + 1)
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}
