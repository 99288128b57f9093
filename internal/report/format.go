package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	frenchDays = map[time.Weekday]string{
		time.Monday:    "lundi",
		time.Tuesday:   "mardi",
		time.Wednesday: "mercredi",
		time.Thursday:  "jeudi",
		time.Friday:    "vendredi",
		time.Saturday:  "samedi",
		time.Sunday:    "dimanche",
	}
	frenchMonths = []string{
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	}
)

// FormatDateFR formats t as a long French date, e.g. "Lundi 3 mars 2025".
func FormatDateFR(t time.Time) string {
	day := frenchDays[t.Weekday()]
	day = strings.ToUpper(day[:1]) + day[1:]
	return fmt.Sprintf("%s %d %s %d", day, t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// FormatCardValue renders numbers rounded to an integer followed by suffix.
// Anything that is not a number is rendered verbatim.
func FormatCardValue(value any, suffix string) string {
	switch v := value.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.0f%s", v, suffix)
	case float32:
		return fmt.Sprintf("%.0f%s", v, suffix)
	case int:
		return strconv.Itoa(v) + suffix
	case int64:
		return strconv.FormatInt(v, 10) + suffix
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return fmt.Sprintf("%.0f%s", f, suffix)
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}
