package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"kireiroutine/internal/catalog"
	"kireiroutine/internal/datekey"
	"kireiroutine/internal/logger"
)

type RepeatType string

const (
	RepeatOnce       RepeatType = "once"
	RepeatWeekly     RepeatType = "weekly"
	RepeatBiWeekly   RepeatType = "biweekly"
	RepeatMonthly    RepeatType = "monthly"
	RepeatQuarterly  RepeatType = "quarterly"
	RepeatSemiAnnual RepeatType = "semiannual"
	RepeatYearly     RepeatType = "yearly"
)

var RepeatTypes = []RepeatType{
	RepeatOnce, RepeatWeekly, RepeatBiWeekly, RepeatMonthly,
	RepeatQuarterly, RepeatSemiAnnual, RepeatYearly,
}

var ErrInvalidRepeat = errors.New("invalid repeat type")

func ParseRepeat(input string) (RepeatType, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "bi-weekly":
		s = string(RepeatBiWeekly)
	case "semi-annual":
		s = string(RepeatSemiAnnual)
	case "annual":
		s = string(RepeatYearly)
	}
	r := RepeatType(s)
	for _, known := range RepeatTypes {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRepeat, input)
}

// RepeatFor maps a catalog frequency to its repeat type.
func RepeatFor(f catalog.Frequency) RepeatType {
	switch f {
	case catalog.Weekly:
		return RepeatWeekly
	case catalog.BiWeekly:
		return RepeatBiWeekly
	case catalog.Monthly:
		return RepeatMonthly
	case catalog.Quarterly:
		return RepeatQuarterly
	case catalog.SemiAnnual:
		return RepeatSemiAnnual
	case catalog.Annual:
		return RepeatYearly
	default:
		return RepeatOnce
	}
}

func (r RepeatType) stepDays() int {
	switch r {
	case RepeatWeekly:
		return 7
	case RepeatBiWeekly:
		return 14
	default:
		return 0
	}
}

func (r RepeatType) stepMonths() int {
	switch r {
	case RepeatMonthly:
		return 1
	case RepeatQuarterly:
		return 3
	case RepeatSemiAnnual:
		return 6
	case RepeatYearly:
		return 12
	default:
		return 0
	}
}

// Occurrences lists every date r produces from base, base first, up to and
// including base plus one year. Month steps keep base's day of month and
// clamp it to the target month's length, so a series seeded on the 31st
// lands on Feb 29 and then returns to Mar 31.
func Occurrences(base string, r RepeatType) ([]string, error) {
	start, err := datekey.Parse(base)
	if err != nil {
		return nil, err
	}
	if r == RepeatOnce {
		return []string{base}, nil
	}
	end := start.AddDate(1, 0, 0)

	var out []string
	if n := r.stepDays(); n > 0 {
		for d := start; !d.After(end); d = d.AddDate(0, 0, n) {
			out = append(out, datekey.Format(d))
		}
		return out, nil
	}
	if n := r.stepMonths(); n > 0 {
		for i := 0; ; i++ {
			d := datekey.MonthDay(start.Year(), start.Month()+time.Month(i*n), start.Day())
			if d.After(end) {
				break
			}
			out = append(out, datekey.Format(d))
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidRepeat, r)
}

// Apply writes ids onto every occurrence in one mutation. The seed date is
// replaced so re-running the same series does not pile up leftovers there;
// later dates are merged so they keep whatever else is planned on them.
// On invalid input m is returned unchanged together with the error.
func (s *Store) Apply(m Map, base string, r RepeatType, ids []string) (Map, error) {
	dates, err := Occurrences(base, r)
	if err != nil {
		return m, err
	}
	ids = dedupe(ids)
	logger.Debug("recurrence: %s from %s, %d tasks on %d dates", r, base, len(ids), len(dates))
	return s.Mutate(m, func(d Map) {
		for i, date := range dates {
			if i == 0 {
				d.Replace(date, ids)
				continue
			}
			d.Merge(date, ids)
		}
	}), nil
}
