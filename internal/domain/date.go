package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// lunarPrefix marks a date spec expressed in the lunar calendar,
// e.g. "r1998-03-12" for lunar year 1998, month 3, day 12.
const lunarPrefix = "r"

// LunarConverter maps a lunar calendar date to its solar equivalent.
type LunarConverter interface {
	ToSolar(year, month, day int) (time.Time, error)
}

// DaysBetween returns b-a in whole calendar days. The result is negative
// when b precedes a; callers decide which ordering they mean.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// ParseDateSpec resolves a configured date string to a solar calendar date.
// A plain spec must be strict YYYY-MM-DD; a spec with the lunar prefix is
// split into year-month-day and converted through the given converter.
func ParseDateSpec(spec string, lunar LunarConverter) (time.Time, error) {
	if strings.HasPrefix(spec, lunarPrefix) {
		parts := strings.Split(strings.TrimPrefix(spec, lunarPrefix), "-")
		if len(parts) != 3 {
			return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, spec)
		}

		nums := make([]int, 3)
		for i, part := range parts {
			n, err := strconv.Atoi(part)
			if err != nil {
				return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, spec)
			}
			nums[i] = n
		}

		if lunar == nil {
			return time.Time{}, fmt.Errorf("%w: %q: no lunar converter configured", ErrMalformedDate, spec)
		}

		solar, err := lunar.ToSolar(nums[0], nums[1], nums[2])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q: %v", ErrMalformedDate, spec, err)
		}
		return solar, nil
	}

	parsed, err := time.Parse("2006-01-02", spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, spec)
	}
	return parsed, nil
}

// NextOccurrence returns the next anniversary of birth on or after today.
// A Feb 29 birth date lands on Mar 1 in non-leap target years (time.Date
// normalization).
func NextOccurrence(birth, today time.Time) time.Time {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	next := time.Date(today.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	}
	return next
}

var weekdayNames = [7]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

// WeekdayName returns the display name for t's day of week, Sunday first.
func WeekdayName(t time.Time) string {
	return weekdayNames[int(t.Weekday())]
}
