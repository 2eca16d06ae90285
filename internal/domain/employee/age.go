package employee

import (
	"fmt"
	"time"
)

// Age returns a human-readable age band for an ISO (YYYY-MM-DD) birth date.
// Malformed input yields an empty string.
func Age(dob string) string {
	return AgeAt(dob, time.Now())
}

// AgeAt is Age anchored to an explicit reference day.
//
// The bands depend on the exact calendar difference between the two dates:
//   - under a month: "Newborn" for day one, otherwise "<n> days"
//   - under a year: months, rounded up past the 15th day
//   - exactly one year: "1 year"
//   - otherwise: "<n> years"
func AgeAt(dob string, today time.Time) string {
	birth, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return ""
	}
	now := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	years, months, days := calendarDiff(birth, now)

	switch {
	case years == 0 && months == 0 && days <= 1:
		return "Newborn"
	case years == 0 && months == 0:
		return fmt.Sprintf("%d days", days)
	case years == 0 && days > 15:
		return fmt.Sprintf("%d months", months+1)
	case years == 0:
		return fmt.Sprintf("%d months", months)
	case years == 1 && months == 0 && days == 0:
		return "1 year"
	default:
		return fmt.Sprintf("%d years", years)
	}
}

// calendarDiff returns the difference between two dates as whole years,
// months and leftover days. Month arithmetic clamps to the end of shorter
// months, so Jan 31 -> Feb 28 counts as one month.
func calendarDiff(from, to time.Time) (years, months, days int) {
	total := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	anchor := addMonthsClamped(from, total)
	if anchor.After(to) {
		total--
		anchor = addMonthsClamped(from, total)
	}
	days = int(to.Sub(anchor) / (24 * time.Hour))
	years = total / 12
	months = total % 12
	return years, months, days
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year := t.Year()
	month := int(t.Month()) - 1 + months
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}
	day := t.Day()
	if last := daysIn(year, time.Month(month+1)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
