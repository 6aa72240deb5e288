package model

import "time"

// WeekBoundaryDay is the weekday each fantasy week rolls over on. Yahoo
// weeks run Tuesday through Monday, matching the NFL schedule.
const WeekBoundaryDay = time.Tuesday

// WeekAligner maps timestamps to 1-based week numbers for a league. The
// anchor is the first boundary weekday on or after the league's start date;
// week N covers the seven days starting at anchor+7*(N-1).
type WeekAligner struct {
	anchor time.Time
}

func NewWeekAligner(startDate time.Time) *WeekAligner {
	d := dateOnly(startDate)
	offset := (int(WeekBoundaryDay) - int(d.Weekday()) + 7) % 7
	return &WeekAligner{anchor: d.AddDate(0, 0, offset)}
}

// Week returns the week the timestamp falls in. Timestamps before the anchor
// are clamped to week 1.
func (a *WeekAligner) Week(t time.Time) int {
	d := dateOnly(t)
	back := (int(d.Weekday()) - int(WeekBoundaryDay) + 7) % 7
	weekStart := d.AddDate(0, 0, -back)
	week := int(weekStart.Sub(a.anchor).Hours()/(24*7)) + 1
	if week < 1 {
		week = 1
	}
	return week
}

// dateOnly drops the time-of-day so that week math only ever compares whole
// days. The calendar fields are taken in the timestamp's own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
