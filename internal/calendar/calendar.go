package calendar

import (
	"time"

	"teampulse/internal/event"
	"teampulse/internal/leave"
)

const (
	ViewDay   = "day"
	ViewWeek  = "week"
	ViewMonth = "month"
)

const dateLayout = "2006-01-02"

// DayBucket holds everything happening on one calendar day.
type DayBucket struct {
	Date   string                `json:"date"`
	Leaves []leave.LeaveResponse `json:"leaves"`
	Events []event.EventResponse `json:"events"`
}

// RangeFor computes the bucket range for a view anchored at date. Weeks
// start on Sunday; the month view snaps outward to full weeks so the grid
// always renders complete rows.
func RangeFor(view string, anchor time.Time) (time.Time, time.Time) {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())

	switch view {
	case ViewWeek:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return start, start.AddDate(0, 0, 6)
	case ViewMonth:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		last := first.AddDate(0, 1, -1)
		start := first.AddDate(0, 0, -int(first.Weekday()))
		end := last.AddDate(0, 0, 6-int(last.Weekday()))
		return start, end
	default:
		return day, day
	}
}

// Buckets distributes leaves and events across each day of [start, end].
// A leave lands in every bucket between its start and end date inclusive;
// an event lands in every bucket whose day window it overlaps.
func Buckets(start, end time.Time, leaves []leave.LeaveResponse, evts []event.EventResponse, filter Filter, team string) []DayBucket {
	leaves = filterLeaves(leaves, filter, team)
	evts = filterEvents(evts, filter)

	var buckets []DayBucket
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dayEnd := day.AddDate(0, 0, 1).Add(-time.Second)
		// Leave dates are civil dates; compare them in UTC so a DST
		// transition in the anchor's location cannot shift a day out of
		// the range.
		civil := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

		bucket := DayBucket{
			Date:   day.Format(dateLayout),
			Leaves: []leave.LeaveResponse{},
			Events: []event.EventResponse{},
		}

		for _, l := range leaves {
			ls, err1 := time.Parse(dateLayout, l.StartDate)
			le, err2 := time.Parse(dateLayout, l.EndDate)
			if err1 != nil || err2 != nil {
				continue
			}
			if !civil.Before(ls) && !civil.After(le) {
				bucket.Leaves = append(bucket.Leaves, l)
			}
		}

		for _, e := range evts {
			es, err1 := time.Parse(time.RFC3339, e.StartTime)
			ee, err2 := time.Parse(time.RFC3339, e.EndTime)
			if err1 != nil || err2 != nil {
				continue
			}
			if !es.After(dayEnd) && !ee.Before(day) {
				bucket.Events = append(bucket.Events, e)
			}
		}

		buckets = append(buckets, bucket)
	}

	return buckets
}

func filterLeaves(leaves []leave.LeaveResponse, filter Filter, team string) []leave.LeaveResponse {
	out := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		if team != "" && l.UserTeam != team {
			continue
		}
		switch f := filter.(type) {
		case LeaveTypeFilter:
			if l.LeaveType != f.Kind {
				continue
			}
		case EventTypeFilter:
			continue
		}
		out = append(out, l)
	}
	return out
}

func filterEvents(evts []event.EventResponse, filter Filter) []event.EventResponse {
	out := make([]event.EventResponse, 0, len(evts))
	for _, e := range evts {
		switch f := filter.(type) {
		case EventTypeFilter:
			if e.EventType != f.Kind {
				continue
			}
		case LeaveTypeFilter:
			continue
		}
		out = append(out, e)
	}
	return out
}
