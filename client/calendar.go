package client

import (
	"context"
	"time"

	"teampulse/internal/calendar"
	"teampulse/internal/leave"
	"teampulse/internal/user"
)

// CalendarView buckets the cached leaves and events locally, mirroring
// what the server's calendar endpoint would return. Managers see every
// leave request; team members only their own.
func (c *Client) CalendarView(ctx context.Context, view string, anchor time.Time, filter calendar.Filter, team string) ([]calendar.DayBucket, error) {
	session, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotLoggedIn
	}

	var leaves []leave.LeaveResponse
	if session.User.Role == user.RoleManager {
		leaves, err = c.Leaves(ctx)
	} else {
		leaves, err = c.MyLeaves(ctx)
	}
	if err != nil {
		return nil, err
	}

	events, err := c.Events(ctx)
	if err != nil {
		return nil, err
	}

	start, end := calendar.RangeFor(view, anchor)
	return calendar.Buckets(start, end, leaves, events, filter, team), nil
}
