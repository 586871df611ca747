package client

import (
	"context"
	"net/http"
	"time"

	"teampulse/internal/leave"
)

// Leaves returns the manager-wide leave list, cached until the next
// mutation.
func (c *Client) Leaves(ctx context.Context) ([]leave.LeaveResponse, error) {
	return c.leaves.Get(func() ([]leave.LeaveResponse, error) {
		var out []leave.LeaveResponse
		if err := c.do(ctx, http.MethodGet, "/api/v1/leaves?page_size=500", nil, &out, true); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// MyLeaves always reflects the caller's own requests.
func (c *Client) MyLeaves(ctx context.Context) ([]leave.LeaveResponse, error) {
	var out []leave.LeaveResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/leaves/my-leaves", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateLeave submits the request and invalidates the cached list; the
// next read refetches so the caller sees server-assigned fields.
func (c *Client) CreateLeave(ctx context.Context, req leave.CreateLeaveRequest) (*leave.LeaveResponse, error) {
	var out leave.LeaveResponse
	if err := c.doIdempotent(ctx, http.MethodPost, "/api/v1/leaves", req, &out, true); err != nil {
		return nil, err
	}
	c.leaves.Invalidate()
	return &out, nil
}

func (c *Client) UpdateLeaveStatus(ctx context.Context, leaveID string, req leave.DecideLeaveRequest) (*leave.LeaveResponse, error) {
	var out leave.LeaveResponse
	if err := c.do(ctx, http.MethodPatch, "/api/v1/leaves/"+leaveID, req, &out, true); err != nil {
		return nil, err
	}
	c.leaves.Invalidate()
	return &out, nil
}

// PendingLeaves derives the approval queue from the cached list.
func (c *Client) PendingLeaves(ctx context.Context) ([]leave.LeaveResponse, error) {
	all, err := c.Leaves(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]leave.LeaveResponse, 0, len(all))
	for _, l := range all {
		if l.Status == leave.StatusPending {
			pending = append(pending, l)
		}
	}
	return pending, nil
}

// LeavesInRange derives the subset overlapping [from, to] for calendar
// rendering.
func (c *Client) LeavesInRange(ctx context.Context, from, to time.Time) ([]leave.LeaveResponse, error) {
	all, err := c.Leaves(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]leave.LeaveResponse, 0, len(all))
	for _, l := range all {
		start, err1 := time.Parse("2006-01-02", l.StartDate)
		end, err2 := time.Parse("2006-01-02", l.EndDate)
		if err1 != nil || err2 != nil {
			continue
		}
		if !start.After(to) && !end.Before(from) {
			out = append(out, l)
		}
	}
	return out, nil
}
