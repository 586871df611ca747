package client

import (
	"context"
	"net/http"

	"teampulse/internal/event"
)

func (c *Client) Events(ctx context.Context) ([]event.EventResponse, error) {
	return c.events.Get(func() ([]event.EventResponse, error) {
		var out []event.EventResponse
		if err := c.do(ctx, http.MethodGet, "/api/v1/events", nil, &out, true); err != nil {
			return nil, err
		}
		return out, nil
	})
}

func (c *Client) CreateEvent(ctx context.Context, req event.CreateEventRequest) (*event.EventResponse, error) {
	var out event.EventResponse
	if err := c.doIdempotent(ctx, http.MethodPost, "/api/v1/events", req, &out, true); err != nil {
		return nil, err
	}
	c.events.Invalidate()
	return &out, nil
}

func (c *Client) SubmitRsvp(ctx context.Context, eventID string, req event.SubmitRsvpRequest) (*event.RsvpResponse, error) {
	var out event.RsvpResponse
	if err := c.doIdempotent(ctx, http.MethodPost, "/api/v1/events/"+eventID+"/rsvp", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EventRsvps(ctx context.Context, eventID string) ([]event.RsvpResponse, error) {
	var out []event.RsvpResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/events/"+eventID+"/rsvps", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}
