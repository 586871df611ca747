package client

import (
	"context"
	"net/http"
	"time"

	"teampulse/internal/notification"

	"go.uber.org/zap"
)

// NotificationPollInterval is how often Poll refreshes the notification
// list while running.
const NotificationPollInterval = 60 * time.Second

func (c *Client) Notifications(ctx context.Context) ([]notification.NotificationResponse, error) {
	return c.notifications.Get(func() ([]notification.NotificationResponse, error) {
		return c.fetchNotifications(ctx)
	})
}

func (c *Client) fetchNotifications(ctx context.Context) ([]notification.NotificationResponse, error) {
	var out []notification.NotificationResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/notifications", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	all, err := c.Notifications(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range all {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (c *Client) CreateNotification(ctx context.Context, req notification.CreateNotificationRequest) (*notification.NotificationResponse, error) {
	var out notification.NotificationResponse
	if err := c.doIdempotent(ctx, http.MethodPost, "/api/v1/notifications", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkNotificationRead patches the cached row optimistically after the
// server confirms, avoiding a refetch for a single-field change.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodPatch, "/api/v1/notifications/"+id+"/read", nil, nil, true); err != nil {
		return err
	}

	c.notifications.Upsert(
		func(n notification.NotificationResponse) bool { return n.ID == id },
		func(n notification.NotificationResponse) notification.NotificationResponse {
			n.Read = true
			return n
		},
	)
	return nil
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	if err := c.doIdempotent(ctx, http.MethodPost, "/api/v1/notifications/mark-all-read", nil, nil, true); err != nil {
		return err
	}

	c.notifications.Upsert(
		func(notification.NotificationResponse) bool { return true },
		func(n notification.NotificationResponse) notification.NotificationResponse {
			n.Read = true
			return n
		},
	)
	return nil
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/notifications/"+id, nil, nil, true); err != nil {
		return err
	}

	c.notifications.Remove(func(n notification.NotificationResponse) bool { return n.ID == id })
	return nil
}

// PollNotifications refreshes the notification cache on a fixed interval
// until the context is cancelled. Each refresh is pushed to onUpdate.
func (c *Client) PollNotifications(ctx context.Context, onUpdate func([]notification.NotificationResponse)) {
	ticker := time.NewTicker(NotificationPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fresh, err := c.fetchNotifications(ctx)
			if err != nil {
				c.logger.Warn("notification poll failed", zap.Error(err))
				continue
			}
			c.notifications.Set(fresh)
			if onUpdate != nil {
				onUpdate(fresh)
			}
		}
	}
}
