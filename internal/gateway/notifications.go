package gateway

import (
	"context"
	"encoding/json"
	"net/url"
)

// NotificationOption narrows a notification listing.
type NotificationOption func(url.Values)

// WithNotificationStatus filters notifications by status (READ or UNREAD).
func WithNotificationStatus(status string) NotificationOption {
	return func(q url.Values) { q.Set("status", status) }
}

// WithNotificationType filters notifications by type.
func WithNotificationType(t string) NotificationOption {
	return func(q url.Values) { q.Set("type", t) }
}

// Notifications lists a user's notifications.
// An empty list with a nil error means the user has none.
func (c *Client) Notifications(ctx context.Context, userID, token string, opts ...NotificationOption) ([]Notification, error) {
	q := url.Values{"userId": []string{userID}}
	for _, opt := range opts {
		opt(q)
	}

	var notifications []Notification
	if err := c.getJSON(ctx, "notification-service", c.notification, "/api/notifications", q, token, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for a user.
// The count arrives wrapped as {data: n}; an absent data field counts as 0.
func (c *Client) UnreadCount(ctx context.Context, userID, token string) (int, error) {
	var env envelope
	path := "/api/notifications/users/" + url.PathEscape(userID) + "/unread-count"
	if err := c.getJSON(ctx, "notification-service", c.notification, path, nil, token, &env); err != nil {
		return 0, err
	}

	if env.dataIsAbsent() {
		return 0, nil
	}
	var count int
	if err := json.Unmarshal(env.Data, &count); err != nil {
		c.logger.Warn("unexpected unread-count payload shape", "error", err)
		return 0, nil
	}
	return count, nil
}
