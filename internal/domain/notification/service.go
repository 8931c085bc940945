package notification

import "context"

// NotificationService defines business logic for in-app notifications.
type NotificationService interface {
	// Notify delivers a message to a single user. Used by attendance
	// reconciliation and leave decisions.
	Notify(ctx context.Context, userID string, message string) error

	// Broadcast fans a message out to every active user (admin).
	Broadcast(ctx context.Context, req BroadcastRequest) (int, error)

	// ListMine returns the caller's notifications plus broadcasts.
	ListMine(ctx context.Context) ([]NotificationResponse, error)

	UnreadCount(ctx context.Context) (int64, error)

	// MarkRead acknowledges one notification. For a broadcast row the
	// acknowledgement is recorded as a per-user copy.
	MarkRead(ctx context.Context, id string) error
}
