package notification

import "context"

// Repository defines data access for notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error

	// CreateBatch inserts many rows at once, for broadcast fan-out.
	CreateBatch(ctx context.Context, notifications []*Notification) error

	GetByID(ctx context.Context, id string) (*Notification, error)

	// ListForUser returns the user's own rows plus broadcasts, newest
	// first.
	ListForUser(ctx context.Context, userID string) ([]*Notification, error)

	UnreadCount(ctx context.Context, userID string) (int64, error)

	// MarkRead flags one of the user's own rows as read.
	MarkRead(ctx context.Context, id string, userID string) error

	// HasUserCopy reports whether the user already has a personal row
	// with this message, used when acknowledging broadcasts.
	HasUserCopy(ctx context.Context, userID string, message string) (bool, error)

	// MarkUserCopiesRead flags all of the user's unread rows carrying the
	// message as read.
	MarkUserCopiesRead(ctx context.Context, userID string, message string) error
}
