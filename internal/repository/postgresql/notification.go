package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/notification"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create implements notification.Repository.
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO notifications (id, user_id, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := q.Exec(ctx, query, n.ID, n.UserID, n.Message, n.Read, n.CreatedAt); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// CreateBatch implements notification.Repository.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(notifications))
	valueArgs := make([]interface{}, 0, len(notifications)*5)

	now := time.Now().UTC()
	for i, n := range notifications {
		if n.ID == "" {
			n.ID = uuid.New().String()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = now
		}
		base := i * 5
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5,
		))
		valueArgs = append(valueArgs, n.ID, n.UserID, n.Message, n.Read, n.CreatedAt)
	}

	query := fmt.Sprintf(
		"INSERT INTO notifications (id, user_id, message, read, created_at) VALUES %s",
		strings.Join(valueStrings, ", "),
	)
	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to create notifications batch: %w", err)
	}
	return nil
}

// GetByID implements notification.Repository.
func (r *notificationRepository) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	var n notification.Notification
	query := `SELECT id, user_id, message, read, created_at FROM notifications WHERE id = $1`
	err := q.QueryRow(ctx, query, id).Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notification.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &n, nil
}

// ListForUser implements notification.Repository.
func (r *notificationRepository) ListForUser(ctx context.Context, userID string) ([]*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, message, read, created_at
		FROM notifications
		WHERE user_id = $1 OR user_id IS NULL
		ORDER BY created_at DESC
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// UnreadCount implements notification.Repository. Broadcasts are not
// counted; only rows addressed to the user.
func (r *notificationRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	query := `SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT read`
	if err := q.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead implements notification.Repository.
func (r *notificationRepository) MarkRead(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`
	tag, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// HasUserCopy implements notification.Repository.
func (r *notificationRepository) HasUserCopy(ctx context.Context, userID string, message string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM notifications WHERE user_id = $1 AND message = $2)`
	if err := q.QueryRow(ctx, query, userID, message).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check notification copy: %w", err)
	}
	return exists, nil
}

// MarkUserCopiesRead implements notification.Repository.
func (r *notificationRepository) MarkUserCopiesRead(ctx context.Context, userID string, message string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE notifications SET read = true WHERE user_id = $1 AND message = $2 AND NOT read`
	if _, err := q.Exec(ctx, query, userID, message); err != nil {
		return fmt.Errorf("failed to mark notification copies read: %w", err)
	}
	return nil
}
