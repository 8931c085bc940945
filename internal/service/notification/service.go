package notification

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/notification"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/user"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/validator"
)

type NotificationServiceImpl struct {
	repo     notification.Repository
	userRepo user.UserRepository
}

func NewNotificationService(repo notification.Repository, userRepo user.UserRepository) *NotificationServiceImpl {
	return &NotificationServiceImpl{repo: repo, userRepo: userRepo}
}

func callerID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// Notify implements notification.NotificationService.
func (n *NotificationServiceImpl) Notify(ctx context.Context, userID string, message string) error {
	if validator.IsEmpty(message) {
		return fmt.Errorf("notification message must not be empty")
	}
	return n.repo.Create(ctx, &notification.Notification{
		UserID:  &userID,
		Message: message,
	})
}

// Broadcast implements notification.NotificationService. One unread row
// is inserted per active user so each recipient carries their own read
// state and sees the message exactly once.
func (n *NotificationServiceImpl) Broadcast(ctx context.Context, req notification.BroadcastRequest) (int, error) {
	if validator.IsEmpty(req.Message) {
		return 0, fmt.Errorf("notification message must not be empty")
	}

	ids, err := n.userRepo.ListActiveIDs(ctx)
	if err != nil {
		return 0, err
	}

	copies := make([]*notification.Notification, 0, len(ids))
	for _, id := range ids {
		userID := id
		copies = append(copies, &notification.Notification{
			UserID:  &userID,
			Message: req.Message,
		})
	}
	if err := n.repo.CreateBatch(ctx, copies); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// ListMine implements notification.NotificationService.
func (n *NotificationServiceImpl) ListMine(ctx context.Context) ([]notification.NotificationResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := n.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]notification.NotificationResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, notification.NewNotificationResponse(row))
	}
	return responses, nil
}

// UnreadCount implements notification.NotificationService.
func (n *NotificationServiceImpl) UnreadCount(ctx context.Context) (int64, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return 0, err
	}
	return n.repo.UnreadCount(ctx, userID)
}

// MarkRead implements notification.NotificationService. Acknowledging a
// broadcast writes or updates the caller's personal copy; the NULL-user
// row itself is never mutated.
func (n *NotificationServiceImpl) MarkRead(ctx context.Context, id string) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	row, err := n.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !row.IsBroadcast() {
		return n.repo.MarkRead(ctx, id, userID)
	}

	hasCopy, err := n.repo.HasUserCopy(ctx, userID, row.Message)
	if err != nil {
		return err
	}
	if hasCopy {
		return n.repo.MarkUserCopiesRead(ctx, userID, row.Message)
	}
	return n.repo.Create(ctx, &notification.Notification{
		UserID:  &userID,
		Message: row.Message,
		Read:    true,
	})
}
