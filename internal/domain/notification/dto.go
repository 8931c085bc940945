package notification

import "time"

type NotificationResponse struct {
	ID        string  `json:"id"`
	UserID    *string `json:"user_id"`
	Message   string  `json:"message"`
	Read      bool    `json:"read"`
	Broadcast bool    `json:"broadcast"`
	CreatedAt string  `json:"created_at"`
}

func NewNotificationResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Message:   n.Message,
		Read:      n.Read,
		Broadcast: n.IsBroadcast(),
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

type BroadcastRequest struct {
	Message string `json:"message"`
}
