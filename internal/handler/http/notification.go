package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/notification"
	"github.com/hamkke-hr/hr-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	ListMine(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	Broadcast(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.NotificationService
}

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &NotificationHandlerImpl{notificationService: notificationService}
}

// ListMine implements NotificationHandler.
func (n *NotificationHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	notifications, err := n.notificationService.ListMine(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, notifications)
}

// UnreadCount implements NotificationHandler.
func (n *NotificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := n.notificationService.UnreadCount(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]int64{"unread": count})
}

// MarkRead implements NotificationHandler.
func (n *NotificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := n.notificationService.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

// Broadcast implements NotificationHandler.
func (n *NotificationHandlerImpl) Broadcast(w http.ResponseWriter, r *http.Request) {
	var broadcastReq notification.BroadcastRequest

	if err := json.NewDecoder(r.Body).Decode(&broadcastReq); err != nil {
		slog.Error("Broadcast decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	recipients, err := n.notificationService.Broadcast(r.Context(), broadcastReq)
	if err != nil {
		slog.Error("Broadcast service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Broadcast sent", map[string]int{"recipients": recipients})
}
