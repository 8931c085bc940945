package notification

import "time"

// Notification is one in-app message. A nil UserID marks a broadcast row
// visible to everyone; marking a broadcast read materializes a per-user
// copy with Read set.
type Notification struct {
	ID        string
	UserID    *string
	Message   string
	Read      bool
	CreatedAt time.Time
}

// IsBroadcast reports whether the row targets all users.
func (n *Notification) IsBroadcast() bool {
	return n.UserID == nil
}
