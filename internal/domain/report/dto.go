package report

// DashboardStats is the landing-page summary. Admin sees company-wide
// figures; everyone else gets their own pending count and zeros for the
// company-wide ones.
type DashboardStats struct {
	TotalEmployees      int64 `json:"total_employees"`
	TodayAttendance     int64 `json:"today_attendance"`
	PendingLeaves       int64 `json:"pending_leaves"`
	UnreadNotifications int64 `json:"unread_notifications"`
}
