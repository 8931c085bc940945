package leave

import (
	"time"

	"github.com/hamkke-hr/hr-backend-go/internal/domain/leave"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/dateutil"
)

// ProjectCalendar spreads approved requests over a day-keyed map. Every
// day of each request's span is walked in the order the requests were
// supplied, including days outside the month. Narrowing to the month is
// the repository query's job; a span crossing a month boundary shows up
// whole from either side.
func ProjectCalendar(year int, month time.Month, requests []leave.LeaveRequest) leave.CalendarResponse {
	days := make(map[string][]leave.CalendarEntrant)

	for _, req := range requests {
		name := ""
		if req.UserName != nil {
			name = *req.UserName
		}
		for _, day := range dateutil.Between(req.StartDate, req.EndDate) {
			days[day] = append(days[day], leave.CalendarEntrant{
				UserID: req.UserID,
				Name:   name,
			})
		}
	}

	return leave.CalendarResponse{Year: year, Month: int(month), Days: days}
}
