package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	GetToday(ctx context.Context) (*AttendanceResponse, error)
	GetMyHistory(ctx context.Context, filter HistoryFilter) (ListAttendanceResponse, error)

	// Admin surface
	List(ctx context.Context, filter HistoryFilter) (ListAttendanceResponse, error)
}
