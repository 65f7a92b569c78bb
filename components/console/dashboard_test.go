package console

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

func seedDashboardMock() *hotelapi.Mock {
	now := time.Now()
	users := []hotelapi.User{
		{ID: "u-1", Name: "Avery", Email: "avery@hotel.test", Role: "admin"},
		{ID: "u-2", Name: "Marta", Email: "marta@hotel.test", Role: "user"},
		{ID: "u-3", Name: "Noah", Email: "noah@hotel.test", Role: "user"},
	}
	var bookings []hotelapi.Booking
	statuses := []string{"pending", "pending", "pending", "confirmed", "confirmed", "cancelled", "completed"}
	for i, status := range statuses {
		bookings = append(bookings, hotelapi.Booking{
			ID:         fmt.Sprintf("b-%d", i+1),
			User:       hotelapi.Guest{ID: "u-2", Name: "Marta"},
			RoomNumber: fmt.Sprintf("%d", 100+i),
			RoomType:   "single",
			Status:     status,
			CreatedAt:  now.Add(time.Duration(i) * time.Hour),
		})
	}
	return hotelapi.NewMock(hotelapi.MockData{Users: users, Bookings: bookings})
}

func TestDashboardSummary(t *testing.T) {
	api := seedDashboardMock()
	svc := NewDashboardService(DashboardOptions{Users: api, Bookings: api})

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.TotalUsers != 3 {
		t.Fatalf("expected 3 users, got %d", summary.TotalUsers)
	}
	if summary.TotalBookings != 7 {
		t.Fatalf("expected 7 bookings, got %d", summary.TotalBookings)
	}
	if summary.Pending() != 3 || summary.Confirmed() != 2 {
		t.Fatalf("unexpected status counts %+v", summary.StatusCounts)
	}
	if summary.StatusCounts["cancelled"] != 1 || summary.StatusCounts["completed"] != 1 {
		t.Fatalf("unexpected status counts %+v", summary.StatusCounts)
	}
}

func TestDashboardRecentBookingsNewestFirst(t *testing.T) {
	api := seedDashboardMock()
	svc := NewDashboardService(DashboardOptions{Users: api, Bookings: api})

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if len(summary.Recent) != 5 {
		t.Fatalf("expected 5 recent bookings, got %d", len(summary.Recent))
	}
	if summary.Recent[0].ID != "b-7" {
		t.Fatalf("expected newest booking first, got %s", summary.Recent[0].ID)
	}
	for i := 1; i < len(summary.Recent); i++ {
		if summary.Recent[i].CreatedAt.After(summary.Recent[i-1].CreatedAt) {
			t.Fatalf("recent bookings out of order at %d", i)
		}
	}
}

func TestDashboardRequiresAPIs(t *testing.T) {
	svc := NewDashboardService(DashboardOptions{})
	if _, err := svc.Summary(context.Background()); err == nil {
		t.Fatalf("expected configuration error")
	}
}
