package console

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

// Summary is the dashboard's headline numbers plus the most recent bookings.
type Summary struct {
	TotalUsers    int
	TotalBookings int
	StatusCounts  map[string]int
	Recent        []hotelapi.Booking
}

// Confirmed is the confirmed-bookings stat card value.
func (s Summary) Confirmed() int { return s.StatusCounts["confirmed"] }

// Pending is the pending-bookings stat card value.
func (s Summary) Pending() int { return s.StatusCounts["pending"] }

// DashboardOptions configures the dashboard service.
type DashboardOptions struct {
	Users     hotelapi.UserAPI
	Bookings  hotelapi.BookingAPI
	Telemetry Telemetry
	RecentN   int
}

// DashboardService aggregates backend counts for the overview screen. Totals
// come from limit-1 probes; the backend's pagination metadata carries the
// counts so no full collection is transferred.
type DashboardService struct {
	opts DashboardOptions
}

// NewDashboardService builds the service with safe defaults.
func NewDashboardService(opts DashboardOptions) *DashboardService {
	if opts.RecentN <= 0 {
		opts.RecentN = 5
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &DashboardService{opts: opts}
}

// Summary fans the probe requests out concurrently and assembles the stats.
func (s *DashboardService) Summary(ctx context.Context) (Summary, error) {
	if s.opts.Users == nil || s.opts.Bookings == nil {
		return Summary{}, errors.New("console: dashboard requires user and booking apis")
	}
	summary := Summary{StatusCounts: make(map[string]int, len(hotelapi.BookingStatuses))}
	counts := make([]int, len(hotelapi.BookingStatuses))

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		page, err := s.opts.Users.ListUsers(gctx, hotelapi.UserQuery{
			ListQuery: hotelapi.ListQuery{Page: 1, Limit: 1},
		})
		if err != nil {
			return err
		}
		summary.TotalUsers = page.Pagination.TotalItems
		return nil
	})
	group.Go(func() error {
		page, err := s.opts.Bookings.ListBookings(gctx, hotelapi.BookingQuery{
			ListQuery: hotelapi.ListQuery{Page: 1, Limit: s.opts.RecentN, Sort: "createdAt", Order: "desc"},
		})
		if err != nil {
			return err
		}
		summary.TotalBookings = page.Pagination.TotalItems
		summary.Recent = page.Items
		return nil
	})
	for i, status := range hotelapi.BookingStatuses {
		group.Go(func() error {
			page, err := s.opts.Bookings.ListBookings(gctx, hotelapi.BookingQuery{
				ListQuery: hotelapi.ListQuery{Page: 1, Limit: 1},
				Status:    status,
			})
			if err != nil {
				return err
			}
			counts[i] = page.Pagination.TotalItems
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Summary{}, err
	}
	for i, status := range hotelapi.BookingStatuses {
		summary.StatusCounts[status] = counts[i]
	}
	s.opts.Telemetry.Record(ctx, "console.dashboard.summary", map[string]any{
		"users":    summary.TotalUsers,
		"bookings": summary.TotalBookings,
	})
	return summary, nil
}
