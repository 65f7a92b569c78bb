package console

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

type captureRenderer struct {
	name string
	data map[string]any
}

func (r *captureRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.name = name
	r.data, _ = data.(map[string]any)
	for _, w := range out {
		_, _ = w.Write([]byte("<html>"))
	}
	return "<html>", nil
}

func newTestController(t *testing.T, api *hotelapi.Mock, renderer Renderer) (*Controller, *SessionStore) {
	t.Helper()
	session := NewSessionStore(SessionOptions{Auth: api})
	users, err := NewUsersListing(UsersListingOptions{API: api})
	if err != nil {
		t.Fatalf("NewUsersListing returned error: %v", err)
	}
	bookings, err := NewBookingsListing(BookingsListingOptions{API: api})
	if err != nil {
		t.Fatalf("NewBookingsListing returned error: %v", err)
	}
	controller, err := NewController(ControllerOptions{
		Session:   session,
		Users:     users,
		Bookings:  bookings,
		Dashboard: NewDashboardService(DashboardOptions{Users: api, Bookings: api}),
		GuestDirectory: func(ctx context.Context) ([]hotelapi.User, error) {
			page, err := api.ListUsers(ctx, hotelapi.UserQuery{
				ListQuery: hotelapi.ListQuery{Page: 1, Limit: 100},
			})
			if err != nil {
				return nil, err
			}
			return page.Items, nil
		},
		Renderer: renderer,
	})
	if err != nil {
		t.Fatalf("NewController returned error: %v", err)
	}
	return controller, session
}

func testFixtures() hotelapi.MockData {
	now := time.Now()
	return hotelapi.MockData{
		Users: []hotelapi.User{
			{ID: "u-1", Name: "Avery", Email: "avery@hotel.test", Role: "admin", CreatedAt: now},
			{ID: "u-2", Name: "Marta", Email: "marta@hotel.test", Role: "user", CreatedAt: now},
		},
		Bookings: []hotelapi.Booking{
			{
				ID:           "b-1",
				User:         hotelapi.Guest{ID: "u-2", Name: "Marta"},
				RoomNumber:   "204",
				RoomType:     "double",
				CheckInDate:  now.Add(24 * time.Hour),
				CheckOutDate: now.Add(72 * time.Hour),
				Guests:       2,
				TotalPrice:   420.50,
				Status:       "confirmed",
				CreatedAt:    now,
			},
		},
	}
}

func TestControllerRenderLogin(t *testing.T) {
	renderer := &captureRenderer{}
	controller, _ := newTestController(t, hotelapi.NewMock(testFixtures()), renderer)

	var buf bytes.Buffer
	err := controller.RenderLogin(context.Background(), &buf, LoginForm{Email: "avery@hotel.test", Error: "Invalid email or password"})
	if err != nil {
		t.Fatalf("RenderLogin returned error: %v", err)
	}
	if renderer.name != "login" {
		t.Fatalf("expected login template, got %q", renderer.name)
	}
	if renderer.data["email"] != "avery@hotel.test" {
		t.Fatalf("expected email echoed back, got %v", renderer.data["email"])
	}
	if renderer.data["error"] != "Invalid email or password" {
		t.Fatalf("expected error message, got %v", renderer.data["error"])
	}
	if buf.Len() == 0 {
		t.Fatalf("expected html written to the output")
	}
}

func TestControllerRenderUsersRows(t *testing.T) {
	renderer := &captureRenderer{}
	controller, _ := newTestController(t, hotelapi.NewMock(testFixtures()), renderer)

	var buf bytes.Buffer
	if err := controller.RenderUsers(context.Background(), &buf); err != nil {
		t.Fatalf("RenderUsers returned error: %v", err)
	}
	if renderer.name != "users" {
		t.Fatalf("expected users template, got %q", renderer.name)
	}
	rows, ok := renderer.data["rows"].([]map[string]any)
	if !ok || len(rows) != 2 {
		t.Fatalf("expected 2 user rows, got %v", renderer.data["rows"])
	}
	var admin map[string]any
	for _, row := range rows {
		if row["role"] == "admin" {
			admin = row
		}
	}
	if admin == nil {
		t.Fatalf("expected admin row")
	}
	if admin["role_class"] != "badge badge-purple" {
		t.Fatalf("expected admin badge class, got %v", admin["role_class"])
	}
	columns, ok := renderer.data["columns"].([]map[string]any)
	if !ok || len(columns) == 0 {
		t.Fatalf("expected columns in payload")
	}
}

func TestControllerRenderBookingsRowsAndGuests(t *testing.T) {
	renderer := &captureRenderer{}
	controller, _ := newTestController(t, hotelapi.NewMock(testFixtures()), renderer)

	var buf bytes.Buffer
	if err := controller.RenderBookings(context.Background(), &buf); err != nil {
		t.Fatalf("RenderBookings returned error: %v", err)
	}
	rows, ok := renderer.data["rows"].([]map[string]any)
	if !ok || len(rows) != 1 {
		t.Fatalf("expected 1 booking row, got %v", renderer.data["rows"])
	}
	row := rows[0]
	if row["guest"] != "Marta" {
		t.Fatalf("expected guest name, got %v", row["guest"])
	}
	if row["price"] != "$420.50" {
		t.Fatalf("expected formatted price, got %v", row["price"])
	}
	if row["status_class"] != "badge badge-green" {
		t.Fatalf("expected confirmed badge class, got %v", row["status_class"])
	}

	modal, ok := renderer.data["modal"].(map[string]any)
	if !ok {
		t.Fatalf("expected modal payload")
	}
	options, ok := modal["guest_options"].([]map[string]any)
	if !ok || len(options) != 2 {
		t.Fatalf("expected guest dropdown options, got %v", modal["guest_options"])
	}
}

func TestControllerRenderDashboard(t *testing.T) {
	renderer := &captureRenderer{}
	controller, _ := newTestController(t, hotelapi.NewMock(testFixtures()), renderer)

	var buf bytes.Buffer
	if err := controller.RenderDashboard(context.Background(), &buf); err != nil {
		t.Fatalf("RenderDashboard returned error: %v", err)
	}
	if renderer.name != "dashboard" {
		t.Fatalf("expected dashboard template, got %q", renderer.name)
	}
	if renderer.data["total_users"] != 2 {
		t.Fatalf("expected total_users 2, got %v", renderer.data["total_users"])
	}
	if renderer.data["total_bookings"] != 1 {
		t.Fatalf("expected total_bookings 1, got %v", renderer.data["total_bookings"])
	}
	recent, ok := renderer.data["recent"].([]map[string]any)
	if !ok || len(recent) != 1 {
		t.Fatalf("expected recent bookings, got %v", renderer.data["recent"])
	}
}

func TestControllerBasePayloadIdentity(t *testing.T) {
	renderer := &captureRenderer{}
	api := hotelapi.NewMock(testFixtures())
	controller, session := newTestController(t, api, renderer)

	if err := session.Login(context.Background(), "avery@hotel.test", "pw"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := controller.RenderUsers(context.Background(), &buf); err != nil {
		t.Fatalf("RenderUsers returned error: %v", err)
	}
	if renderer.data["authenticated"] != true {
		t.Fatalf("expected authenticated payload")
	}
	identity, ok := renderer.data["identity"].(map[string]any)
	if !ok || identity["name"] != "Avery" {
		t.Fatalf("expected identity in payload, got %v", renderer.data["identity"])
	}
}

func TestBadgeThemeFallback(t *testing.T) {
	theme := DefaultBadgeTheme()
	if theme.Class("confirmed") != "badge badge-green" {
		t.Fatalf("unexpected class for confirmed")
	}
	if theme.Class("unheard-of") != "badge badge-gray" {
		t.Fatalf("expected fallback class")
	}
}
