package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

const dateDisplayFormat = "Jan 02, 2006"

// LoginForm carries the values re-rendered after a failed sign-in.
type LoginForm struct {
	Email string
	Error string
}

// RegisterForm carries the values re-rendered after a failed sign-up.
type RegisterForm struct {
	Name  string
	Email string
	Phone string
	Error string
}

// ControllerOptions configures the page controller. Collaborators are
// injected so tests can swap them for fakes.
type ControllerOptions struct {
	Session        *SessionStore
	Users          *Listing[hotelapi.User, *UserDraft]
	Bookings       *Listing[hotelapi.Booking, *BookingDraft]
	Dashboard      *DashboardService
	Chart          *StatusChart
	GuestDirectory func(ctx context.Context) ([]hotelapi.User, error)
	Renderer       Renderer
	Flashes        *FlashHub
	Badges         BadgeTheme
	Telemetry      Telemetry
	Brand          string
	BasePath       string
}

// Controller renders the console pages. It owns no list state of its own; it
// snapshots the listing controllers and translates them into template data.
type Controller struct {
	opts ControllerOptions
}

// NewController builds the page controller with safe defaults.
func NewController(opts ControllerOptions) (*Controller, error) {
	if opts.Renderer == nil {
		return nil, errors.New("console: controller requires a renderer")
	}
	if opts.Session == nil {
		return nil, errors.New("console: controller requires a session store")
	}
	if opts.Brand == "" {
		opts.Brand = "Hotel Admin"
	}
	if opts.BasePath == "" {
		opts.BasePath = "/admin"
	}
	if opts.Badges.Classes == nil {
		opts.Badges = DefaultBadgeTheme()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Controller{opts: opts}, nil
}

// BasePath returns the mount point pages link under.
func (c *Controller) BasePath() string { return c.opts.BasePath }

// RenderLogin renders the sign-in page.
func (c *Controller) RenderLogin(_ context.Context, w io.Writer, form LoginForm) error {
	data := c.basePayload("login")
	data["title"] = "Sign In"
	data["email"] = form.Email
	data["error"] = form.Error
	_, err := c.opts.Renderer.Render("login", data, w)
	return err
}

// RenderRegister renders the sign-up page.
func (c *Controller) RenderRegister(_ context.Context, w io.Writer, form RegisterForm) error {
	data := c.basePayload("register")
	data["title"] = "Create Account"
	data["name"] = form.Name
	data["email"] = form.Email
	data["phone"] = form.Phone
	data["error"] = form.Error
	_, err := c.opts.Renderer.Render("register", data, w)
	return err
}

// RenderDashboard renders the overview: stat cards, the status chart, and the
// most recent bookings. A failed aggregation renders the page with an error
// banner instead of failing the request.
func (c *Controller) RenderDashboard(ctx context.Context, w io.Writer) error {
	data := c.basePayload("dashboard")
	data["title"] = "Dashboard"

	if c.opts.Dashboard == nil {
		data["error"] = "Dashboard is not configured"
		_, err := c.opts.Renderer.Render("dashboard", data, w)
		return err
	}

	summary, err := c.opts.Dashboard.Summary(ctx)
	if err != nil {
		c.opts.Telemetry.Record(ctx, "console.dashboard.error", map[string]any{"error": err.Error()})
		data["error"] = "Failed to load dashboard"
		_, rerr := c.opts.Renderer.Render("dashboard", data, w)
		return rerr
	}

	data["total_users"] = summary.TotalUsers
	data["total_bookings"] = summary.TotalBookings
	data["confirmed"] = summary.Confirmed()
	data["pending"] = summary.Pending()
	data["recent"] = c.bookingRows(summary.Recent)

	if c.opts.Chart != nil {
		html, cerr := c.opts.Chart.Render(hotelapi.BookingStatuses, summary.StatusCounts)
		if cerr != nil {
			c.opts.Telemetry.Record(ctx, "console.dashboard.chart_error", map[string]any{"error": cerr.Error()})
		} else {
			data["chart_html"] = html
		}
	}

	_, err = c.opts.Renderer.Render("dashboard", data, w)
	return err
}

// RenderUsers renders the user management screen.
func (c *Controller) RenderUsers(ctx context.Context, w io.Writer) error {
	if c.opts.Users == nil {
		return errors.New("console: users listing not configured")
	}
	_ = c.opts.Users.EnsureFetched(ctx)
	view := c.opts.Users.Snapshot()

	data := c.basePayload("users")
	data["title"] = "Users"
	c.listingPayload(data, view.Entity, view.Singular, view.Columns, view.Filters, view.Window, view.Loading, view.Empty)
	data["rows"] = c.userRows(view.Items)
	data["modal"] = userModalPayload(view)
	data["confirm"] = userConfirmPayload(view)

	_, err := c.opts.Renderer.Render("users", data, w)
	return err
}

// RenderBookings renders the booking management screen. The guest directory
// feeds the modal's guest dropdown; a directory failure leaves the dropdown
// empty rather than failing the page.
func (c *Controller) RenderBookings(ctx context.Context, w io.Writer) error {
	if c.opts.Bookings == nil {
		return errors.New("console: bookings listing not configured")
	}
	_ = c.opts.Bookings.EnsureFetched(ctx)
	view := c.opts.Bookings.Snapshot()

	data := c.basePayload("bookings")
	data["title"] = "Bookings"
	c.listingPayload(data, view.Entity, view.Singular, view.Columns, view.Filters, view.Window, view.Loading, view.Empty)
	data["rows"] = c.bookingRows(view.Items)
	data["modal"] = c.bookingModalPayload(ctx, view)
	data["confirm"] = bookingConfirmPayload(view)

	_, err := c.opts.Renderer.Render("bookings", data, w)
	return err
}

func (c *Controller) basePayload(active string) map[string]any {
	data := map[string]any{
		"brand":     c.opts.Brand,
		"base_path": c.opts.BasePath,
		"active":    active,
	}
	session := c.opts.Session.Current()
	data["authenticated"] = session.Authenticated()
	if session.Authenticated() {
		data["identity"] = map[string]any{
			"name":  session.Identity.Name,
			"email": session.Identity.Email,
			"role":  session.Identity.Role,
		}
	}
	if c.opts.Flashes != nil {
		flashes := c.opts.Flashes.Drain()
		views := make([]map[string]any, 0, len(flashes))
		for _, flash := range flashes {
			views = append(views, map[string]any{
				"id":      flash.ID,
				"level":   string(flash.Level),
				"message": flash.Message,
			})
		}
		data["flashes"] = views
	}
	return data
}

func (c *Controller) listingPayload(data map[string]any, entity, singular string, columns []ColumnView, filters []FilterView, window PageWindow, loading, empty bool) {
	cols := make([]map[string]any, 0, len(columns))
	for _, col := range columns {
		cols = append(cols, map[string]any{
			"field":    col.Field,
			"label":    col.Label,
			"sortable": col.Sortable,
			"active":   col.Active,
			"order":    string(col.Order),
		})
	}
	fields := make([]map[string]any, 0, len(filters))
	for _, field := range filters {
		fields = append(fields, map[string]any{
			"key":         field.Key,
			"label":       field.Label,
			"kind":        field.Kind,
			"options":     field.Options,
			"placeholder": field.Placeholder,
			"value":       field.Value,
		})
	}
	data["entity"] = entity
	data["singular"] = singular
	data["columns"] = cols
	data["filters"] = fields
	data["loading"] = loading
	data["empty"] = empty
	data["window"] = map[string]any{
		"visible":      window.Visible,
		"current_page": window.CurrentPage,
		"total_pages":  window.TotalPages,
		"total_items":  window.TotalItems,
		"start":        window.Start,
		"end":          window.End,
		"has_prev":     window.HasPrev,
		"has_next":     window.HasNext,
		"prev_page":    window.CurrentPage - 1,
		"next_page":    window.CurrentPage + 1,
	}
}

func (c *Controller) userRows(users []hotelapi.User) []map[string]any {
	rows := make([]map[string]any, 0, len(users))
	for _, user := range users {
		rows = append(rows, map[string]any{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"phone":      user.Phone,
			"role":       user.Role,
			"role_class": c.opts.Badges.Class(user.Role),
			"created":    formatDate(user.CreatedAt),
		})
	}
	return rows
}

func (c *Controller) bookingRows(bookings []hotelapi.Booking) []map[string]any {
	rows := make([]map[string]any, 0, len(bookings))
	for _, booking := range bookings {
		guest := booking.User.Name
		if guest == "" {
			guest = booking.User.ID
		}
		rows = append(rows, map[string]any{
			"id":           booking.ID,
			"guest":        guest,
			"room":         booking.RoomNumber,
			"room_type":    booking.RoomType,
			"checkin":      formatDate(booking.CheckInDate),
			"checkout":     formatDate(booking.CheckOutDate),
			"guests":       booking.Guests,
			"price":        fmt.Sprintf("$%.2f", booking.TotalPrice),
			"status":       booking.Status,
			"status_class": c.opts.Badges.Class(booking.Status),
		})
	}
	return rows
}

func userModalPayload(view ListingView[hotelapi.User, *UserDraft]) map[string]any {
	modal := map[string]any{
		"open":    view.ModalOpen,
		"editing": view.Editing,
		"id":      view.EditingID,
		"saving":  view.Saving,
	}
	draft := view.Draft
	if draft == nil {
		draft = NewUserDraft()
	}
	modal["draft"] = map[string]any{
		"name":  draft.Name,
		"email": draft.Email,
		"phone": draft.Phone,
		"role":  draft.Role,
	}
	return modal
}

func (c *Controller) bookingModalPayload(ctx context.Context, view ListingView[hotelapi.Booking, *BookingDraft]) map[string]any {
	modal := map[string]any{
		"open":    view.ModalOpen,
		"editing": view.Editing,
		"id":      view.EditingID,
		"saving":  view.Saving,
	}
	draft := view.Draft
	if draft == nil {
		draft = NewBookingDraft()
	}
	modal["draft"] = map[string]any{
		"user":      draft.User,
		"room":      draft.RoomNumber,
		"room_type": draft.RoomType,
		"checkin":   draft.CheckInDate,
		"checkout":  draft.CheckOutDate,
		"guests":    draft.Guests,
		"price":     draft.TotalPrice,
		"status":    draft.Status,
		"notes":     draft.Notes,
	}
	modal["guest_options"] = c.guestOptions(ctx)
	return modal
}

// guestOptions feeds the booking modal's guest dropdown.
func (c *Controller) guestOptions(ctx context.Context) []map[string]any {
	if c.opts.GuestDirectory == nil {
		return nil
	}
	guests, err := c.opts.GuestDirectory(ctx)
	if err != nil {
		c.opts.Telemetry.Record(ctx, "console.bookings.guest_directory_error", map[string]any{"error": err.Error()})
		return nil
	}
	options := make([]map[string]any, 0, len(guests))
	for _, guest := range guests {
		label := guest.Name
		if guest.Email != "" {
			label = fmt.Sprintf("%s (%s)", guest.Name, guest.Email)
		}
		options = append(options, map[string]any{"id": guest.ID, "label": label})
	}
	return options
}

func userConfirmPayload(view ListingView[hotelapi.User, *UserDraft]) map[string]any {
	confirm := map[string]any{"open": view.DeleteTarget != nil, "deleting": view.Deleting}
	if view.DeleteTarget != nil {
		confirm["id"] = view.DeleteTarget.ID
		confirm["label"] = view.DeleteTarget.Name
	}
	return confirm
}

func bookingConfirmPayload(view ListingView[hotelapi.Booking, *BookingDraft]) map[string]any {
	confirm := map[string]any{"open": view.DeleteTarget != nil, "deleting": view.Deleting}
	if view.DeleteTarget != nil {
		confirm["id"] = view.DeleteTarget.ID
		confirm["label"] = "booking for room " + view.DeleteTarget.RoomNumber
	}
	return confirm
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateDisplayFormat)
}
