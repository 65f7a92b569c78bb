package gorouter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	router "github.com/goliatone/go-router"

	console "github.com/goliatone/go-hotel-admin/components/console"
	"github.com/goliatone/go-hotel-admin/components/console/commands"
	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

// Commands bundles the mutation commands the routes invoke.
type Commands struct {
	Login         *commands.LoginCommand
	Register      *commands.RegisterCommand
	Logout        *commands.LogoutCommand
	SaveUser      *commands.SaveUserCommand
	DeleteUser    *commands.DeleteUserCommand
	SaveBooking   *commands.SaveBookingCommand
	DeleteBooking *commands.DeleteBookingCommand
}

// Config wires go-router with the console controller, session, and commands.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *console.Controller
	Session    *console.SessionStore
	Users      *console.Listing[hotelapi.User, *console.UserDraft]
	Bookings   *console.Listing[hotelapi.Booking, *console.BookingDraft]
	Commands   Commands
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for console endpoints.
type RouteConfig struct {
	Login     string
	Register  string
	Logout    string
	Dashboard string
	Users     string
	Bookings  string
}

// Register mounts the console routes on a go-router router. Pages follow the
// post/redirect/get shape: mutations run a command, queue their flash, and
// redirect back to the page render.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	if cfg.Session == nil {
		return errors.New("gorouter: session store is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}

	group := cfg.Router.Group(base)

	registerAuth(group, cfg, routes, base)

	group.Get(routes.Dashboard, router.WrapHandler(guarded(cfg, base+routes.Login, func(ctx router.Context) error {
		return renderHTML(ctx, func(buf *bytes.Buffer) error {
			return cfg.Controller.RenderDashboard(ctx.Context(), buf)
		})
	})))

	if cfg.Users != nil {
		registerListing(group, cfg, base, routes.Login, listingRoutes{
			page: routes.Users,
			actions: listingActions{
				setFilter:         cfg.Users.SetFilter,
				toggleSort:        cfg.Users.ToggleSort,
				setPage:           cfg.Users.SetPage,
				openCreate:        cfg.Users.OpenCreate,
				openEditByID:      cfg.Users.OpenEditByID,
				cancel:            cfg.Users.Cancel,
				requestDeleteByID: cfg.Users.RequestDeleteByID,
				cancelDelete:      cfg.Users.CancelDelete,
			},
			render: cfg.Controller.RenderUsers,
			save: func(ctx router.Context) error {
				if cfg.Commands.SaveUser == nil {
					return errors.New("gorouter: save user command not configured")
				}
				form, err := parseForm(ctx)
				if err != nil {
					return err
				}
				return cfg.Commands.SaveUser.Execute(ctx.Context(), commands.SaveUserInput{
					Name:     form.Get("name"),
					Email:    form.Get("email"),
					Password: form.Get("password"),
					Phone:    form.Get("phone"),
					Role:     form.Get("role"),
				})
			},
			confirmDelete: func(ctx router.Context) error {
				if cfg.Commands.DeleteUser == nil {
					return errors.New("gorouter: delete user command not configured")
				}
				return cfg.Commands.DeleteUser.Execute(ctx.Context(), commands.DeleteUserInput{})
			},
		})
	}

	if cfg.Bookings != nil {
		registerListing(group, cfg, base, routes.Login, listingRoutes{
			page: routes.Bookings,
			actions: listingActions{
				setFilter:         cfg.Bookings.SetFilter,
				toggleSort:        cfg.Bookings.ToggleSort,
				setPage:           cfg.Bookings.SetPage,
				openCreate:        cfg.Bookings.OpenCreate,
				openEditByID:      cfg.Bookings.OpenEditByID,
				cancel:            cfg.Bookings.Cancel,
				requestDeleteByID: cfg.Bookings.RequestDeleteByID,
				cancelDelete:      cfg.Bookings.CancelDelete,
			},
			render: cfg.Controller.RenderBookings,
			save: func(ctx router.Context) error {
				if cfg.Commands.SaveBooking == nil {
					return errors.New("gorouter: save booking command not configured")
				}
				form, err := parseForm(ctx)
				if err != nil {
					return err
				}
				return cfg.Commands.SaveBooking.Execute(ctx.Context(), commands.SaveBookingInput{
					User:         form.Get("user"),
					RoomNumber:   form.Get("roomNumber"),
					RoomType:     form.Get("roomType"),
					CheckInDate:  form.Get("checkInDate"),
					CheckOutDate: form.Get("checkOutDate"),
					Guests:       form.Get("guests"),
					TotalPrice:   form.Get("totalPrice"),
					Status:       form.Get("status"),
					Notes:        form.Get("notes"),
				})
			},
			confirmDelete: func(ctx router.Context) error {
				if cfg.Commands.DeleteBooking == nil {
					return errors.New("gorouter: delete booking command not configured")
				}
				return cfg.Commands.DeleteBooking.Execute(ctx.Context(), commands.DeleteBookingInput{})
			},
		})
	}

	return nil
}

func registerAuth[T any](group router.Router[T], cfg Config[T], routes RouteConfig, base string) {
	group.Get(routes.Login, router.WrapHandler(func(ctx router.Context) error {
		if cfg.Session.State() == console.Authenticated {
			return redirect(ctx, base+routes.Dashboard)
		}
		return renderHTML(ctx, func(buf *bytes.Buffer) error {
			return cfg.Controller.RenderLogin(ctx.Context(), buf, console.LoginForm{})
		})
	}))

	group.Post(routes.Login, router.WrapHandler(func(ctx router.Context) error {
		form, err := parseForm(ctx)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if cfg.Commands.Login == nil {
			return respondError(ctx, http.StatusInternalServerError, errors.New("gorouter: login command not configured"))
		}
		email := form.Get("email")
		err = cfg.Commands.Login.Execute(ctx.Context(), commands.LoginInput{
			Email:    email,
			Password: form.Get("password"),
		})
		if err != nil {
			return renderHTML(ctx, func(buf *bytes.Buffer) error {
				return cfg.Controller.RenderLogin(ctx.Context(), buf, console.LoginForm{
					Email: email,
					Error: authFailureMessage(err, "Invalid email or password"),
				})
			})
		}
		return redirect(ctx, base+routes.Dashboard)
	}))

	group.Get(routes.Register, router.WrapHandler(func(ctx router.Context) error {
		if cfg.Session.State() == console.Authenticated {
			return redirect(ctx, base+routes.Dashboard)
		}
		return renderHTML(ctx, func(buf *bytes.Buffer) error {
			return cfg.Controller.RenderRegister(ctx.Context(), buf, console.RegisterForm{})
		})
	}))

	group.Post(routes.Register, router.WrapHandler(func(ctx router.Context) error {
		form, err := parseForm(ctx)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if cfg.Commands.Register == nil {
			return respondError(ctx, http.StatusInternalServerError, errors.New("gorouter: register command not configured"))
		}
		input := commands.RegisterInput{
			Name:     form.Get("name"),
			Email:    form.Get("email"),
			Password: form.Get("password"),
			Phone:    form.Get("phone"),
		}
		if err := cfg.Commands.Register.Execute(ctx.Context(), input); err != nil {
			return renderHTML(ctx, func(buf *bytes.Buffer) error {
				return cfg.Controller.RenderRegister(ctx.Context(), buf, console.RegisterForm{
					Name:  input.Name,
					Email: input.Email,
					Phone: input.Phone,
					Error: authFailureMessage(err, "Registration failed"),
				})
			})
		}
		return redirect(ctx, base+routes.Dashboard)
	}))

	group.Post(routes.Logout, router.WrapHandler(func(ctx router.Context) error {
		if cfg.Commands.Logout != nil {
			if err := cfg.Commands.Logout.Execute(ctx.Context(), commands.LogoutInput{}); err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
		}
		return redirect(ctx, base+routes.Login)
	}))
}

// listingActions erases the listing's generic parameters so both entities
// share one route table.
type listingActions struct {
	setFilter         func(ctx context.Context, key, value string) error
	toggleSort        func(ctx context.Context, field string) error
	setPage           func(ctx context.Context, n int) error
	openCreate        func()
	openEditByID      func(id string) bool
	cancel            func()
	requestDeleteByID func(id string) bool
	cancelDelete      func()
}

type listingRoutes struct {
	page          string
	actions       listingActions
	render        func(ctx context.Context, w io.Writer) error
	save          func(ctx router.Context) error
	confirmDelete func(ctx router.Context) error
}

func registerListing[T any](group router.Router[T], cfg Config[T], base, login string, lr listingRoutes) {
	pagePath := base + lr.page
	loginPath := base + login

	group.Get(lr.page, router.WrapHandler(guarded(cfg, loginPath, func(ctx router.Context) error {
		return renderHTML(ctx, func(buf *bytes.Buffer) error {
			return lr.render(ctx.Context(), buf)
		})
	})))

	group.Get(lr.page+"/sort", router.WrapHandler(guarded(cfg, loginPath, func(ctx router.Context) error {
		if field := ctx.Query("field"); field != "" {
			_ = lr.actions.toggleSort(ctx.Context(), field)
		}
		return redirect(ctx, pagePath)
	})))

	group.Get(lr.page+"/page", router.WrapHandler(guarded(cfg, loginPath, func(ctx router.Context) error {
		if n, err := strconv.Atoi(ctx.Query("n")); err == nil {
			_ = lr.actions.setPage(ctx.Context(), n)
		}
		return redirect(ctx, pagePath)
	})))

	group.Post(lr.page+"/filter", router.WrapHandler(guarded(cfg, loginPath, func(ctx router.Context) error {
		form, err := parseForm(ctx)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		for key := range form {
			_ = lr.actions.setFilter(ctx.Context(), key, form.Get(key))
		}
		return redirect(ctx, pagePath)
	})))

	group.Get(lr.page+"/new", router.WrapHandler(guarded(cfg, loginPath, func(ctx router.Context) error {
		lr.actions.openCreate()
		return redirect(ctx, pagePath)
	})))

	group.Get(lr.page+"/:id/edit", router.WrapHandler(guarded(cfg, loginPath, func(ctx router.Context) error {
		lr.actions.openEditByID(ctx.Param("id"))
		return redirect(ctx, pagePath)
	})))

	group.Post(lr.page+"/cancel", router.WrapHandler(guarded(cfg, loginPath, func(ctx router.Context) error {
		lr.actions.cancel()
		return redirect(ctx, pagePath)
	})))

	// Failures queue a flash and leave the modal open; the redirect
	// re-renders it with the staged draft intact.
	group.Post(lr.page+"/save", router.WrapHandler(guarded(cfg, loginPath, func(ctx router.Context) error {
		_ = lr.save(ctx)
		return redirect(ctx, pagePath)
	})))

	group.Get(lr.page+"/:id/delete", router.WrapHandler(guarded(cfg, loginPath, func(ctx router.Context) error {
		lr.actions.requestDeleteByID(ctx.Param("id"))
		return redirect(ctx, pagePath)
	})))

	group.Post(lr.page+"/delete", router.WrapHandler(guarded(cfg, loginPath, func(ctx router.Context) error {
		_ = lr.confirmDelete(ctx)
		return redirect(ctx, pagePath)
	})))

	group.Post(lr.page+"/delete/cancel", router.WrapHandler(guarded(cfg, loginPath, func(ctx router.Context) error {
		lr.actions.cancelDelete()
		return redirect(ctx, pagePath)
	})))
}

// guarded redirects unauthenticated requests to the login page before the
// handler runs.
func guarded[T any](cfg Config[T], loginPath string, handler func(router.Context) error) func(router.Context) error {
	return func(ctx router.Context) error {
		if cfg.Session.State() != console.Authenticated {
			return redirect(ctx, loginPath)
		}
		return handler(ctx)
	}
}

func renderHTML(ctx router.Context, render func(buf *bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return respondError(ctx, http.StatusInternalServerError, err)
	}
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send(buf.Bytes())
}

func redirect(ctx router.Context, location string) error {
	ctx.SetHeader("Location", location)
	return ctx.JSON(http.StatusSeeOther, map[string]string{"location": location})
}

func parseForm(ctx router.Context) (url.Values, error) {
	return url.ParseQuery(string(ctx.Body()))
}

func authFailureMessage(err error, fallback string) string {
	var authErr *hotelapi.AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	if reason := hotelapi.Reason(err); reason != "" {
		return reason
	}
	return fallback
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Login == "" {
		routes.Login = "/login"
	}
	if routes.Register == "" {
		routes.Register = "/register"
	}
	if routes.Logout == "" {
		routes.Logout = "/logout"
	}
	if routes.Dashboard == "" {
		routes.Dashboard = "/dashboard"
	}
	if routes.Bookings == "" {
		routes.Bookings = "/bookings"
	}
	if routes.Users == "" {
		routes.Users = "/users"
	}
	return routes
}
