package hotelapi

import "context"

// AuthAPI exchanges credentials for a session token and refreshes identity.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (Credentials, error)
	Register(ctx context.Context, input RegisterInput) (Credentials, error)
	Me(ctx context.Context) (User, error)
}

// UserAPI manages the users collection.
type UserAPI interface {
	ListUsers(ctx context.Context, query UserQuery) (Page[User], error)
	GetUser(ctx context.Context, id string) (User, error)
	CreateUser(ctx context.Context, payload map[string]any) (User, error)
	UpdateUser(ctx context.Context, id string, payload map[string]any) (User, error)
	DeleteUser(ctx context.Context, id string) error
}

// BookingAPI manages the bookings collection.
type BookingAPI interface {
	ListBookings(ctx context.Context, query BookingQuery) (Page[Booking], error)
	GetBooking(ctx context.Context, id string) (Booking, error)
	ListUserBookings(ctx context.Context, userID string, query BookingQuery) (Page[Booking], error)
	CreateBooking(ctx context.Context, payload map[string]any) (Booking, error)
	UpdateBooking(ctx context.Context, id string, payload map[string]any) (Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// API is a convenience union for consumers that need the full surface.
type API interface {
	AuthAPI
	UserAPI
	BookingAPI
}
