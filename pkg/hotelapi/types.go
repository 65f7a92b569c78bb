package hotelapi

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"
)

// RoomTypes and BookingStatuses are the values the backend accepts for the
// corresponding booking fields; filter bars and forms render them in order.
var (
	RoomTypes       = []string{"single", "double", "suite", "deluxe"}
	BookingStatuses = []string{"pending", "confirmed", "cancelled", "completed"}
	UserRoles       = []string{"user", "admin"}
)

// User is a managed account record.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Guest is the user reference embedded in a booking. The backend returns
// either a bare id or a populated object depending on the endpoint.
type Guest struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON accepts both the populated and the id-only representation.
func (g *Guest) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &g.ID)
	}
	type guestAlias Guest
	var alias guestAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*g = Guest(alias)
	return nil
}

// Booking is a managed reservation record.
type Booking struct {
	ID           string    `json:"_id"`
	User         Guest     `json:"user"`
	RoomNumber   string    `json:"roomNumber"`
	RoomType     string    `json:"roomType"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	Guests       int       `json:"guests"`
	TotalPrice   float64   `json:"totalPrice"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Pagination is the metadata block every list endpoint returns.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// Page couples one fetched page of records with its pagination metadata.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// ListQuery carries the paging/sorting portion shared by every list endpoint.
type ListQuery struct {
	Page  int
	Limit int
	Sort  string
	Order string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	return v
}

// UserQuery filters the users collection. Empty fields are omitted.
type UserQuery struct {
	ListQuery
	Name  string
	Email string
	Role  string
}

// Values encodes the query, dropping empty filter fields.
func (q UserQuery) Values() url.Values {
	v := q.values()
	setNonEmpty(v, "name", q.Name)
	setNonEmpty(v, "email", q.Email)
	setNonEmpty(v, "role", q.Role)
	return v
}

// BookingQuery filters the bookings collection. Empty fields are omitted.
type BookingQuery struct {
	ListQuery
	Status   string
	RoomType string
	MinPrice string
	MaxPrice string
}

// Values encodes the query, dropping empty filter fields.
func (q BookingQuery) Values() url.Values {
	v := q.values()
	setNonEmpty(v, "status", q.Status)
	setNonEmpty(v, "roomType", q.RoomType)
	setNonEmpty(v, "minPrice", q.MinPrice)
	setNonEmpty(v, "maxPrice", q.MaxPrice)
	return v
}

func setNonEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

// RegisterInput is the payload for account self-registration.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// Credentials couples the issued token with the authenticated identity.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
