package hotelapi

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MockData seeds deterministic records for tests or local demos.
type MockData struct {
	Users    []User
	Bookings []Booking
	Token    string
}

// Mock implements API against in-memory fixtures, including paging, filters,
// and sorting, so consumers can run end to end without a live backend.
type Mock struct {
	mu       sync.RWMutex
	users    []User
	bookings []Booking
	token    string
	nextID   int
}

// NewMock builds a mock backend from the provided fixtures.
func NewMock(data MockData) *Mock {
	token := data.Token
	if token == "" {
		token = "mock-token"
	}
	return &Mock{
		users:    append([]User(nil), data.Users...),
		bookings: append([]Booking(nil), data.Bookings...),
		token:    token,
	}
}

// Login accepts any non-empty email/password pair against the first user with
// a matching email, or the first user when the fixture set has no match.
func (m *Mock) Login(_ context.Context, email, password string) (Credentials, error) {
	if email == "" || password == "" {
		return Credentials{}, &AuthError{Status: 400, Message: "email and password are required"}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return Credentials{Token: m.token, User: u}, nil
		}
	}
	if len(m.users) > 0 {
		return Credentials{Token: m.token, User: m.users[0]}, nil
	}
	return Credentials{}, &AuthError{Status: 401, Message: "invalid credentials"}
}

// Register creates the account and signs it in.
func (m *Mock) Register(ctx context.Context, input RegisterInput) (Credentials, error) {
	user, err := m.CreateUser(ctx, map[string]any{
		"name":  input.Name,
		"email": input.Email,
		"phone": input.Phone,
		"role":  "user",
	})
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Token: m.token, User: user}, nil
}

// Me returns the first fixture user as the authenticated identity.
func (m *Mock) Me(context.Context) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.users) == 0 {
		return User{}, &StatusError{Status: 401, Message: "not authenticated"}
	}
	return m.users[0], nil
}

// ListUsers pages through the fixture users applying the query filters.
func (m *Mock) ListUsers(_ context.Context, query UserQuery) (Page[User], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]User, 0, len(m.users))
	for _, u := range m.users {
		if query.Name != "" && !contains(u.Name, query.Name) {
			continue
		}
		if query.Email != "" && !contains(u.Email, query.Email) {
			continue
		}
		if query.Role != "" && u.Role != query.Role {
			continue
		}
		matched = append(matched, u)
	}
	sortUsers(matched, query.Sort, query.Order)
	items, pagination := paginate(matched, query.Page, query.Limit)
	return Page[User]{Items: items, Pagination: pagination}, nil
}

// GetUser looks up a fixture user.
func (m *Mock) GetUser(_ context.Context, id string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, &StatusError{Status: 404, Message: "user not found"}
}

// CreateUser appends a user built from the payload.
func (m *Mock) CreateUser(_ context.Context, payload map[string]any) (User, error) {
	name, _ := payload["name"].(string)
	email, _ := payload["email"].(string)
	if name == "" || email == "" {
		return User{}, &ValidationError{Status: 400, Fields: []FieldError{{Field: "name", Message: "name and email are required"}}}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	user := User{
		ID:        fmt.Sprintf("user-%d", m.nextID),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	user.Phone, _ = payload["phone"].(string)
	if role, _ := payload["role"].(string); role != "" {
		user.Role = role
	} else {
		user.Role = "user"
	}
	m.users = append(m.users, user)
	return user, nil
}

// UpdateUser overwrites the editable fields of a fixture user.
func (m *Mock) UpdateUser(_ context.Context, id string, payload map[string]any) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.users {
		if u.ID != id {
			continue
		}
		applyString(payload, "name", &u.Name)
		applyString(payload, "email", &u.Email)
		applyString(payload, "phone", &u.Phone)
		applyString(payload, "role", &u.Role)
		m.users[i] = u
		return u, nil
	}
	return User{}, &StatusError{Status: 404, Message: "user not found"}
}

// DeleteUser removes a fixture user.
func (m *Mock) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return &StatusError{Status: 404, Message: "user not found"}
}

// ListBookings pages through the fixture bookings applying the query filters.
func (m *Mock) ListBookings(_ context.Context, query BookingQuery) (Page[Booking], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listBookingsLocked(query, "")
}

// ListUserBookings restricts the booking list to one guest.
func (m *Mock) ListUserBookings(_ context.Context, userID string, query BookingQuery) (Page[Booking], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listBookingsLocked(query, userID)
}

func (m *Mock) listBookingsLocked(query BookingQuery, userID string) (Page[Booking], error) {
	matched := make([]Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		if userID != "" && b.User.ID != userID {
			continue
		}
		if query.Status != "" && b.Status != query.Status {
			continue
		}
		if query.RoomType != "" && b.RoomType != query.RoomType {
			continue
		}
		if query.MinPrice != "" {
			if min, err := strconv.ParseFloat(query.MinPrice, 64); err == nil && b.TotalPrice < min {
				continue
			}
		}
		if query.MaxPrice != "" {
			if max, err := strconv.ParseFloat(query.MaxPrice, 64); err == nil && b.TotalPrice > max {
				continue
			}
		}
		matched = append(matched, b)
	}
	sortBookings(matched, query.Sort, query.Order)
	items, pagination := paginate(matched, query.Page, query.Limit)
	return Page[Booking]{Items: items, Pagination: pagination}, nil
}

// GetBooking looks up a fixture booking.
func (m *Mock) GetBooking(_ context.Context, id string) (Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return Booking{}, &StatusError{Status: 404, Message: "booking not found"}
}

// CreateBooking appends a booking built from the payload.
func (m *Mock) CreateBooking(_ context.Context, payload map[string]any) (Booking, error) {
	booking, err := bookingFromPayload(payload)
	if err != nil {
		return Booking{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	booking.ID = fmt.Sprintf("booking-%d", m.nextID)
	booking.CreatedAt = time.Now().UTC()
	m.bookings = append(m.bookings, booking)
	return booking, nil
}

// UpdateBooking overwrites the editable fields of a fixture booking.
func (m *Mock) UpdateBooking(_ context.Context, id string, payload map[string]any) (Booking, error) {
	updated, err := bookingFromPayload(payload)
	if err != nil {
		return Booking{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.bookings {
		if b.ID != id {
			continue
		}
		updated.ID = b.ID
		updated.CreatedAt = b.CreatedAt
		m.bookings[i] = updated
		return updated, nil
	}
	return Booking{}, &StatusError{Status: 404, Message: "booking not found"}
}

// DeleteBooking removes a fixture booking.
func (m *Mock) DeleteBooking(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.bookings {
		if b.ID == id {
			m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
			return nil
		}
	}
	return &StatusError{Status: 404, Message: "booking not found"}
}

func bookingFromPayload(payload map[string]any) (Booking, error) {
	booking := Booking{Status: "pending", RoomType: "single", Guests: 1}
	if id, _ := payload["user"].(string); id != "" {
		booking.User = Guest{ID: id}
	}
	applyString(payload, "roomNumber", &booking.RoomNumber)
	applyString(payload, "roomType", &booking.RoomType)
	applyString(payload, "status", &booking.Status)
	applyString(payload, "notes", &booking.Notes)
	if raw, ok := payload["guests"]; ok {
		booking.Guests = int(toFloat(raw))
	}
	if raw, ok := payload["totalPrice"]; ok {
		booking.TotalPrice = toFloat(raw)
	}
	if raw, _ := payload["checkInDate"].(string); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			booking.CheckInDate = t
		}
	}
	if raw, _ := payload["checkOutDate"].(string); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			booking.CheckOutDate = t
		}
	}
	if booking.RoomNumber == "" {
		return Booking{}, &ValidationError{Status: 400, Fields: []FieldError{{Field: "roomNumber", Message: "room number is required"}}}
	}
	return booking, nil
}

func sortUsers(users []User, field, order string) {
	sort.SliceStable(users, func(i, j int) bool {
		var less bool
		switch field {
		case "name":
			less = users[i].Name < users[j].Name
		case "email":
			less = users[i].Email < users[j].Email
		case "role":
			less = users[i].Role < users[j].Role
		default:
			less = users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		if order == "desc" {
			return !less
		}
		return less
	})
}

func sortBookings(bookings []Booking, field, order string) {
	sort.SliceStable(bookings, func(i, j int) bool {
		var less bool
		switch field {
		case "totalPrice":
			less = bookings[i].TotalPrice < bookings[j].TotalPrice
		case "checkInDate":
			less = bookings[i].CheckInDate.Before(bookings[j].CheckInDate)
		case "roomNumber":
			less = bookings[i].RoomNumber < bookings[j].RoomNumber
		case "status":
			less = bookings[i].Status < bookings[j].Status
		default:
			less = bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
		}
		if order == "desc" {
			return !less
		}
		return less
	})
}

func paginate[T any](items []T, page, limit int) ([]T, Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	total := len(items)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return append([]T(nil), items[start:end]...), Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}

func contains(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func applyString(payload map[string]any, key string, target *string) {
	if value, ok := payload[key].(string); ok {
		*target = value
	}
}

func toFloat(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}
