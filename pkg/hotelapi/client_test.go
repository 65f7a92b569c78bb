package hotelapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListUsersSendsQueryAndToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("expected auth header, got %q", got)
		}
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "10" || q.Get("sort") != "name" || q.Get("order") != "asc" {
			t.Fatalf("unexpected paging query: %v", q)
		}
		if q.Get("role") != "admin" {
			t.Fatalf("expected role filter, got %q", q.Get("role"))
		}
		if _, present := q["name"]; present {
			t.Fatalf("empty filter fields must be omitted, got %v", q)
		}
		_ = json.NewEncoder(w).Encode(userListEnvelope{
			Users:      []User{{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "admin"}},
			Pagination: Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 21, ItemsPerPage: 10},
		})
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL, TokenSource: func() string { return "secret" }})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	page, err := client.ListUsers(context.Background(), UserQuery{
		ListQuery: ListQuery{Page: 2, Limit: 10, Sort: "name", Order: "asc"},
		Role:      "admin",
	})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Ada" {
		t.Fatalf("unexpected page: %#v", page)
	}
	if page.Pagination.CurrentPage != 2 || page.Pagination.TotalItems != 21 {
		t.Fatalf("unexpected pagination: %#v", page.Pagination)
	}
}

func TestCreateBookingValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorEnvelope{
			Errors: []FieldError{
				{Field: "roomNumber", Message: "room number is required"},
				{Field: "guests", Message: "guests must be at least 1"},
			},
		})
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.CreateBooking(context.Background(), map[string]any{"roomType": "single"})
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	want := "room number is required, guests must be at least 1"
	if verr.Reason() != want {
		t.Fatalf("expected joined reason %q, got %q", want, verr.Reason())
	}
}

func TestLoginRejectedBecomesAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(errorEnvelope{Message: "invalid credentials"})
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Login(context.Background(), "a@example.com", "nope")
	aerr, ok := err.(*AuthError)
	if !ok {
		t.Fatalf("expected *AuthError, got %T: %v", err, err)
	}
	if aerr.Message != "invalid credentials" {
		t.Fatalf("unexpected message %q", aerr.Message)
	}
}

func TestLoginDecodesCredentialEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ada@example.com" {
			t.Fatalf("unexpected login payload: %v", body)
		}
		_ = json.NewEncoder(w).Encode(credentialsEnvelope{Data: Credentials{
			Token: "jwt-token",
			User:  User{ID: "u1", Name: "Ada", Role: "admin"},
		}})
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	creds, err := client.Login(context.Background(), "ada@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if creds.Token != "jwt-token" || creds.User.Role != "admin" {
		t.Fatalf("unexpected credentials: %#v", creds)
	}
}

func TestGuestUnmarshalAcceptsIDOrObject(t *testing.T) {
	var b Booking
	populated := []byte(`{"_id":"b1","user":{"_id":"u1","name":"Ada"},"roomNumber":"101"}`)
	if err := json.Unmarshal(populated, &b); err != nil {
		t.Fatalf("unmarshal populated: %v", err)
	}
	if b.User.ID != "u1" || b.User.Name != "Ada" {
		t.Fatalf("unexpected guest: %#v", b.User)
	}
	bare := []byte(`{"_id":"b2","user":"u2","roomNumber":"102"}`)
	if err := json.Unmarshal(bare, &b); err != nil {
		t.Fatalf("unmarshal bare id: %v", err)
	}
	if b.User.ID != "u2" {
		t.Fatalf("unexpected guest id: %#v", b.User)
	}
}

func TestDeleteUserPropagatesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(errorEnvelope{Message: "user not found"})
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	err = client.DeleteUser(context.Background(), "missing")
	serr, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if serr.Status != http.StatusNotFound || serr.Message != "user not found" {
		t.Fatalf("unexpected error: %#v", serr)
	}
}
