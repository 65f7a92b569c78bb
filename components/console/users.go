package console

import (
	"context"

	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

// UserDraft is the typed staging object for the user form. Every field holds
// the raw string form-input value.
type UserDraft struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

// NewUserDraft returns the create-mode defaults.
func NewUserDraft() *UserDraft {
	return &UserDraft{Role: "user"}
}

// UserDraftFrom pre-populates a draft for edit mode. The password field is
// intentionally left blank; it is only sent when the operator types one.
func UserDraftFrom(user hotelapi.User) *UserDraft {
	return &UserDraft{
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  user.Role,
	}
}

// Payload converts the draft to the wire shape.
func (d *UserDraft) Payload() (map[string]any, error) {
	payload := map[string]any{
		"name":  d.Name,
		"email": d.Email,
		"role":  d.Role,
	}
	if d.Phone != "" {
		payload["phone"] = d.Phone
	}
	if d.Password != "" {
		payload["password"] = d.Password
	}
	return payload, nil
}

// userDraftSchema gates submission; the backend remains the authority.
var userDraftSchema = map[string]any{
	"type":     "object",
	"required": []any{"name", "email", "role"},
	"properties": map[string]any{
		"name":     map[string]any{"type": "string", "minLength": 2},
		"email":    map[string]any{"type": "string", "minLength": 3, "pattern": "^[^@\\s]+@[^@\\s]+$"},
		"password": map[string]any{"type": "string", "minLength": 6},
		"phone":    map[string]any{"type": "string"},
		"role":     map[string]any{"type": "string", "enum": []any{"user", "admin"}},
	},
}

// UsersListingOptions configures NewUsersListing.
type UsersListingOptions struct {
	API       hotelapi.UserAPI
	Notifier  Notifier
	Telemetry Telemetry
	Validator DraftValidator
	PageSize  int
}

// NewUsersListing builds the list-management controller for the Users screen.
func NewUsersListing(opts UsersListingOptions) (*Listing[hotelapi.User, *UserDraft], error) {
	validator := opts.Validator
	if validator == nil {
		sv := NewSchemaValidator()
		sv.Register("users", userDraftSchema)
		validator = sv
	}
	return NewListing(ListingOptions[hotelapi.User, *UserDraft]{
		Entity:   "users",
		Singular: "User",
		Fetch: func(ctx context.Context, params QueryParams) (hotelapi.Page[hotelapi.User], error) {
			return opts.API.ListUsers(ctx, hotelapi.UserQuery{
				ListQuery: listQueryFrom(params),
				Name:      params.Filters["name"],
				Email:     params.Filters["email"],
				Role:      params.Filters["role"],
			})
		},
		Create: func(ctx context.Context, payload map[string]any) error {
			_, err := opts.API.CreateUser(ctx, payload)
			return err
		},
		Update: func(ctx context.Context, id string, payload map[string]any) error {
			_, err := opts.API.UpdateUser(ctx, id, payload)
			return err
		},
		Delete:    opts.API.DeleteUser,
		ID:        func(u hotelapi.User) string { return u.ID },
		NewDraft:  NewUserDraft,
		DraftFrom: UserDraftFrom,
		Columns: []Column{
			{Field: "name", Sortable: true},
			{Field: "email", Sortable: true},
			{Field: "phone"},
			{Field: "role", Sortable: true},
			{Field: "createdAt", Label: "Created", Sortable: true},
		},
		Filters: []FilterField{
			{Key: "name", Label: "Name", Kind: "text", Placeholder: "Search by name"},
			{Key: "email", Label: "Email", Kind: "text", Placeholder: "Search by email"},
			{Key: "role", Label: "Role", Kind: "select", Options: hotelapi.UserRoles},
		},
		PageSize:  opts.PageSize,
		Validator: validator,
		Notifier:  opts.Notifier,
		Telemetry: opts.Telemetry,
	})
}

func listQueryFrom(params QueryParams) hotelapi.ListQuery {
	return hotelapi.ListQuery{
		Page:  params.Page,
		Limit: params.Limit,
		Sort:  params.Sort,
		Order: string(params.Order),
	}
}
