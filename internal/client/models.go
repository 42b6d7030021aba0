// ABOUTME: Wire types for the CyrLab REST API
// ABOUTME: Users, roles, pagination, and the create/update request bodies

package client

import "github.com/go-playground/validator/v10"

// RoleAdmin is the role name that grants access to restricted sections.
const RoleAdmin = "Admin"

// User is the remote user entity. Roles carry authorization only, never
// identity.
type User struct {
	ID       string   `json:"id"`
	UserName string   `json:"userName"`
	Email    string   `json:"email"`
	FullName string   `json:"fullName,omitempty"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// Role is a remote role entry from /api/Roles.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PaginatedUsers is one page of the user list. len(Items) never exceeds
// PageSize.
type PaginatedUsers struct {
	Items      []User `json:"items"`
	TotalCount int    `json:"totalCount"`
	PageNumber int    `json:"pageNumber"`
	PageSize   int    `json:"pageSize"`
}

// TotalPages derives the page count from TotalCount and PageSize.
func (p *PaginatedUsers) TotalPages() int {
	if p.PageSize <= 0 {
		return 1
	}
	pages := (p.TotalCount + p.PageSize - 1) / p.PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// CreateUserRequest is the body for POST /api/Users.
type CreateUserRequest struct {
	UserName  string   `json:"userName"  validate:"required,min=3"`
	FirstName string   `json:"firstName" validate:"required,min=2"`
	LastName  string   `json:"lastName"  validate:"required,min=2"`
	Email     string   `json:"email"     validate:"required,email"`
	Password  string   `json:"password"  validate:"required,min=8"`
	Roles     []string `json:"roles"     validate:"required,min=1,dive,required"`
}

// UpdateUserRequest is the body for PUT /api/Users/{id}. There is no
// password field; passwords are never updated through this endpoint.
type UpdateUserRequest struct {
	ID        string   `json:"id"        validate:"required"`
	UserName  string   `json:"userName"  validate:"required,min=3"`
	FirstName string   `json:"firstName" validate:"required,min=2"`
	LastName  string   `json:"lastName"  validate:"required,min=2"`
	Email     string   `json:"email"     validate:"required,email"`
	Roles     []string `json:"roles"     validate:"required,min=1,dive,required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the request against its constraints before it touches the
// network.
func (r *CreateUserRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// Validate checks the request against its constraints before it touches the
// network.
func (r *UpdateUserRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
