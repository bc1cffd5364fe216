// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages user records through the backend's /users resource.

# Architecture

  - Inputs: UserCreate and UserUpdate, validated before they are sent.
  - Domain: Reuses [auth.User] and its payload validation for responses.
  - Access: Listing and managing other users requires the admin role on the
    backend; the console hides those pages from other roles.
*/
package account

import (
	"net/url"
	"strconv"

	"github.com/taibuivan/backoffice/internal/platform/validate"
	"github.com/taibuivan/backoffice/internal/users/auth"
)

// # Endpoints

const (
	PathUsers = "/users"
)

func userPath(id string) string { return PathUsers + "/" + url.PathEscape(id) }

// # Inputs

// UserCreate is the payload for registration and admin-side creation.
type UserCreate struct {
	Email    string     `json:"email"`
	FullName string     `json:"full_name"`
	Password string     `json:"password"`
	IsActive *bool      `json:"is_active,omitempty"`
	Role     *auth.Role `json:"role,omitempty"`
}

// Validate checks the input and fills in the defaults (active, role user).
func (in *UserCreate) Validate() error {
	v := (&validate.Validator{}).
		Email(auth.FieldEmail, in.Email).
		Required(auth.FieldFullName, in.FullName).
		MinLen(auth.FieldPassword, in.Password, auth.MinPasswordLength)

	if in.Role != nil {
		v.OneOf(auth.FieldRole, string(*in.Role), roleNames()...)
	}

	if err := v.Err(); err != nil {
		return err
	}

	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}
	if in.Role == nil {
		role := auth.RoleUser
		in.Role = &role
	}
	return nil
}

// UserUpdate is a partial update; nil fields are left unchanged.
type UserUpdate struct {
	Email    *string    `json:"email,omitempty"`
	FullName *string    `json:"full_name,omitempty"`
	Password *string    `json:"password,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
	Role     *auth.Role `json:"role,omitempty"`
}

// Validate checks only the fields that are set.
func (in *UserUpdate) Validate() error {
	v := &validate.Validator{}

	if in.Email != nil {
		v.Email(auth.FieldEmail, *in.Email)
	}
	if in.FullName != nil {
		v.Required(auth.FieldFullName, *in.FullName)
	}
	if in.Password != nil {
		v.MinLen(auth.FieldPassword, *in.Password, auth.MinPasswordLength)
	}
	if in.Role != nil {
		v.OneOf(auth.FieldRole, string(*in.Role), roleNames()...)
	}

	return v.Err()
}

// IsEmpty reports whether the update would change nothing.
func (in *UserUpdate) IsEmpty() bool {
	return in.Email == nil && in.FullName == nil && in.Password == nil && in.IsActive == nil && in.Role == nil
}

// ListFilter narrows a user listing. Zero-valued pointers are omitted.
type ListFilter struct {
	Skip     *int
	Limit    *int
	Role     *auth.Role
	IsActive *bool
}

// Query encodes the filter as URL query parameters.
func (f ListFilter) Query() url.Values {
	query := url.Values{}
	if f.Skip != nil {
		query.Set("skip", strconv.Itoa(*f.Skip))
	}
	if f.Limit != nil {
		query.Set("limit", strconv.Itoa(*f.Limit))
	}
	if f.Role != nil {
		query.Set(auth.FieldRole, string(*f.Role))
	}
	if f.IsActive != nil {
		query.Set(auth.FieldIsActive, strconv.FormatBool(*f.IsActive))
	}
	return query
}

func roleNames() []string {
	names := make([]string, len(auth.Roles))
	for i, role := range auth.Roles {
		names[i] = string(role)
	}
	return names
}
