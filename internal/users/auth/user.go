// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"fmt"

	"github.com/taibuivan/backoffice/internal/platform/apperr"
	"github.com/taibuivan/backoffice/internal/platform/validate"
)

// # Roles

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleUser, RoleGuest}

// Label returns the human-readable role name.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleUser:
		return "User"
	case RoleGuest:
		return "Guest"
	default:
		return string(r)
	}
}

func roleStrings() []string {
	out := make([]string, len(Roles))
	for i, role := range Roles {
		out[i] = string(role)
	}
	return out
}

// # Domain Entities

// User is the authenticated principal as returned by the backend.
//
// Timestamps are kept as the server's strings; they are displayed, never
// compared.
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  *string `json:"full_name"`
	Role      Role    `json:"role"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// DisplayName returns the full name, or the email when none is set.
func (u *User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Email
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// TokenResponse is the credential issued by the login endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// # Response Shapes

// UserPayload is the wire form of [User]. Pointer fields distinguish an
// absent member from a zero value.
type UserPayload struct {
	ID        *string `json:"id"`
	Email     *string `json:"email"`
	FullName  *string `json:"full_name"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"is_active"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

// Validate checks the payload against the user shape. A missing role
// defaults to "user" and a missing is_active defaults to true.
func (p *UserPayload) Validate() (*User, error) {
	v := &validate.Validator{}

	v.Present(FieldID, p.ID != nil)
	if p.ID != nil {
		v.UUID(FieldID, *p.ID)
	}

	v.Present(FieldEmail, p.Email != nil)
	if p.Email != nil {
		v.Email(FieldEmail, *p.Email)
	}

	role := string(RoleUser)
	if p.Role != nil {
		role = *p.Role
		v.OneOf(FieldRole, role, roleStrings()...)
	}

	v.Present(FieldCreatedAt, p.CreatedAt != nil)
	v.Present(FieldUpdatedAt, p.UpdatedAt != nil)

	if err := v.ResponseErr(ResourceUser); err != nil {
		return nil, err
	}

	isActive := true
	if p.IsActive != nil {
		isActive = *p.IsActive
	}

	return &User{
		ID:        *p.ID,
		Email:     *p.Email,
		FullName:  p.FullName,
		Role:      Role(role),
		IsActive:  isActive,
		CreatedAt: *p.CreatedAt,
		UpdatedAt: *p.UpdatedAt,
	}, nil
}

// UserListPayload is the wire form of a list of users.
type UserListPayload []UserPayload

// Validate checks every entry; the first failure names its index.
func (l UserListPayload) Validate() ([]User, error) {
	users := make([]User, 0, len(l))
	for i := range l {
		user, err := l[i].Validate()
		if err != nil {
			return nil, indexed(err, i)
		}
		users = append(users, *user)
	}
	return users, nil
}

// tokenPayload is the wire form of [TokenResponse].
type tokenPayload struct {
	AccessToken *string `json:"access_token"`
	TokenType   *string `json:"token_type"`
}

func (p *tokenPayload) validate() (*TokenResponse, error) {
	v := &validate.Validator{}

	v.Present(FieldAccessToken, p.AccessToken != nil)
	if p.AccessToken != nil {
		v.Required(FieldAccessToken, *p.AccessToken)
	}
	v.Present(FieldTokenType, p.TokenType != nil)
	if p.TokenType != nil {
		v.Required(FieldTokenType, *p.TokenType)
	}

	if err := v.ResponseErr(ResourceToken); err != nil {
		return nil, err
	}

	return &TokenResponse{AccessToken: *p.AccessToken, TokenType: *p.TokenType}, nil
}

// indexed prefixes the field details of a shape error with the list index.
func indexed(err error, index int) error {
	appErr := apperr.As(err)
	if appErr == nil {
		return err
	}
	for i := range appErr.Details {
		appErr.Details[i].Field = fmt.Sprintf("%d.%s", index, appErr.Details[i].Field)
	}
	return appErr
}
