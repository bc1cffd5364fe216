// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Endpoints

const (
	PathLogin          = "/auth/login"
	PathChangePassword = "/auth/change-password"
	PathCurrentUser    = "/users/me"
)

// # Field Identifiers

// Wire field names used in forms, payloads, and validation details.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldFullName        = "full_name"
	FieldRole            = "role"
	FieldIsActive        = "is_active"
	FieldID              = "id"
	FieldCreatedAt       = "created_at"
	FieldUpdatedAt       = "updated_at"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldConfirmPassword = "confirm_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
)

// # Input Constraints

const (
	// MinPasswordLength applies to login, registration, and password change.
	MinPasswordLength = 6
)

// # Response Resources

// Resource names used in INVALID_RESPONSE errors.
const (
	ResourceToken = "token"
	ResourceUser  = "user"
)
