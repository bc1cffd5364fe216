// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"github.com/taibuivan/backoffice/internal/platform/constants"
	"github.com/taibuivan/backoffice/internal/users/auth"
)

// Access is the outcome of a page's role requirement.
type Access int

const (
	// AccessPending means the initial user resolution has not finished.
	AccessPending Access = iota
	AccessAllow
	AccessRedirectLogin
	AccessRedirectUnauthorized
)

func (a Access) String() string {
	switch a {
	case AccessPending:
		return "pending"
	case AccessAllow:
		return "allow"
	case AccessRedirectLogin:
		return "redirect_login"
	case AccessRedirectUnauthorized:
		return "redirect_unauthorized"
	default:
		return "unknown"
	}
}

// Target returns the redirect path for a denial, or "".
func (a Access) Target() string {
	switch a {
	case AccessRedirectLogin:
		return constants.RouteLogin
	case AccessRedirectUnauthorized:
		return constants.RouteUnauthorized
	default:
		return ""
	}
}

// Require decides whether the current user may see a page that needs role.
// An empty role only requires a signed-in user; admin satisfies every role.
func (s *Session) Require(role auth.Role) Access {
	return Decide(s.Snapshot(), role)
}

// Enforce is [Session.Require] that also navigates on denial.
func (s *Session) Enforce(role auth.Role) Access {
	access := s.Require(role)
	if target := access.Target(); target != "" {
		s.navigator.Navigate(target)
	}
	return access
}

// Decide is the pure role check behind [Session.Require].
func Decide(snapshot Snapshot, role auth.Role) Access {
	switch {
	case snapshot.Loading():
		return AccessPending
	case snapshot.User == nil:
		return AccessRedirectLogin
	case role != "" && snapshot.User.Role != role && !snapshot.User.IsAdmin():
		return AccessRedirectUnauthorized
	default:
		return AccessAllow
	}
}
