// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/backoffice/internal/platform/constants"
	"github.com/taibuivan/backoffice/internal/platform/respond"
	"github.com/taibuivan/backoffice/internal/users/auth"
)

// Stat is one dashboard tile.
type Stat struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Page is the descriptor served for a page route. The edge server never
// knows the user, so descriptors are static.
type Page struct {
	Path  string `json:"path"`
	Title string `json:"title"`
	// Protected pages need a signed-in user; Role narrows that further and
	// is enforced by the client session, not here.
	Protected bool      `json:"protected"`
	Role      auth.Role `json:"role,omitempty"`
	// API lists the backend endpoints the page reads.
	API   []string `json:"api,omitempty"`
	Stats []Stat   `json:"stats,omitempty"`
}

// Catalog is every page the edge server knows, keyed by path.
var Catalog = []Page{
	{Path: constants.RouteHome, Title: "Backoffice"},
	{Path: constants.RouteLogin, Title: "Sign in", API: []string{"POST /auth/login"}},
	{Path: constants.RouteRegister, Title: "Create an account", API: []string{"POST /users"}},
	{
		Path: constants.RouteDashboard, Title: "Dashboard", Protected: true,
		API: []string{"GET /users/me"},
		Stats: []Stat{
			{Title: "Total Users", Value: "124", Description: "+12% from last month"},
			{Title: "Total Items", Value: "573", Description: "+23% from last month"},
			{Title: "Active Sessions", Value: "89", Description: "Current active users"},
			{Title: "Revenue", Value: "$12,345", Description: "+8% from last month"},
		},
	},
	{Path: constants.RouteItems, Title: "Items", Protected: true, API: []string{"GET /items", "POST /items", "PATCH /items/{id}", "DELETE /items/{id}"}},
	{Path: constants.RouteUsers, Title: "Users", Protected: true, Role: auth.RoleAdmin, API: []string{"GET /users"}},
	{Path: constants.RouteProfile, Title: "Profile", Protected: true, API: []string{"GET /users/me", "PATCH /users/{id}", "POST /auth/change-password"}},
	{Path: constants.RouteSettings, Title: "Settings", Protected: true},
	{Path: constants.RouteUnauthorized, Title: "Unauthorized"},
}

// PageHandler serves the [Catalog].
type PageHandler struct {
	pages []Page
}

// NewPageHandler serves pages.
func NewPageHandler(pages []Page) *PageHandler {
	return &PageHandler{pages: pages}
}

// Register mounts one GET route per page.
func (handler *PageHandler) Register(r chi.Router) {
	for _, page := range handler.pages {
		r.Get(page.Path, handler.serve(page))
	}
}

func (handler *PageHandler) serve(page Page) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, page)
	}
}
