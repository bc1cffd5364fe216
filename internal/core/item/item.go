// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package item manages the inventory records exposed by the backend's /items
resource.

# Architecture

  - Entities: Item, with closed Category and Status sets.
  - Inputs: ItemCreate (with defaults) and ItemUpdate (partial).
  - Service: CRUD plus the owner's listing and publishing.
*/
package item

import (
	"math"
	"net/url"
	"strconv"

	"github.com/taibuivan/backoffice/internal/platform/validate"
	"github.com/taibuivan/backoffice/pkg/pointer"
)

// # Enumerations

// Category classifies an item.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryBooks       Category = "books"
	CategoryFood        Category = "food"
	CategoryOther       Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryElectronics, CategoryClothing, CategoryBooks, CategoryFood, CategoryOther}

var categoryLabels = map[Category]string{
	CategoryElectronics: "Electronics",
	CategoryClothing:    "Clothing",
	CategoryBooks:       "Books",
	CategoryFood:        "Food",
	CategoryOther:       "Other",
}

// Label returns the display name of the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Status is the publication state of an item.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusDraft, StatusPublished, StatusArchived}

var statusLabels = map[Status]string{
	StatusDraft:     "Draft",
	StatusPublished: "Published",
	StatusArchived:  "Archived",
}

// Label returns the display name of the status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// # Constraints

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 1000
	MaxPrice             = 1_000_000
	MaxQuantity          = 10_000
	DefaultQuantity      = 1
)

// # Field Identifiers

const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldQuantity    = "quantity"
	FieldCategory    = "category"
	FieldStatus      = "status"
	FieldIsAvailable = "is_available"
	FieldOwnerID     = "owner_id"
	FieldCreatedAt   = "created_at"
	FieldUpdatedAt   = "updated_at"
)

// # Domain Entities

// Item is an inventory record owned by a user.
type Item struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	Category    Category `json:"category"`
	Status      Status   `json:"status"`
	IsAvailable bool     `json:"is_available"`
	OwnerID     string   `json:"owner_id"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// # Inputs

// ItemCreate is the payload for a new item.
type ItemCreate struct {
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Quantity    *int      `json:"quantity,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	IsAvailable *bool     `json:"is_available,omitempty"`
}

// Validate checks the input, rounds the price to cents, and fills in the
// defaults (quantity 1, category other, status draft, available).
func (in *ItemCreate) Validate() error {
	v := (&validate.Validator{}).
		Required(FieldTitle, in.Title).
		MaxLen(FieldTitle, in.Title, MaxTitleLength).
		FloatRange(FieldPrice, in.Price, 0, MaxPrice)

	if in.Description != nil {
		v.MaxLen(FieldDescription, *in.Description, MaxDescriptionLength)
	}
	if in.Quantity != nil {
		v.Range(FieldQuantity, *in.Quantity, 0, MaxQuantity)
	}
	if in.Category != nil {
		v.OneOf(FieldCategory, string(*in.Category), categoryNames()...)
	}
	if in.Status != nil {
		v.OneOf(FieldStatus, string(*in.Status), statusNames()...)
	}

	if err := v.Err(); err != nil {
		return err
	}

	in.Price = RoundPrice(in.Price)

	in.Quantity = pointer.To(pointer.Fallback(in.Quantity, DefaultQuantity))
	in.Category = pointer.To(pointer.Fallback(in.Category, CategoryOther))
	in.Status = pointer.To(pointer.Fallback(in.Status, StatusDraft))
	in.IsAvailable = pointer.To(pointer.Fallback(in.IsAvailable, true))
	return nil
}

// ItemUpdate is a partial update; nil fields are left unchanged.
type ItemUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Quantity    *int      `json:"quantity,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	IsAvailable *bool     `json:"is_available,omitempty"`
}

// Validate checks only the fields that are set and rounds the price.
func (in *ItemUpdate) Validate() error {
	v := &validate.Validator{}

	if in.Title != nil {
		v.Required(FieldTitle, *in.Title).MaxLen(FieldTitle, *in.Title, MaxTitleLength)
	}
	if in.Description != nil {
		v.MaxLen(FieldDescription, *in.Description, MaxDescriptionLength)
	}
	if in.Price != nil {
		v.FloatRange(FieldPrice, *in.Price, 0, MaxPrice)
	}
	if in.Quantity != nil {
		v.Range(FieldQuantity, *in.Quantity, 0, MaxQuantity)
	}
	if in.Category != nil {
		v.OneOf(FieldCategory, string(*in.Category), categoryNames()...)
	}
	if in.Status != nil {
		v.OneOf(FieldStatus, string(*in.Status), statusNames()...)
	}

	if err := v.Err(); err != nil {
		return err
	}

	if in.Price != nil {
		rounded := RoundPrice(*in.Price)
		in.Price = &rounded
	}
	return nil
}

// ListFilter narrows an item listing. Nil fields are omitted.
type ListFilter struct {
	Skip        *int
	Limit       *int
	Status      *Status
	Category    *Category
	IsAvailable *bool
	MinPrice    *float64
	MaxPrice    *float64
	Search      *string
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
	if f.Status != nil {
		query.Set(FieldStatus, string(*f.Status))
	}
	if f.Category != nil {
		query.Set(FieldCategory, string(*f.Category))
	}
	if f.IsAvailable != nil {
		query.Set(FieldIsAvailable, strconv.FormatBool(*f.IsAvailable))
	}
	if f.MinPrice != nil {
		query.Set("min_price", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		query.Set("max_price", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.Search != nil && *f.Search != "" {
		query.Set("search", *f.Search)
	}
	return query
}

// RoundPrice rounds to two decimal places.
func RoundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}

func categoryNames() []string {
	names := make([]string, len(Categories))
	for i, category := range Categories {
		names[i] = string(category)
	}
	return names
}

func statusNames() []string {
	names := make([]string, len(Statuses))
	for i, status := range Statuses {
		names[i] = string(status)
	}
	return names
}
