// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import (
	"fmt"

	"github.com/taibuivan/backoffice/internal/platform/apperr"
	"github.com/taibuivan/backoffice/internal/platform/validate"
)

// resourceItem names items in INVALID_RESPONSE errors.
const resourceItem = "item"

// itemPayload is the wire form of [Item]. Pointer fields distinguish an
// absent member from a zero value.
type itemPayload struct {
	ID          *string  `json:"id"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *float64 `json:"quantity"`
	Category    *string  `json:"category"`
	Status      *string  `json:"status"`
	IsAvailable *bool    `json:"is_available"`
	OwnerID     *string  `json:"owner_id"`
	CreatedAt   *string  `json:"created_at"`
	UpdatedAt   *string  `json:"updated_at"`
}

func (p *itemPayload) validate() (*Item, error) {
	v := &validate.Validator{}

	v.Present(FieldID, p.ID != nil)
	if p.ID != nil {
		v.UUID(FieldID, *p.ID)
	}
	v.Present(FieldTitle, p.Title != nil)
	v.Present(FieldPrice, p.Price != nil)
	v.Present(FieldQuantity, p.Quantity != nil)
	v.Present(FieldCategory, p.Category != nil)
	if p.Category != nil {
		v.OneOf(FieldCategory, *p.Category, categoryNames()...)
	}
	v.Present(FieldStatus, p.Status != nil)
	if p.Status != nil {
		v.OneOf(FieldStatus, *p.Status, statusNames()...)
	}
	v.Present(FieldIsAvailable, p.IsAvailable != nil)
	v.Present(FieldOwnerID, p.OwnerID != nil)
	if p.OwnerID != nil {
		v.UUID(FieldOwnerID, *p.OwnerID)
	}
	v.Present(FieldCreatedAt, p.CreatedAt != nil)
	v.Present(FieldUpdatedAt, p.UpdatedAt != nil)

	if err := v.ResponseErr(resourceItem); err != nil {
		return nil, err
	}

	return &Item{
		ID:          *p.ID,
		Title:       *p.Title,
		Description: p.Description,
		Price:       *p.Price,
		Quantity:    int(*p.Quantity),
		Category:    Category(*p.Category),
		Status:      Status(*p.Status),
		IsAvailable: *p.IsAvailable,
		OwnerID:     *p.OwnerID,
		CreatedAt:   *p.CreatedAt,
		UpdatedAt:   *p.UpdatedAt,
	}, nil
}

type itemListPayload []itemPayload

func (l itemListPayload) validate() ([]Item, error) {
	items := make([]Item, 0, len(l))
	for i := range l {
		item, err := l[i].validate()
		if err != nil {
			if appErr := apperr.As(err); appErr != nil {
				for j := range appErr.Details {
					appErr.Details[j].Field = fmt.Sprintf("%d.%s", i, appErr.Details[j].Field)
				}
			}
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}
