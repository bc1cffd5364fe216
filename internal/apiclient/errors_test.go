// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/backoffice/internal/apiclient"
	"github.com/taibuivan/backoffice/internal/platform/apperr"
)

func TestParseErrorBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		isNil   bool
		isList  bool
		message string
	}{
		{"string", `{"detail":"Inactive user"}`, false, false, "Inactive user"},
		{"list", `{"detail":[{"loc":["body","password"],"msg":"too short","type":"value_error"}]}`, false, true, ""},
		{"empty_list", `{"detail":[]}`, false, true, ""},
		{"missing_detail", `{"message":"x"}`, true, false, ""},
		{"number_detail", `{"detail":42}`, true, false, ""},
		{"missing_msg", `{"detail":[{"loc":["a"],"type":"t"}]}`, true, false, ""},
		{"not_json", `Internal Server Error`, true, false, ""},
		{"empty", ``, true, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail := apiclient.ParseErrorBody([]byte(tt.body))
			if tt.isNil {
				assert.Nil(t, detail)
				return
			}
			require.NotNil(t, detail)
			assert.Equal(t, tt.isList, detail.IsList())
			assert.Equal(t, tt.message, detail.Message)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	listErr := &apiclient.APIError{
		Status: 422,
		Detail: apiclient.ParseErrorBody([]byte(`{"detail":[
			{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error"},
			{"loc":["query","limit",0],"msg":"must be positive","type":"value_error"}
		]}`)),
	}
	assert.Equal(t,
		"body.email: value is not a valid email address, query.limit.0: must be positive",
		apiclient.ErrorMessage(listErr),
	)

	stringErr := &apiclient.APIError{Status: 400, Detail: apiclient.ParseErrorBody([]byte(`{"detail":"Email already registered"}`))}
	assert.Equal(t, "Email already registered", apiclient.ErrorMessage(stringErr))

	shapeErr := apperr.InvalidResponse("token", apperr.FieldError{Field: "access_token", Message: "This field is required"})
	assert.Equal(t, "access_token: This field is required", apiclient.ErrorMessage(shapeErr))

	plain := errors.New("connection refused")
	assert.Equal(t, "connection refused", apiclient.ErrorMessage(plain))
	assert.Empty(t, apiclient.ErrorMessage(nil))
}

func TestShapeError(t *testing.T) {
	var target struct {
		ID string `json:"id"`
	}
	decodeErr := &apiclient.DecodeError{Err: json.Unmarshal([]byte(`{"id":5}`), &target)}

	err := apiclient.ShapeError(decodeErr, "user")
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidResponse))

	other := errors.New("x")
	assert.Same(t, other, apiclient.ShapeError(other, "user"))
}
