package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type sample struct {
	Name  *string `json:"name" validate:"required"`
	Count *int    `json:"count" validate:"required,gt=0"`
	Flag  *bool   `json:"flag" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantErr    bool
		wantFields []string
	}{
		{"valid", `{"name":"a","count":1,"flag":false}`, false, nil},
		{"empty strings and false pass required", `{"name":"","count":2,"flag":false}`, false, nil},
		{"empty body", ``, true, nil},
		{"broken json", `{"name":`, true, nil},
		{"wrong type", `{"name":"a","count":"1","flag":true}`, true, []string{"count"}},
		{"missing fields", `{}`, true, []string{"name", "count", "flag"}},
		{"rule failure", `{"name":"a","count":0,"flag":true}`, true, []string{"count"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst sample
			err := DecodeJSON(strings.NewReader(tt.body), &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON: err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("DecodeJSON: got %T, want *ValidationError", err)
			}
			for _, f := range tt.wantFields {
				if _, ok := ve.Fields[f]; !ok {
					t.Errorf("fields: got %v, want key %q", ve.Fields, f)
				}
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"ping": "pong"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"ping":"pong"}` {
		t.Errorf("body: got %s", got)
	}
}

func TestWriteJSONNilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusNoContent, nil)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body: got %q, want empty", rec.Body.String())
	}
}

func TestWriteValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteValidationError(rec, &ValidationError{Message: "validation failed", Fields: map[string]string{"id": "required"}})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want 422", rec.Code)
	}
	want := `{"error":"validation failed","fields":{"id":"required"}}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body: got %s, want %s", got, want)
	}
}
