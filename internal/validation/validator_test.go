// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

import (
	"strings"
	"testing"
)

type recommendQuery struct {
	Title    string   `query:"title" validate:"required,notblank,max=500"`
	Strategy string   `query:"strategy" validate:"omitempty,strategy"`
	K        int      `query:"k" validate:"min=0,max=50"`
	YearMin  *int     `query:"year_min" validate:"omitempty,gte=1800,lte=2200"`
	VoteMax  *float64 `query:"vote_max" validate:"omitempty,gte=0,lte=10"`
	Genres   []string `query:"genres" validate:"omitempty,max=30,dive,notblank"`
	Internal string   `query:"-" validate:"omitempty,max=1"`
}

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name string
		q    recommendQuery
	}{
		{"minimal", recommendQuery{Title: "Encanto"}},
		{"mixed case strategy", recommendQuery{Title: "Encanto", Strategy: "Overview", K: 50}},
		{"bounded filters", recommendQuery{Title: "Encanto", YearMin: intPtr(1999), VoteMax: floatPtr(10)}},
		{"genres", recommendQuery{Title: "Encanto", Genres: []string{"Action", "All"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.q); err != nil {
				t.Errorf("ValidateStruct() = %v, want nil", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		q         recommendQuery
		wantField string
		wantTag   string
	}{
		{"missing title", recommendQuery{}, "title", "required"},
		{"blank title", recommendQuery{Title: "   "}, "title", "notblank"},
		{"unknown strategy", recommendQuery{Title: "A", Strategy: "plot"}, "strategy", "strategy"},
		{"k too large", recommendQuery{Title: "A", K: 51}, "k", "max"},
		{"negative k", recommendQuery{Title: "A", K: -1}, "k", "min"},
		{"year too early", recommendQuery{Title: "A", YearMin: intPtr(1200)}, "year_min", "gte"},
		{"vote above scale", recommendQuery{Title: "A", VoteMax: floatPtr(11)}, "vote_max", "lte"},
		{"blank genre", recommendQuery{Title: "A", Genres: []string{"Action", " "}}, "genres[1]", "notblank"},
		{"untagged field uses Go name", recommendQuery{Title: "A", Internal: "xx"}, "Internal", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.q)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("error = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	verr := ValidateStruct(&recommendQuery{Title: "A", K: 99})
	if verr == nil {
		t.Fatal("expected validation error")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "k must be at most 50" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "k" || apiErr.Details["tag"] != "max" {
		t.Errorf("Details = %v", apiErr.Details)
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	verr := ValidateStruct(&recommendQuery{Strategy: "plot", K: -3})
	if verr == nil {
		t.Fatal("expected validation error")
	}

	apiErr := verr.ToAPIError()
	for _, want := range []string{"title: title is required", "strategy: strategy must be one of: genre, overview", "k: k must be at least 0"} {
		if !strings.Contains(apiErr.Message, want) {
			t.Errorf("Message %q missing %q", apiErr.Message, want)
		}
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 3 {
		t.Fatalf("Details[fields] = %#v", apiErr.Details["fields"])
	}
	if !strings.Contains(verr.Error(), "; ") {
		t.Errorf("Error() = %q, want joined messages", verr.Error())
	}
}

func TestToAPIError_Empty(t *testing.T) {
	verr := &RequestValidationError{}
	if verr.Error() != "validation failed" {
		t.Errorf("Error() = %q", verr.Error())
	}
	if got := verr.ToAPIError(); got.Code != "VALIDATION_ERROR" || got.Message != "Validation failed" {
		t.Errorf("ToAPIError() = %+v", got)
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	verr := ValidateStruct("not a struct")
	if verr == nil {
		t.Fatal("expected error for non-struct input")
	}
	if verr.Errors()[0].Field() != "unknown" {
		t.Errorf("Field() = %q, want unknown", verr.Errors()[0].Field())
	}
}

func TestErrorMessages(t *testing.T) {
	type lengths struct {
		Name  string `query:"name" validate:"min=3"`
		Label string `query:"label" validate:"max=2"`
	}

	verr := ValidateStruct(&lengths{Name: "ab", Label: "abc"})
	if verr == nil {
		t.Fatal("expected errors")
	}

	want := map[string]string{
		"name":  "name must be at least 3 characters",
		"label": "label must be at most 2 characters",
	}
	for _, e := range verr.Errors() {
		if want[e.Field()] != e.Error() {
			t.Errorf("%s: message %q, want %q", e.Field(), e.Error(), want[e.Field()])
		}
		if e.Param() == "" || e.Value() == nil {
			t.Errorf("%s: Param/Value not populated", e.Field())
		}
	}
}
