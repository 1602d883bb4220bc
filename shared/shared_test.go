package shared_test

import (
	"reflect"
	"testing"

	"ecodash/shared"
	"ecodash/shared/dto"
)

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("7f1c", "id", "reservations")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    "7f1c",
				Operator: dto.FilterOperatorEq,
				Table:    "reservations",
			},
		},
	}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %+v, got %+v", expected, result)
	}

	where, args := result.GetWhereClause()
	if where != "(reservations.id = :id)" {
		t.Errorf("unexpected where clause %q", where)
	}

	if args["id"] != "7f1c" {
		t.Errorf("expected arg id to be 7f1c, got %v", args["id"])
	}
}

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		parts    []string
		expected string
	}{
		{name: "single part", parts: []string{"ratelimit"}, expected: "ratelimit"},
		{name: "multiple parts", parts: []string{"ratelimit", "10.0.0.1"}, expected: "ratelimit:10.0.0.1"},
		{name: "empty parts skipped", parts: []string{"ratelimit", "", "user-1"}, expected: "ratelimit:user-1"},
		{name: "no parts", parts: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.BuildCacheKey(tt.parts...); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
