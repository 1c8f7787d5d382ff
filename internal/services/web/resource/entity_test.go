package resource

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNormalizeID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  ID
		ok    bool
	}{
		{name: "json number", value: json.Number("12"), want: "12", ok: true},
		{name: "string", value: " abc ", want: "abc", ok: true},
		{name: "float", value: float64(3), want: "3", ok: true},
		{name: "int", value: 9, want: "9", ok: true},
		{name: "nil", value: nil, ok: false},
		{name: "blank", value: "  ", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := NormalizeID(tc.value)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("NormalizeID(%v) = (%q, %t), want (%q, %t)", tc.value, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestFieldTextRendersNestedValuesAsJSON(t *testing.T) {
	t.Parallel()

	if got := FieldText(map[string]any{"id": json.Number("4")}); got != `{"id":4}` {
		t.Fatalf("FieldText(map) = %q", got)
	}
	if got := FieldText([]any{json.Number("1"), json.Number("2")}); got != `[1,2]` {
		t.Fatalf("FieldText(slice) = %q", got)
	}
	if got := FieldText(nil); got != "" {
		t.Fatalf("FieldText(nil) = %q", got)
	}
}

func TestNormalizeCollectionRejectsScalarItems(t *testing.T) {
	t.Parallel()

	if _, err := NormalizeCollection([]any{"x"}); !errors.Is(err, ErrUnexpectedPayload) {
		t.Fatalf("NormalizeCollection() error = %v, want ErrUnexpectedPayload", err)
	}
	if _, err := NormalizeCollection("nope"); !errors.Is(err, ErrUnexpectedPayload) {
		t.Fatalf("NormalizeCollection() error = %v, want ErrUnexpectedPayload", err)
	}
}

func TestSchemaEditability(t *testing.T) {
	t.Parallel()

	schema := TeamsSchema()
	if schema.IsEditable("id") || schema.IsEditable("join_code") || schema.IsEditable("members") {
		t.Fatal("server-owned team fields reported editable")
	}
	if !schema.IsEditable("name") {
		t.Fatal("team name not editable")
	}
	if got := schema.ItemPath("7"); got != "teams/7/" {
		t.Fatalf("ItemPath() = %q, want teams/7/", got)
	}
	if got := ItemPath("teams", "7"); got != "teams/7/" {
		t.Fatalf("ItemPath(no slash) = %q", got)
	}
}

func TestCatalogLookup(t *testing.T) {
	t.Parallel()

	for _, name := range []string{Activities, Teams, Users, Workouts} {
		schema, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) missing", name)
		}
		if schema.Endpoint != name+"/" {
			t.Fatalf("%s endpoint = %q", name, schema.Endpoint)
		}
	}
	if _, ok := Lookup("leaderboard"); ok {
		t.Fatal("Lookup(leaderboard) found unexpected schema")
	}
}
