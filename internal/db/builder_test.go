package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_Build(t *testing.T) {
	def, err := NewIndex("idx:test").
		Prefix("test:").
		Text("name").
		Tag("status").
		Numeric("rating").Sortable().
		Geo("location").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if def.Name != "idx:test" {
		t.Errorf("Name = %q", def.Name)
	}
	if len(def.Prefixes) != 1 || def.Prefixes[0] != "test:" {
		t.Errorf("Prefixes = %v", def.Prefixes)
	}
	if len(def.Fields) != 4 {
		t.Fatalf("Fields = %d, want 4", len(def.Fields))
	}
	if !def.Fields[2].Sortable {
		t.Error("rating should be SORTABLE")
	}
	if def.Fields[3].Sortable {
		t.Error("location should not be SORTABLE")
	}
}

func TestIndexBuilder_SortableGeoRejected(t *testing.T) {
	_, err := NewIndex("idx:test").
		Geo("location").Sortable().
		Build()
	if err == nil {
		t.Fatal("expected error for SORTABLE geo field")
	}
}

func TestIndexBuilder_DuplicateFieldRejected(t *testing.T) {
	_, err := NewIndex("idx:test").
		Tag("status").
		Numeric("status").
		Build()
	if err == nil {
		t.Fatal("expected error for duplicate field")
	}
}

func TestIndexBuilder_EmptySchemaRejected(t *testing.T) {
	_, err := NewIndex("idx:test").Build()
	if err == nil {
		t.Fatal("expected error for empty schema")
	}
}

func TestIndexDefinition_String(t *testing.T) {
	def := NewIndex("idx:test").
		Prefix("test:").
		Tag("status").
		Numeric("rating").Sortable().
		MustBuild()

	s := def.String()
	for _, want := range []string{"FT.CREATE idx:test", "PREFIX test:", "status TAG", "rating NUMERIC SORTABLE"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"idx:pandits", "pandit_1", "a-b"}
	for _, s := range valid {
		if !IsValidIdentifier(s) {
			t.Errorf("IsValidIdentifier(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "has space", "semi;colon"}
	for _, s := range invalid {
		if IsValidIdentifier(s) {
			t.Errorf("IsValidIdentifier(%q) = true, want false", s)
		}
	}
}
