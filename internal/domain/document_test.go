package domain

import (
	"encoding/json"
	"testing"
)

func TestProductWireFormat(t *testing.T) {
	t.Run("id present when set", func(t *testing.T) {
		data, err := json.Marshal(Product{ID: "42", SKU: "LAMP-1", Title: "Lamp"})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		var fields map[string]any
		if err := json.Unmarshal(data, &fields); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if fields["_id"] != "42" {
			t.Errorf("_id = %v, want 42", fields["_id"])
		}
	})

	t.Run("id omitted when empty", func(t *testing.T) {
		data, err := json.Marshal(Product{SKU: "LAMP-1", Title: "Lamp"})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		var fields map[string]any
		if err := json.Unmarshal(data, &fields); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if _, ok := fields["_id"]; ok {
			t.Error("_id should be omitted for unidentified documents")
		}
	})
}

func TestCategoryWireFormat(t *testing.T) {
	data, err := json.Marshal(Category{Slug: "lighting", Name: "Lighting", Depth: 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if fields["slug"] != "lighting" {
		t.Errorf("slug = %v", fields["slug"])
	}
	// zero depth is meaningful for root categories, it must marshal
	data, _ = json.Marshal(Category{Slug: "root", Name: "Root"})
	var root map[string]any
	_ = json.Unmarshal(data, &root)
	if _, ok := root["depth"]; !ok {
		t.Error("depth should marshal even when zero")
	}
}
