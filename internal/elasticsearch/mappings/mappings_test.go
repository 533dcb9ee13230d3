package mappings

import (
	"testing"
)

func TestGetMappingForType(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		wantErr  bool
	}{
		{"product", "product", false},
		{"category", "category", false},
		{"unknown type", "order", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragment, err := GetMappingForType(tt.typeName)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetMappingForType(%q) error = %v, wantErr %v", tt.typeName, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if _, ok := fragment["properties"]; !ok {
				t.Errorf("fragment for %q has no properties", tt.typeName)
			}
		})
	}
}

func TestBuildIndexBody(t *testing.T) {
	body, err := BuildIndexBody([]string{"product", "category"}, 3, 2, map[string]any{
		"refresh_interval": "30s",
	})
	if err != nil {
		t.Fatalf("BuildIndexBody() error = %v", err)
	}

	settings, ok := body["settings"].(map[string]any)
	if !ok {
		t.Fatal("body has no settings map")
	}
	if settings["number_of_shards"] != 3 {
		t.Errorf("number_of_shards = %v, want 3", settings["number_of_shards"])
	}
	if settings["number_of_replicas"] != 2 {
		t.Errorf("number_of_replicas = %v, want 2", settings["number_of_replicas"])
	}
	if settings["refresh_interval"] != "30s" {
		t.Errorf("refresh_interval = %v, want 30s", settings["refresh_interval"])
	}

	typeMappings, ok := body["mappings"].(map[string]any)
	if !ok {
		t.Fatal("body has no mappings map")
	}
	for _, typeName := range []string{"product", "category"} {
		if _, ok := typeMappings[typeName]; !ok {
			t.Errorf("mappings missing type %q", typeName)
		}
	}
}

func TestBuildIndexBodyNoTypes(t *testing.T) {
	body, err := BuildIndexBody(nil, 1, 0, nil)
	if err != nil {
		t.Fatalf("BuildIndexBody() error = %v", err)
	}
	if _, ok := body["mappings"]; ok {
		t.Error("body should have no mappings section without types")
	}
}

func TestBuildIndexBodyUnknownType(t *testing.T) {
	if _, err := BuildIndexBody([]string{"order"}, 1, 0, nil); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestGetMappingVersion(t *testing.T) {
	if v := GetMappingVersion("product"); v != ProductMappingVersion {
		t.Errorf("GetMappingVersion(product) = %q, want %q", v, ProductMappingVersion)
	}
	if v := GetMappingVersion("category"); v != CategoryMappingVersion {
		t.Errorf("GetMappingVersion(category) = %q, want %q", v, CategoryMappingVersion)
	}
	if v := GetMappingVersion("order"); v != "1.0.0" {
		t.Errorf("GetMappingVersion(order) = %q, want 1.0.0", v)
	}
}
