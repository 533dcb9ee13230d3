package contracts_test

import (
	"testing"

	"github.com/PWalkow/ElasticsearchBundle/pkg/contracts"
)

func TestProductMappingHasProperties(t *testing.T) {
	mapping := contracts.ProductMapping()
	if len(mapping.Properties) == 0 {
		t.Fatal("ProductMapping returned empty properties")
	}
}

func TestCategoryMappingHasProperties(t *testing.T) {
	mapping := contracts.CategoryMapping()
	if len(mapping.Properties) == 0 {
		t.Fatal("CategoryMapping returned empty properties")
	}
}

func TestProductMappingFields(t *testing.T) {
	mapping := contracts.ProductMapping()

	contracts.AssertFieldsExist(t, mapping, []string{
		"sku", "title", "description", "price", "currency",
		"in_stock", "quantity", "category_ids", "tags",
		"created_at", "updated_at",
	})
}

func TestCategoryMappingFields(t *testing.T) {
	mapping := contracts.CategoryMapping()

	contracts.AssertFieldsExist(t, mapping, []string{
		"slug", "name", "parent_slug", "depth", "created_at",
	})
}

func TestAssertFieldsExist_Passes(t *testing.T) {
	mapping := contracts.Mapping{
		Properties: map[string]any{
			"title": map[string]any{"type": "text"},
			"url":   map[string]any{"type": "keyword"},
		},
	}

	contracts.AssertFieldsExist(t, mapping, []string{"title", "url"})
}

func TestAssertNestedFieldsExist_Passes(t *testing.T) {
	mapping := contracts.Mapping{
		Properties: map[string]any{
			"dimensions": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"weight": map[string]any{"type": "float"},
				},
			},
		},
	}

	contracts.AssertNestedFieldsExist(t, mapping, "dimensions", []string{"weight"})
}
