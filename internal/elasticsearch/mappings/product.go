package mappings

// GetProductMapping returns the mapping fragment for the product type.
func GetProductMapping() map[string]any {
	return map[string]any{
		"properties": map[string]any{
			"sku": map[string]any{
				"type": "keyword",
			},
			"title": map[string]any{
				"type": "text",
				"fields": map[string]any{
					"keyword": map[string]any{
						"type":         "keyword",
						"ignore_above": 256,
					},
				},
			},
			"description": map[string]any{
				"type": "text",
			},
			"price": map[string]any{
				"type": "scaled_float",
				"scaling_factor": 100,
			},
			"currency": map[string]any{
				"type": "keyword",
			},
			"in_stock": map[string]any{
				"type": "boolean",
			},
			"quantity": map[string]any{
				"type": "integer",
			},
			"category_ids": map[string]any{
				"type": "keyword",
			},
			"tags": map[string]any{
				"type": "keyword",
			},
			"created_at": map[string]any{
				"type": "date",
			},
			"updated_at": map[string]any{
				"type": "date",
			},
		},
	}
}
