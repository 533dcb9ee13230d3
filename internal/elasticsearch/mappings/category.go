package mappings

// GetCategoryMapping returns the mapping fragment for the category type.
func GetCategoryMapping() map[string]any {
	return map[string]any{
		"properties": map[string]any{
			"slug": map[string]any{
				"type": "keyword",
			},
			"name": map[string]any{
				"type": "text",
				"fields": map[string]any{
					"keyword": map[string]any{
						"type":         "keyword",
						"ignore_above": 256,
					},
				},
			},
			"parent_slug": map[string]any{
				"type": "keyword",
			},
			"depth": map[string]any{
				"type": "integer",
			},
			"created_at": map[string]any{
				"type": "date",
			},
		},
	}
}
