package contracts

// extractProperties pulls the properties map out of a type mapping fragment:
// { "properties": { ... } }
func extractProperties(fragment map[string]any) Mapping {
	props, ok := fragment["properties"].(map[string]any)
	if !ok {
		return Mapping{Properties: map[string]any{}}
	}

	return Mapping{Properties: props}
}
