// Package mappings holds the canonical type mapping definitions for the
// indexes managed by the bundle.
package mappings

import "fmt"

// GetMappingForType returns the mapping fragment for a document type.
func GetMappingForType(typeName string) (map[string]any, error) {
	switch typeName {
	case "product":
		return GetProductMapping(), nil
	case "category":
		return GetCategoryMapping(), nil
	default:
		return nil, fmt.Errorf("unknown document type: %s", typeName)
	}
}

// BuildIndexBody assembles a create-index body: shard/replica settings, any
// extra index settings, and the mapping fragments for the given types keyed
// by type name.
func BuildIndexBody(types []string, shards, replicas int, extraSettings map[string]any) (map[string]any, error) {
	settings := map[string]any{
		"number_of_shards":   shards,
		"number_of_replicas": replicas,
	}
	for key, value := range extraSettings {
		settings[key] = value
	}

	body := map[string]any{
		"settings": settings,
	}

	if len(types) == 0 {
		return body, nil
	}

	typeMappings := make(map[string]any, len(types))
	for _, typeName := range types {
		fragment, err := GetMappingForType(typeName)
		if err != nil {
			return nil, err
		}
		typeMappings[typeName] = fragment
	}
	body["mappings"] = typeMappings

	return body, nil
}
