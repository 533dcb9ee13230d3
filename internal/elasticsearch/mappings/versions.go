package mappings

// Mapping version constants.
// Bump major for breaking changes (field type changes, removals).
// Bump minor for additions.
const (
	ProductMappingVersion  = "1.1.0"
	CategoryMappingVersion = "1.0.0"
)

// GetMappingVersion returns the current mapping version for a document type.
func GetMappingVersion(typeName string) string {
	switch typeName {
	case "product":
		return ProductMappingVersion
	case "category":
		return CategoryMappingVersion
	default:
		return "1.0.0"
	}
}
