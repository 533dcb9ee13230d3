package contracts

import (
	"github.com/PWalkow/ElasticsearchBundle/internal/elasticsearch/mappings"
)

// CategoryMapping returns the canonical category type mapping as a contract
// Mapping.
func CategoryMapping() Mapping {
	return extractProperties(mappings.GetCategoryMapping())
}
