package contracts

import (
	"github.com/PWalkow/ElasticsearchBundle/internal/elasticsearch/mappings"
)

// ProductMapping returns the canonical product type mapping as a contract
// Mapping. Services that index or search products should test against it.
func ProductMapping() Mapping {
	return extractProperties(mappings.GetProductMapping())
}
