package manager

import (
	"encoding/json"
	"fmt"
)

// JSONConverter converts documents to their wire format by a JSON marshal
// round trip, honoring the document's json struct tags. It is the default
// converter installed by New.
type JSONConverter struct{}

// ToWireFormat converts a document into a field map.
func (JSONConverter) ToWireFormat(document any) (map[string]any, error) {
	data, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("document is not an object: %w", err)
	}

	return fields, nil
}
