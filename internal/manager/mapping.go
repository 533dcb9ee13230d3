package manager

import (
	"context"
	"fmt"
	"reflect"

	"github.com/PWalkow/ElasticsearchBundle/internal/logger"
)

// MappingStatus is the tri-state outcome of a mapping synchronization.
type MappingStatus int

const (
	// MappingUpToDate means every requested type already matches the live
	// index; nothing was pushed.
	MappingUpToDate MappingStatus = -1
	// MappingNoData means the desired mapping for the requested types is
	// empty; the engine was never contacted.
	MappingNoData MappingStatus = 0
	// MappingUpdated means at least one type differed and the diff was
	// pushed to the engine.
	MappingUpdated MappingStatus = 1
)

// UpdateMapping diffs the desired mapping for the requested types against the
// live index mapping and pushes only the differing types. With no types
// requested, every configured type is synchronized. The diff is a shallow
// key comparison: a single differing field anywhere inside a type fragment
// marks that whole type as differing.
func (m *Manager) UpdateMapping(ctx context.Context, types []string) (MappingStatus, error) {
	if err := m.checkReadOnly("Create types"); err != nil {
		return MappingNoData, err
	}

	desired := m.desiredMappings(types)
	if len(desired) == 0 {
		return MappingNoData, nil
	}

	live, err := m.client.GetMapping(ctx, m.settings.IndexName, types)
	if err != nil {
		return MappingNoData, fmt.Errorf("get mapping for index %s: %w", m.settings.IndexName, err)
	}

	diff := mappingDiff(desired, live)
	if len(diff) == 0 {
		return MappingUpToDate, nil
	}

	if err := m.client.PutMapping(ctx, m.settings.IndexName, diff); err != nil {
		return MappingNoData, fmt.Errorf("put mapping for index %s: %w", m.settings.IndexName, err)
	}

	m.logger.Info("Mapping updated",
		logger.String("index_name", m.settings.IndexName),
		logger.Int("types_pushed", len(diff)),
	)

	return MappingUpdated, nil
}

// desiredMappings resolves the owned mapping fragments scoped to the
// requested type names, or all configured types if none requested.
func (m *Manager) desiredMappings(types []string) map[string]any {
	configured := m.settings.Mappings()
	if len(configured) == 0 {
		return nil
	}

	if len(types) == 0 {
		return configured
	}

	scoped := make(map[string]any)
	for _, typeName := range types {
		if fragment, ok := configured[typeName]; ok {
			scoped[typeName] = fragment
		}
	}
	return scoped
}

// mappingDiff retains the desired type entries whose fragment differs from,
// or is entirely absent from, the live set. Computed fresh on every call.
func mappingDiff(desired, live map[string]any) map[string]any {
	diff := make(map[string]any)
	for typeName, fragment := range desired {
		liveFragment, exists := live[typeName]
		if !exists || !reflect.DeepEqual(fragment, liveFragment) {
			diff[typeName] = fragment
		}
	}
	return diff
}
