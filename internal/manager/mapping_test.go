package manager

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/PWalkow/ElasticsearchBundle/internal/logger"
)

func productFragment() map[string]any {
	return map[string]any{
		"properties": map[string]any{
			"title": map[string]any{"type": "text"},
		},
	}
}

func categoryFragment() map[string]any {
	return map[string]any{
		"properties": map[string]any{
			"name": map[string]any{"type": "text"},
		},
	}
}

func managerWithMappings(client *spyClient, mappings map[string]any) *Manager {
	body := map[string]any{}
	if mappings != nil {
		body["mappings"] = mappings
	}
	return New(client, &IndexSettings{IndexName: "catalog", Body: body}, logger.NewNop())
}

func TestUpdateMappingNoData(t *testing.T) {
	tests := []struct {
		name     string
		mappings map[string]any
		types    []string
	}{
		{"no configured mappings", nil, nil},
		{"empty configured mappings", map[string]any{}, nil},
		{"requested type not configured", map[string]any{"product": productFragment()}, []string{"order"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &spyClient{}
			m := managerWithMappings(client, tt.mappings)

			status, err := m.UpdateMapping(context.Background(), tt.types)
			if err != nil {
				t.Fatalf("UpdateMapping() error = %v", err)
			}
			if status != MappingNoData {
				t.Errorf("status = %d, want %d", status, MappingNoData)
			}
			if len(client.calls) != 0 {
				t.Errorf("empty desired mapping must not contact the backend, got %v", client.calls)
			}
		})
	}
}

func TestUpdateMappingUpToDate(t *testing.T) {
	client := &spyClient{liveMapping: map[string]any{
		"product":  productFragment(),
		"category": categoryFragment(),
	}}
	m := managerWithMappings(client, map[string]any{
		"product":  productFragment(),
		"category": categoryFragment(),
	})

	status, err := m.UpdateMapping(context.Background(), nil)
	if err != nil {
		t.Fatalf("UpdateMapping() error = %v", err)
	}
	if status != MappingUpToDate {
		t.Errorf("status = %d, want %d", status, MappingUpToDate)
	}

	// read happened, push did not
	if len(client.putMappings) != 0 {
		t.Errorf("up-to-date sync must not push, got %d pushes", len(client.putMappings))
	}
	want := []string{"GetMapping:catalog"}
	if !reflect.DeepEqual(client.calls, want) {
		t.Errorf("calls = %v, want %v", client.calls, want)
	}
}

func TestUpdateMappingPushesOnlyDiff(t *testing.T) {
	changed := map[string]any{
		"properties": map[string]any{
			"title": map[string]any{"type": "text"},
			"sku":   map[string]any{"type": "keyword"},
		},
	}
	client := &spyClient{liveMapping: map[string]any{
		"product":  productFragment(),
		"category": categoryFragment(),
	}}
	m := managerWithMappings(client, map[string]any{
		"product":  changed,
		"category": categoryFragment(),
	})

	status, err := m.UpdateMapping(context.Background(), nil)
	if err != nil {
		t.Fatalf("UpdateMapping() error = %v", err)
	}
	if status != MappingUpdated {
		t.Errorf("status = %d, want %d", status, MappingUpdated)
	}

	if len(client.putMappings) != 1 {
		t.Fatalf("expected 1 push, got %d", len(client.putMappings))
	}
	pushed := client.putMappings[0]
	if _, ok := pushed["category"]; ok {
		t.Error("unchanged type must not be pushed")
	}
	if !reflect.DeepEqual(pushed["product"], changed) {
		t.Errorf("pushed product = %v, want %v", pushed["product"], changed)
	}
}

func TestUpdateMappingPushesAbsentType(t *testing.T) {
	client := &spyClient{liveMapping: map[string]any{}}
	m := managerWithMappings(client, map[string]any{"product": productFragment()})

	status, err := m.UpdateMapping(context.Background(), nil)
	if err != nil {
		t.Fatalf("UpdateMapping() error = %v", err)
	}
	if status != MappingUpdated {
		t.Errorf("status = %d, want %d", status, MappingUpdated)
	}
	if len(client.putMappings) != 1 {
		t.Fatalf("expected 1 push, got %d", len(client.putMappings))
	}
}

func TestUpdateMappingScopedToRequestedTypes(t *testing.T) {
	changedCategory := map[string]any{
		"properties": map[string]any{
			"name": map[string]any{"type": "keyword"},
		},
	}
	client := &spyClient{liveMapping: map[string]any{
		"product":  map[string]any{"properties": map[string]any{}},
		"category": categoryFragment(),
	}}
	m := managerWithMappings(client, map[string]any{
		"product":  productFragment(),
		"category": changedCategory,
	})

	// only category requested, the stale product mapping must be ignored
	status, err := m.UpdateMapping(context.Background(), []string{"category"})
	if err != nil {
		t.Fatalf("UpdateMapping() error = %v", err)
	}
	if status != MappingUpdated {
		t.Errorf("status = %d, want %d", status, MappingUpdated)
	}

	pushed := client.putMappings[0]
	if _, ok := pushed["product"]; ok {
		t.Error("unrequested type must not be pushed")
	}
	if !reflect.DeepEqual(pushed["category"], changedCategory) {
		t.Errorf("pushed category = %v, want %v", pushed["category"], changedCategory)
	}
}

func TestUpdateMappingReadFailure(t *testing.T) {
	client := &spyClient{getMappingErr: errors.New("index missing")}
	m := managerWithMappings(client, map[string]any{"product": productFragment()})

	if _, err := m.UpdateMapping(context.Background(), nil); err == nil {
		t.Fatal("expected error from failed mapping read")
	}
	if len(client.putMappings) != 0 {
		t.Error("failed read must not be followed by a push")
	}
}

func TestMappingDiffShallowPerType(t *testing.T) {
	desired := map[string]any{
		"product":  productFragment(),
		"category": categoryFragment(),
	}
	live := map[string]any{
		"product": map[string]any{
			"properties": map[string]any{
				"title": map[string]any{"type": "keyword"},
			},
		},
		"category": categoryFragment(),
	}

	diff := mappingDiff(desired, live)

	if len(diff) != 1 {
		t.Fatalf("diff size = %d, want 1", len(diff))
	}
	// a single nested difference marks the whole type
	if !reflect.DeepEqual(diff["product"], productFragment()) {
		t.Errorf("diff should carry the full desired fragment, got %v", diff["product"])
	}
}
