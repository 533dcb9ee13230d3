package manager

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestBulkBatchShape(t *testing.T) {
	tests := []struct {
		name      string
		operation BulkOperation
		typeName  string
		query     map[string]any
		want      []map[string]any
	}{
		{
			name:      "index with plain fields",
			operation: OpIndex,
			typeName:  "product",
			query:     map[string]any{"title": "Lamp"},
			want: []map[string]any{
				{"index": map[string]any{"_index": "catalog", "_type": "product"}},
				{"title": "Lamp"},
			},
		},
		{
			name:      "update lifts id and wraps doc",
			operation: OpUpdate,
			typeName:  "product",
			query:     map[string]any{"_id": "42", "price": 10},
			want: []map[string]any{
				{"update": map[string]any{"_index": "catalog", "_type": "product", "_id": "42"}},
				{"doc": map[string]any{"price": 10}},
			},
		},
		{
			name:      "create with ttl and parent",
			operation: OpCreate,
			typeName:  "product",
			query:     map[string]any{"_id": "7", "_ttl": 3600, "_parent": "9", "title": "x"},
			want: []map[string]any{
				{"create": map[string]any{
					"_index": "catalog", "_type": "product",
					"_id": "7", "_ttl": 3600, "_parent": "9",
				}},
				{"title": "x"},
			},
		},
		{
			name:      "zero ttl still extracted",
			operation: OpIndex,
			typeName:  "product",
			query:     map[string]any{"_ttl": 0, "title": "x"},
			want: []map[string]any{
				{"index": map[string]any{"_index": "catalog", "_type": "product", "_ttl": 0}},
				{"title": "x"},
			},
		},
		{
			name:      "absent reserved fields stay absent",
			operation: OpIndex,
			typeName:  "product",
			query:     map[string]any{"title": "x"},
			want: []map[string]any{
				{"index": map[string]any{"_index": "catalog", "_type": "product"}},
				{"title": "x"},
			},
		},
		{
			name:      "delete is header only",
			operation: OpDelete,
			typeName:  "product",
			query:     map[string]any{"_id": "42"},
			want: []map[string]any{
				{"delete": map[string]any{"_index": "catalog", "_type": "product", "_id": "42"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &spyClient{}
			m := newTestManager(client)

			if err := m.Bulk(tt.operation, tt.typeName, tt.query); err != nil {
				t.Fatalf("Bulk() error = %v", err)
			}

			if !reflect.DeepEqual(m.batch, tt.want) {
				t.Errorf("batch = %v, want %v", m.batch, tt.want)
			}
		})
	}
}

func TestBulkInvalidOperation(t *testing.T) {
	client := &spyClient{}
	m := newTestManager(client)

	if err := m.Bulk(OpIndex, "product", map[string]any{"title": "x"}); err != nil {
		t.Fatalf("Bulk() error = %v", err)
	}
	before := m.PendingOperations()

	err := m.Bulk("upsert", "product", map[string]any{"title": "y"})

	var invalid *InvalidOperationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidOperationError, got %v", err)
	}
	if invalid.Operation != "upsert" {
		t.Errorf("Operation = %q, want %q", invalid.Operation, "upsert")
	}
	if m.PendingOperations() != before {
		t.Errorf("invalid operation must leave batch unchanged: %d -> %d", before, m.PendingOperations())
	}
}

func TestBulkPreservesSubmissionOrder(t *testing.T) {
	client := &spyClient{bulkResponse: map[string]any{"errors": false}}
	m := newTestManager(client)

	if err := m.Bulk(OpIndex, "product", map[string]any{"_id": "1", "title": "a"}); err != nil {
		t.Fatal(err)
	}
	if err := m.Bulk(OpDelete, "product", map[string]any{"_id": "2"}); err != nil {
		t.Fatal(err)
	}
	if err := m.Bulk(OpUpdate, "category", map[string]any{"_id": "3", "name": "b"}); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Commit(context.Background()); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	batch := client.bulkBatches[0]
	if len(batch) != 5 {
		t.Fatalf("batch length = %d, want 5", len(batch))
	}
	order := []string{"index", "delete", "update"}
	headers := []map[string]any{batch[0], batch[2], batch[3]}
	for i, op := range order {
		if _, ok := headers[i][op]; !ok {
			t.Errorf("header %d should carry operation %q, got %v", i, op, headers[i])
		}
	}
}

func TestCommitEmptyBatchSkipsBackend(t *testing.T) {
	client := &spyClient{}
	m := newTestManager(client)

	response, err := m.Commit(context.Background())
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if response != nil {
		t.Errorf("empty commit response = %v, want nil", response)
	}
	if len(client.calls) != 0 {
		t.Errorf("empty commit must not reach the backend, got %v", client.calls)
	}
}

func TestCommitClearsBatchOnFailure(t *testing.T) {
	client := &spyClient{bulkErr: errors.New("bulk rejected")}
	m := newTestManager(client)

	if err := m.Bulk(OpIndex, "product", map[string]any{"title": "x"}); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Commit(context.Background()); err == nil {
		t.Fatal("expected commit failure")
	}
	if m.PendingOperations() != 0 {
		t.Errorf("batch must be cleared after failed commit, got %d entries", m.PendingOperations())
	}

	// a new batch starts fresh
	if err := m.Bulk(OpIndex, "product", map[string]any{"title": "y"}); err != nil {
		t.Fatal(err)
	}
	if m.PendingOperations() != 2 {
		t.Errorf("PendingOperations() = %d, want 2", m.PendingOperations())
	}
}

func TestSetBulkParamsLatestWins(t *testing.T) {
	client := &spyClient{bulkResponse: map[string]any{"errors": false}}
	m := newTestManager(client)

	m.SetBulkParams(BulkParams{Consistency: "quorum"})
	m.SetBulkParams(BulkParams{Refresh: true})

	if got := m.BulkParams(); !reflect.DeepEqual(got, BulkParams{Refresh: true}) {
		t.Errorf("BulkParams() = %+v, want latest value", got)
	}

	if err := m.Bulk(OpIndex, "product", map[string]any{"title": "x"}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Commit(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := BulkParams{Refresh: true}
	if !reflect.DeepEqual(client.bulkParams[0], want) {
		t.Errorf("params = %+v, want %+v", client.bulkParams[0], want)
	}
}

type recordingNotifier struct {
	indexName string
	batch     []map[string]any
	calls     int
}

func (n *recordingNotifier) Committed(indexName string, batch []map[string]any, _ BulkParams) {
	n.indexName = indexName
	n.batch = batch
	n.calls++
}

func TestCommitNotifiesOnSuccessOnly(t *testing.T) {
	notifier := &recordingNotifier{}
	client := &spyClient{bulkResponse: map[string]any{"errors": false}}
	m := newTestManager(client, WithCommitNotifier(notifier))

	if err := m.Bulk(OpIndex, "product", map[string]any{"title": "x"}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Commit(context.Background()); err != nil {
		t.Fatal(err)
	}

	if notifier.calls != 1 {
		t.Fatalf("notifier calls = %d, want 1", notifier.calls)
	}
	if notifier.indexName != "catalog" || len(notifier.batch) != 2 {
		t.Errorf("notifier got index %q with %d entries", notifier.indexName, len(notifier.batch))
	}

	// failed commit must not notify
	client.bulkErr = errors.New("bulk rejected")
	if err := m.Bulk(OpIndex, "product", map[string]any{"title": "y"}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Commit(context.Background()); err == nil {
		t.Fatal("expected commit failure")
	}
	if notifier.calls != 1 {
		t.Errorf("notifier calls after failure = %d, want 1", notifier.calls)
	}
}

func TestCommitReturnsBackendResponse(t *testing.T) {
	client := &spyClient{bulkResponse: map[string]any{"took": float64(3), "errors": false}}
	m := newTestManager(client)

	if err := m.Bulk(OpIndex, "product", map[string]any{"title": "x"}); err != nil {
		t.Fatal(err)
	}

	response, err := m.Commit(context.Background())
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if !reflect.DeepEqual(response, client.bulkResponse) {
		t.Errorf("response = %v, want %v", response, client.bulkResponse)
	}
}
