package manager

import (
	"context"

	"github.com/PWalkow/ElasticsearchBundle/internal/logger"
)

// BulkOperation names a supported bulk write operation.
type BulkOperation string

// Supported bulk operations.
const (
	OpIndex  BulkOperation = "index"
	OpCreate BulkOperation = "create"
	OpUpdate BulkOperation = "update"
	OpDelete BulkOperation = "delete"
)

// BulkParams are cross-cutting settings applied to the whole batch at execute
// time, independent of individual operations.
type BulkParams struct {
	Consistency string `json:"consistency,omitempty" yaml:"consistency"`
	Refresh     bool   `json:"refresh,omitempty"     yaml:"refresh"`
	Replication string `json:"replication,omitempty" yaml:"replication"`
}

// Reserved query fields extracted into the operation metadata.
const (
	fieldID     = "_id"
	fieldTTL    = "_ttl"
	fieldParent = "_parent"
)

// Bulk appends one write operation to the pending batch. Reserved fields
// (_id, _ttl, _parent) are lifted out of query into the operation metadata;
// extraction is presence-based, so a legitimate zero ttl survives. The batch
// grows by a header entry plus, for index/create/update, a body entry.
// Entries keep caller submission order.
func (m *Manager) Bulk(operation BulkOperation, typeName string, query map[string]any) error {
	if err := m.checkReadOnly("Bulk"); err != nil {
		return err
	}

	switch operation {
	case OpIndex, OpCreate, OpUpdate, OpDelete:
	default:
		return &InvalidOperationError{Operation: string(operation)}
	}

	metadata := map[string]any{
		"_index": m.settings.IndexName,
		"_type":  typeName,
	}

	payload := make(map[string]any, len(query))
	for key, value := range query {
		switch key {
		case fieldID, fieldTTL, fieldParent:
			metadata[key] = value
		default:
			payload[key] = value
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.batch = append(m.batch, map[string]any{string(operation): metadata})

	switch operation {
	case OpIndex, OpCreate:
		m.batch = append(m.batch, payload)
	case OpUpdate:
		// partial update wire convention
		m.batch = append(m.batch, map[string]any{"doc": payload})
	case OpDelete:
		// header-only entry
	}

	return nil
}

// SetBulkParams replaces the cross-cutting parameter set used at execute
// time. The latest value at commit time wins.
func (m *Manager) SetBulkParams(params BulkParams) {
	m.mu.Lock()
	m.bulkParams = params
	m.mu.Unlock()
}

// BulkParams returns the parameter set that will apply to the next commit.
func (m *Manager) BulkParams() BulkParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bulkParams
}

// PendingOperations returns the number of entries currently accumulated in
// the batch, counting headers and bodies separately.
func (m *Manager) PendingOperations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.batch)
}

// Commit executes the accumulated batch against the backend as a single
// request and clears it. The batch is cleared whether the execute succeeds
// or fails; no retries happen here. An empty batch commits to nothing and
// performs no remote call.
func (m *Manager) Commit(ctx context.Context) (map[string]any, error) {
	m.mu.Lock()
	batch := m.batch
	params := m.bulkParams
	m.batch = nil
	m.mu.Unlock()

	if len(batch) == 0 {
		return nil, nil
	}

	response, err := m.client.Bulk(ctx, batch, params)
	if err != nil {
		return nil, err
	}

	if m.notifier != nil {
		m.notifier.Committed(m.settings.IndexName, batch, params)
	}

	m.logger.Debug("Bulk batch committed",
		logger.String("index_name", m.settings.IndexName),
		logger.Int("entries", len(batch)),
	)

	return response, nil
}
