// Package domain defines the API-facing types of the bundle.
package domain

import "time"

// ManagerStatus describes one managed index as reported by the API.
type ManagerStatus struct {
	Name          string `json:"name"`
	IndexName     string `json:"index_name"`
	IndexExists   bool   `json:"index_exists"`
	ReadOnly      bool   `json:"read_only"`
	PendingOps    int    `json:"pending_operations"`
	EngineVersion string `json:"engine_version,omitempty"`
}

// CreateIndexRequest is the body of a create or recreate index call.
type CreateIndexRequest struct {
	StripMappings bool `json:"strip_mappings"`
}

// SyncMappingsRequest selects the document types to synchronize. An empty
// list synchronizes every configured type.
type SyncMappingsRequest struct {
	Types []string `json:"types"`
}

// SyncMappingsResponse reports the outcome of a mapping synchronization.
type SyncMappingsResponse struct {
	Result  int    `json:"result"`
	Outcome string `json:"outcome"`
}

// BulkOperationRequest is one write operation to enqueue.
type BulkOperationRequest struct {
	Operation string         `binding:"required" json:"operation"`
	Type      string         `binding:"required" json:"type"`
	Fields    map[string]any `json:"fields"`
}

// BulkRequest is a sequence of operations to enqueue in order.
type BulkRequest struct {
	Operations []BulkOperationRequest `binding:"required" json:"operations"`
}

// BulkParamsRequest replaces the cross-cutting bulk execute settings.
type BulkParamsRequest struct {
	Consistency string `json:"consistency"`
	Refresh     bool   `json:"refresh"`
	Replication string `json:"replication"`
}

// ReadOnlyRequest toggles the read-only guard.
type ReadOnlyRequest struct {
	ReadOnly *bool `binding:"required" json:"read_only"`
}

// OperationAudit is one audited lifecycle operation.
type OperationAudit struct {
	ID          int        `json:"id"`
	ManagerName string     `json:"manager_name"`
	IndexName   string     `json:"index_name"`
	Operation   string     `json:"operation"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
