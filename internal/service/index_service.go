// Package service orchestrates the index managers: it routes API calls to
// the right manager, keeps the postgres audit trail of lifecycle operations,
// and exposes commit metrics.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/PWalkow/ElasticsearchBundle/internal/database"
	"github.com/PWalkow/ElasticsearchBundle/internal/domain"
	"github.com/PWalkow/ElasticsearchBundle/internal/logger"
	"github.com/PWalkow/ElasticsearchBundle/internal/manager"
)

// AuditStore records index lifecycle operations. *database.Connection
// implements it; tests substitute a fake.
type AuditStore interface {
	RecordOperation(ctx context.Context, rec *database.OperationRecord) error
	UpdateOperationStatus(ctx context.Context, id int, status, errorMsg string) error
	ListRecentOperations(ctx context.Context, limit int) ([]*database.OperationRecord, error)
}

// IndexService exposes every configured manager behind one API surface.
type IndexService struct {
	managers map[string]*manager.Manager
	audit    AuditStore
	logger   logger.Logger
}

// NewIndexService creates the service. audit may be nil, in which case no
// operation history is kept.
func NewIndexService(managers map[string]*manager.Manager, audit AuditStore, log logger.Logger) *IndexService {
	return &IndexService{
		managers: managers,
		audit:    audit,
		logger:   log,
	}
}

// Manager returns the named manager.
func (s *IndexService) Manager(name string) (*manager.Manager, error) {
	m, ok := s.managers[name]
	if !ok {
		return nil, fmt.Errorf("unknown manager: %s", name)
	}
	return m, nil
}

// ManagerNames returns the configured manager names, sorted.
func (s *IndexService) ManagerNames() []string {
	names := make([]string, 0, len(s.managers))
	for name := range s.managers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateIndex creates the managed index, recording the operation.
func (s *IndexService) CreateIndex(ctx context.Context, name string, stripMappings bool) error {
	m, err := s.Manager(name)
	if err != nil {
		return err
	}
	return s.audited(ctx, name, m.IndexName(), "create", func() error {
		return m.CreateIndex(ctx, stripMappings)
	})
}

// DropIndex drops the managed index, recording the operation.
func (s *IndexService) DropIndex(ctx context.Context, name string) error {
	m, err := s.Manager(name)
	if err != nil {
		return err
	}
	return s.audited(ctx, name, m.IndexName(), "drop", func() error {
		return m.DropIndex(ctx)
	})
}

// RecreateIndex drops and recreates the managed index, recording the
// operation. A missing index does not fail the drop half.
func (s *IndexService) RecreateIndex(ctx context.Context, name string, stripMappings bool) error {
	m, err := s.Manager(name)
	if err != nil {
		return err
	}
	return s.audited(ctx, name, m.IndexName(), "recreate", func() error {
		return m.DropAndCreateIndex(ctx, stripMappings)
	})
}

// SyncMappings synchronizes the requested types against the live index.
func (s *IndexService) SyncMappings(ctx context.Context, name string, types []string) (manager.MappingStatus, error) {
	m, err := s.Manager(name)
	if err != nil {
		return manager.MappingNoData, err
	}

	var status manager.MappingStatus
	auditErr := s.audited(ctx, name, m.IndexName(), "sync_mappings", func() error {
		var syncErr error
		status, syncErr = m.UpdateMapping(ctx, types)
		return syncErr
	})
	return status, auditErr
}

// EnqueueBulk appends the given operations to the manager's batch, in order.
// The first invalid operation aborts the call; operations enqueued before it
// stay in the batch.
func (s *IndexService) EnqueueBulk(ctx context.Context, name string, ops []domain.BulkOperationRequest) error {
	m, err := s.Manager(name)
	if err != nil {
		return err
	}

	for i, op := range ops {
		if err := m.Bulk(manager.BulkOperation(op.Operation), op.Type, op.Fields); err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
	}

	s.logger.Debug("Bulk operations enqueued",
		logger.String("manager", name),
		logger.Int("count", len(ops)),
	)
	return nil
}

// Commit flushes the manager's pending batch.
func (s *IndexService) Commit(ctx context.Context, name string) (map[string]any, error) {
	m, err := s.Manager(name)
	if err != nil {
		return nil, err
	}
	return m.Commit(ctx)
}

// Persist converts a document and enqueues it as an index operation.
func (s *IndexService) Persist(name, typeName string, document any) error {
	m, err := s.Manager(name)
	if err != nil {
		return err
	}
	return m.Persist(typeName, document)
}

// SetBulkParams replaces the manager's bulk execute settings.
func (s *IndexService) SetBulkParams(name string, params manager.BulkParams) error {
	m, err := s.Manager(name)
	if err != nil {
		return err
	}
	m.SetBulkParams(params)
	return nil
}

// SetReadOnly toggles the manager's read-only guard. Always permitted.
func (s *IndexService) SetReadOnly(name string, readOnly bool) error {
	m, err := s.Manager(name)
	if err != nil {
		return err
	}
	m.SetReadOnly(readOnly)

	s.logger.Info("Read-only state changed",
		logger.String("manager", name),
		logger.Bool("read_only", readOnly),
	)
	return nil
}

// ClearCache clears the managed index caches.
func (s *IndexService) ClearCache(ctx context.Context, name string) error {
	m, err := s.Manager(name)
	if err != nil {
		return err
	}
	return m.ClearCache(ctx)
}

// RefreshIndex refreshes the managed index.
func (s *IndexService) RefreshIndex(ctx context.Context, name string) error {
	m, err := s.Manager(name)
	if err != nil {
		return err
	}
	return m.RefreshIndex(ctx)
}

// FlushIndex flushes the managed index.
func (s *IndexService) FlushIndex(ctx context.Context, name string) error {
	m, err := s.Manager(name)
	if err != nil {
		return err
	}
	return m.FlushIndex(ctx)
}

// Status reports the state of one manager.
func (s *IndexService) Status(ctx context.Context, name string) (*domain.ManagerStatus, error) {
	m, err := s.Manager(name)
	if err != nil {
		return nil, err
	}

	exists, err := m.IndexExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check index existence: %w", err)
	}

	// engine version is informational; an unreachable root endpoint should
	// not fail the status report
	version, err := m.ServerVersion(ctx)
	if err != nil {
		s.logger.Warn("Failed to read engine version", logger.Error(err))
		version = ""
	}

	return &domain.ManagerStatus{
		Name:          name,
		IndexName:     m.IndexName(),
		IndexExists:   exists,
		ReadOnly:      m.IsReadOnly(),
		PendingOps:    m.PendingOperations(),
		EngineVersion: version,
	}, nil
}

// RecentOperations returns the latest audit records.
func (s *IndexService) RecentOperations(ctx context.Context, limit int) ([]*domain.OperationAudit, error) {
	if s.audit == nil {
		return []*domain.OperationAudit{}, nil
	}

	records, err := s.audit.ListRecentOperations(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}

	audits := make([]*domain.OperationAudit, 0, len(records))
	for _, rec := range records {
		audit := &domain.OperationAudit{
			ID:          rec.ID,
			ManagerName: rec.ManagerName,
			IndexName:   rec.IndexName,
			Operation:   rec.Operation,
			Status:      rec.Status,
			CreatedAt:   rec.CreatedAt,
		}
		if rec.ErrorMessage.Valid {
			audit.Error = rec.ErrorMessage.String
		}
		if rec.CompletedAt.Valid {
			completed := rec.CompletedAt.Time
			audit.CompletedAt = &completed
		}
		audits = append(audits, audit)
	}
	return audits, nil
}

// audited runs fn and records its outcome in the audit store. Audit failures
// are logged and never block the operation itself.
func (s *IndexService) audited(ctx context.Context, managerName, indexName, operation string, fn func() error) error {
	if s.audit == nil {
		return fn()
	}

	rec := &database.OperationRecord{
		ManagerName: managerName,
		IndexName:   indexName,
		Operation:   operation,
		Status:      "pending",
		CreatedAt:   time.Now(),
		CompletedAt: sql.NullTime{},
	}
	if recordErr := s.audit.RecordOperation(ctx, rec); recordErr != nil {
		s.logger.Warn("Failed to record operation", logger.Error(recordErr))
	}

	opErr := fn()

	status := "completed"
	errMsg := ""
	if opErr != nil {
		status = "failed"
		errMsg = opErr.Error()
	}
	if updateErr := s.audit.UpdateOperationStatus(ctx, rec.ID, status, errMsg); updateErr != nil {
		s.logger.Warn("Failed to update operation status", logger.Error(updateErr))
	}

	return opErr
}
