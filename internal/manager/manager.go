// Package manager implements the write-side management layer for a single
// Elasticsearch index: bulk operation batching, mapping synchronization,
// index lifecycle control, and a read-only guard in front of every mutating
// operation. The remote cluster is reached through the narrow BackendClient
// interface so the core stays transport-free.
package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/PWalkow/ElasticsearchBundle/internal/logger"
)

// BackendClient is the capability the manager needs from the search backend.
// All calls are synchronous round trips; any failure is surfaced unchanged.
type BackendClient interface {
	CreateIndex(ctx context.Context, indexName string, body map[string]any) error
	DeleteIndex(ctx context.Context, indexName string) error
	IndexExists(ctx context.Context, indexName string) (bool, error)
	RefreshIndex(ctx context.Context, indexName string) error
	FlushIndex(ctx context.Context, indexName string) error
	ClearIndexCache(ctx context.Context, indexName string) error
	GetMapping(ctx context.Context, indexName string, types []string) (map[string]any, error)
	PutMapping(ctx context.Context, indexName string, mapping map[string]any) error
	Bulk(ctx context.Context, batch []map[string]any, params BulkParams) (map[string]any, error)
	ServerInfo(ctx context.Context) (ServerInfo, error)
}

// ServerInfo carries the engine identity returned by the backend root endpoint.
type ServerInfo struct {
	Name    string
	Version string
}

// Converter turns a typed document into the field map handed to bulk enqueue.
type Converter interface {
	ToWireFormat(document any) (map[string]any, error)
}

// CommitNotifier is invoked after a successful bulk execute, before the batch
// is cleared. Implementations must not retain the batch slice.
type CommitNotifier interface {
	Committed(indexName string, batch []map[string]any, params BulkParams)
}

// IndexSettings is the index definition owned by a Manager for its entire
// lifetime. Body holds the create-index payload; its "mappings" key maps type
// names to mapping fragments.
type IndexSettings struct {
	IndexName string
	Body      map[string]any
}

// Mappings returns the type-keyed mapping section of the settings body, or
// nil when no mappings are configured.
func (s *IndexSettings) Mappings() map[string]any {
	if s.Body == nil {
		return nil
	}
	mappings, ok := s.Body["mappings"].(map[string]any)
	if !ok {
		return nil
	}
	return mappings
}

// Manager owns one index identity and exposes bulk batching, mapping
// synchronization and index lifecycle control as one cohesive API surface.
// A Manager is safe for concurrent use; enqueue ordering is preserved.
type Manager struct {
	client    BackendClient
	settings  *IndexSettings
	converter Converter
	notifier  CommitNotifier
	logger    logger.Logger

	mu         sync.Mutex
	batch      []map[string]any
	bulkParams BulkParams
	readOnly   bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithConverter sets the document converter used by Persist.
func WithConverter(c Converter) Option {
	return func(m *Manager) { m.converter = c }
}

// WithCommitNotifier sets the hook fired after a successful commit.
func WithCommitNotifier(n CommitNotifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithReadOnly sets the initial read-only state.
func WithReadOnly(readOnly bool) Option {
	return func(m *Manager) { m.readOnly = readOnly }
}

// New creates a Manager for the given index settings. The settings object is
// owned by the manager from this point on.
func New(client BackendClient, settings *IndexSettings, log logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		client:    client,
		settings:  settings,
		converter: JSONConverter{},
		logger:    log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// checkReadOnly fails with a ForbiddenError naming the attempted operation if
// and only if the read-only flag is set. Every mutating entry point calls
// this before any other side effect.
func (m *Manager) checkReadOnly(operation string) error {
	m.mu.Lock()
	readOnly := m.readOnly
	m.mu.Unlock()

	if readOnly {
		return &ForbiddenError{Operation: operation}
	}
	return nil
}

// SetReadOnly toggles the read-only guard. Toggling is always permitted,
// even while read-only.
func (m *Manager) SetReadOnly(readOnly bool) {
	m.mu.Lock()
	m.readOnly = readOnly
	m.mu.Unlock()
}

// IsReadOnly reports the current state of the read-only guard.
func (m *Manager) IsReadOnly() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readOnly
}

// IndexName returns the configured index name.
func (m *Manager) IndexName() string {
	return m.settings.IndexName
}

// CreateIndex creates the managed index. When stripMappings is set the
// mappings section is removed from the owned settings body before the create
// call; the removal is observable to subsequent calls.
func (m *Manager) CreateIndex(ctx context.Context, stripMappings bool) error {
	if err := m.checkReadOnly("Create index"); err != nil {
		return err
	}

	if stripMappings {
		delete(m.settings.Body, "mappings")
	}

	if err := m.client.CreateIndex(ctx, m.settings.IndexName, m.settings.Body); err != nil {
		return fmt.Errorf("create index %s: %w", m.settings.IndexName, err)
	}

	m.logger.Info("Index created",
		logger.String("index_name", m.settings.IndexName),
		logger.Bool("mappings_stripped", stripMappings),
	)
	return nil
}

// DropIndex deletes the managed index.
func (m *Manager) DropIndex(ctx context.Context) error {
	if err := m.checkReadOnly("Drop index"); err != nil {
		return err
	}

	if err := m.client.DeleteIndex(ctx, m.settings.IndexName); err != nil {
		return fmt.Errorf("drop index %s: %w", m.settings.IndexName, err)
	}

	m.logger.Info("Index dropped", logger.String("index_name", m.settings.IndexName))
	return nil
}

// DropAndCreateIndex drops the managed index and recreates it. A drop
// failure caused by the index not existing is absorbed so the call behaves
// as idempotent "ensure fresh index"; every other drop failure propagates.
func (m *Manager) DropAndCreateIndex(ctx context.Context, stripMappings bool) error {
	if err := m.DropIndex(ctx); err != nil {
		if !errors.Is(err, ErrIndexNotFound) {
			return err
		}
		m.logger.Debug("Drop skipped, index absent",
			logger.String("index_name", m.settings.IndexName),
		)
	}
	return m.CreateIndex(ctx, stripMappings)
}

// IndexExists reports whether the managed index exists. Non-mutating, so it
// bypasses the read-only guard.
func (m *Manager) IndexExists(ctx context.Context) (bool, error) {
	return m.client.IndexExists(ctx, m.settings.IndexName)
}

// RefreshIndex makes recent writes visible to search.
func (m *Manager) RefreshIndex(ctx context.Context) error {
	return m.client.RefreshIndex(ctx, m.settings.IndexName)
}

// FlushIndex flushes the index transaction log to disk.
func (m *Manager) FlushIndex(ctx context.Context) error {
	return m.client.FlushIndex(ctx, m.settings.IndexName)
}

// ClearCache clears the index-level caches.
func (m *Manager) ClearCache(ctx context.Context) error {
	if err := m.checkReadOnly("Clear cache"); err != nil {
		return err
	}
	if err := m.client.ClearIndexCache(ctx, m.settings.IndexName); err != nil {
		return fmt.Errorf("clear cache for index %s: %w", m.settings.IndexName, err)
	}
	return nil
}

// ServerVersion returns the version number reported by the engine.
func (m *Manager) ServerVersion(ctx context.Context) (string, error) {
	info, err := m.client.ServerInfo(ctx)
	if err != nil {
		return "", fmt.Errorf("server info: %w", err)
	}
	return info.Version, nil
}

// Persist converts a typed document to its wire format and enqueues it as an
// index bulk operation. The document is not sent until Commit.
func (m *Manager) Persist(typeName string, document any) error {
	fields, err := m.converter.ToWireFormat(document)
	if err != nil {
		return fmt.Errorf("convert document for type %s: %w", typeName, err)
	}
	return m.Bulk(OpIndex, typeName, fields)
}
