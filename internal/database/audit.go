package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// OperationRecord is one audited index lifecycle operation.
type OperationRecord struct {
	ID           int
	ManagerName  string
	IndexName    string
	Operation    string
	Status       string
	ErrorMessage sql.NullString
	CreatedAt    time.Time
	CompletedAt  sql.NullTime
}

// EnsureSchema creates the audit table if it does not exist.
func (c *Connection) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS operation_history (
			id SERIAL PRIMARY KEY,
			manager_name VARCHAR(255) NOT NULL,
			index_name VARCHAR(255) NOT NULL,
			operation VARCHAR(64) NOT NULL,
			status VARCHAR(32) NOT NULL,
			error_message TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMP
		)
	`

	if _, err := c.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure audit schema: %w", err)
	}

	return nil
}

// RecordOperation inserts an audit record and fills in its ID.
func (c *Connection) RecordOperation(ctx context.Context, rec *OperationRecord) error {
	query := `
		INSERT INTO operation_history
		(manager_name, index_name, operation, status, error_message, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := c.DB.QueryRowContext(ctx, query,
		rec.ManagerName,
		rec.IndexName,
		rec.Operation,
		rec.Status,
		rec.ErrorMessage,
		rec.CreatedAt,
		rec.CompletedAt,
	).Scan(&rec.ID)

	if err != nil {
		return fmt.Errorf("failed to record operation: %w", err)
	}

	return nil
}

// UpdateOperationStatus updates the status of an audit record.
func (c *Connection) UpdateOperationStatus(ctx context.Context, id int, status, errorMsg string) error {
	query := `
		UPDATE operation_history
		SET status = $1, error_message = $2, completed_at = $3
		WHERE id = $4
	`

	var errMsg sql.NullString
	if errorMsg != "" {
		errMsg = sql.NullString{String: errorMsg, Valid: true}
	}

	_, err := c.DB.ExecContext(ctx, query, status, errMsg, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update operation status: %w", err)
	}

	return nil
}

// ListRecentOperations returns the most recent audit records, newest first.
func (c *Connection) ListRecentOperations(ctx context.Context, limit int) ([]*OperationRecord, error) {
	query := `
		SELECT id, manager_name, index_name, operation, status, error_message, created_at, completed_at
		FROM operation_history
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := c.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []*OperationRecord
	for rows.Next() {
		rec := &OperationRecord{}
		if scanErr := rows.Scan(
			&rec.ID,
			&rec.ManagerName,
			&rec.IndexName,
			&rec.Operation,
			&rec.Status,
			&rec.ErrorMessage,
			&rec.CreatedAt,
			&rec.CompletedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan operation record: %w", scanErr)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return records, nil
}
