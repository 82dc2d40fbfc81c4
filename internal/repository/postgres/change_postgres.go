package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"docremedy/internal/model"
	"docremedy/internal/repository"
)

const changeColumns = `id, issue_id, document_id, original_content, new_content, change_type, fix_type, new_value, status, created_at, applied_at`

// ChangePostgres is a PostgreSQL implementation of repository.ChangeRepository.
type ChangePostgres struct {
	db *sql.DB
}

// NewChangePostgres creates a new ChangePostgres repository.
func NewChangePostgres(db *sql.DB) *ChangePostgres {
	return &ChangePostgres{db: db}
}

var _ repository.ChangeRepository = (*ChangePostgres)(nil)

func scanChange(row interface{ Scan(...any) error }) (*model.StagedChange, error) {
	var ch model.StagedChange
	if err := row.Scan(
		&ch.ID,
		&ch.IssueID,
		&ch.DocumentID,
		&ch.OriginalContent,
		&ch.NewContent,
		&ch.ChangeType,
		&ch.FixType,
		&ch.NewValue,
		&ch.Status,
		&ch.CreatedAt,
		&ch.AppliedAt,
	); err != nil {
		return nil, err
	}
	return &ch, nil
}

// Create inserts a new staged change row and returns the stored record.
func (r *ChangePostgres) Create(ctx context.Context, ch *model.StagedChange) (*model.StagedChange, error) {
	const q = `
		INSERT INTO staged_changes (id, issue_id, document_id, original_content, new_content, change_type, fix_type, new_value, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + changeColumns
	row := r.db.QueryRowContext(ctx, q,
		ch.ID,
		ch.IssueID,
		ch.DocumentID,
		ch.OriginalContent,
		ch.NewContent,
		ch.ChangeType,
		ch.FixType,
		ch.NewValue,
		ch.Status,
		ch.CreatedAt,
	)
	return scanChange(row)
}

// FindByID fetches a single staged change by its ID.
func (r *ChangePostgres) FindByID(ctx context.Context, id string) (*model.StagedChange, error) {
	const q = `
		SELECT ` + changeColumns + `
		FROM staged_changes
		WHERE id = $1
	`
	return scanChange(r.db.QueryRowContext(ctx, q, id))
}

func (r *ChangePostgres) listByDocument(ctx context.Context, documentID, status string) ([]model.StagedChange, error) {
	q := `
		SELECT ` + changeColumns + `
		FROM staged_changes
		WHERE document_id = $1
	`
	args := []any{documentID}
	if status != "" {
		q += ` AND status = $2`
		args = append(args, status)
	}
	q += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.StagedChange, 0)
	for rows.Next() {
		ch, err := scanChange(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *ch)
	}
	return items, rows.Err()
}

// ListByDocument returns every change for a document in creation order.
func (r *ChangePostgres) ListByDocument(ctx context.Context, documentID string) ([]model.StagedChange, error) {
	return r.listByDocument(ctx, documentID, "")
}

// ListStagedByDocument returns the document's still-staged changes in creation order.
func (r *ChangePostgres) ListStagedByDocument(ctx context.Context, documentID string) ([]model.StagedChange, error) {
	return r.listByDocument(ctx, documentID, model.ChangeStatusStaged)
}

// MarkApplied transitions the given change IDs to applied.
func (r *ChangePostgres) MarkApplied(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, len(ids))
	args := []any{model.ChangeStatusApplied, at}
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+3)
		args = append(args, id)
	}
	q := `UPDATE staged_changes SET status = $1, applied_at = $2 WHERE id IN (` + strings.Join(placeholders, ", ") + `)`
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

// Delete removes a change by ID. It does not return an error if the row does not exist.
func (r *ChangePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM staged_changes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
