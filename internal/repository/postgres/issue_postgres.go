package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"docremedy/internal/model"
	"docremedy/internal/repository"
)

const issueColumns = `id, document_id, clause, description, status, wcag_level, details, element_xpath, is_fixed, created_at`

// IssuePostgres is a PostgreSQL implementation of repository.IssueRepository.
// Issue details travel as JSONB.
type IssuePostgres struct {
	db *sql.DB
}

// NewIssuePostgres creates a new IssuePostgres repository.
func NewIssuePostgres(db *sql.DB) *IssuePostgres {
	return &IssuePostgres{db: db}
}

var _ repository.IssueRepository = (*IssuePostgres)(nil)

func scanIssue(row interface{ Scan(...any) error }) (*model.AccessibilityIssue, error) {
	var (
		is      model.AccessibilityIssue
		details []byte
	)
	if err := row.Scan(
		&is.ID,
		&is.DocumentID,
		&is.Clause,
		&is.Description,
		&is.Status,
		&is.WCAGLevel,
		&details,
		&is.ElementXPath,
		&is.IsFixed,
		&is.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &is.Details); err != nil {
			return nil, fmt.Errorf("decode issue details: %w", err)
		}
	}
	return &is, nil
}

// ReplaceForDocument deletes the document's issues and inserts the new set
// inside one transaction. Staged changes referencing the old issues go with
// them via ON DELETE CASCADE.
func (r *IssuePostgres) ReplaceForDocument(ctx context.Context, documentID string, issues []model.AccessibilityIssue) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM issues WHERE document_id = $1`, documentID); err != nil {
		return err
	}

	const q = `
		INSERT INTO issues (id, document_id, clause, description, status, wcag_level, details, element_xpath, is_fixed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, is := range issues {
		details, err := json.Marshal(is.Details)
		if err != nil {
			return fmt.Errorf("encode issue details: %w", err)
		}
		if _, err := tx.ExecContext(ctx, q,
			is.ID,
			is.DocumentID,
			is.Clause,
			is.Description,
			is.Status,
			is.WCAGLevel,
			details,
			is.ElementXPath,
			is.IsFixed,
			is.CreatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindByID fetches a single issue by its ID.
func (r *IssuePostgres) FindByID(ctx context.Context, id string) (*model.AccessibilityIssue, error) {
	const q = `
		SELECT ` + issueColumns + `
		FROM issues
		WHERE id = $1
	`
	return scanIssue(r.db.QueryRowContext(ctx, q, id))
}

// ListByDocument returns all issues for a document in insertion order.
func (r *IssuePostgres) ListByDocument(ctx context.Context, documentID string) ([]model.AccessibilityIssue, error) {
	const q = `
		SELECT ` + issueColumns + `
		FROM issues
		WHERE document_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.AccessibilityIssue, 0)
	for rows.Next() {
		is, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *is)
	}
	return items, rows.Err()
}

// SetFixed flips the is_fixed flag.
func (r *IssuePostgres) SetFixed(ctx context.Context, id string, fixed bool) error {
	const q = `UPDATE issues SET is_fixed = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, fixed)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
