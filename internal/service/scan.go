package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"docremedy/internal/docx"
	"docremedy/internal/model"
	"docremedy/internal/otel"
	"docremedy/internal/repository"
	"docremedy/internal/scan"
	"docremedy/internal/storage"
)

// ScanResult pairs the rescanned document with its fresh issue set.
type ScanResult struct {
	Document *model.Document            `json:"document"`
	Issues   []model.AccessibilityIssue `json:"issues"`
}

// ScanService runs accessibility scans over stored documents.
type ScanService interface {
	// Scan parses the document, runs the rule set, and replaces the
	// document's recorded issues with the findings. The document moves
	// through scanning back to ready.
	Scan(ctx context.Context, documentID string) (*ScanResult, error)

	// Issues lists the issues recorded for a document, oldest first.
	Issues(ctx context.Context, documentID string) ([]model.AccessibilityIssue, error)
}

type scanService struct {
	store  storage.Storage
	docs   repository.DocumentRepository
	issues repository.IssueRepository
	cfg    *scan.Config
}

// NewScanService constructs a ScanService using the given rule configuration.
func NewScanService(store storage.Storage, docs repository.DocumentRepository, issues repository.IssueRepository, cfg *scan.Config) ScanService {
	return &scanService{store: store, docs: docs, issues: issues, cfg: cfg}
}

func (s *scanService) Scan(ctx context.Context, documentID string) (*ScanResult, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.docs.UpdateStatus(ctx, documentID, model.DocumentStatusScanning); err != nil {
		return nil, fmt.Errorf("mark scanning: %w", err)
	}

	issues, err := s.runScan(ctx, doc)
	if err != nil {
		// best effort revert so the document does not stay stuck in scanning
		_ = s.docs.UpdateStatus(ctx, documentID, doc.Status)
		return nil, err
	}

	if err := s.issues.ReplaceForDocument(ctx, documentID, issues); err != nil {
		_ = s.docs.UpdateStatus(ctx, documentID, doc.Status)
		return nil, fmt.Errorf("store issues: %w", err)
	}
	if err := s.docs.UpdateStatus(ctx, documentID, model.DocumentStatusReady); err != nil {
		return nil, fmt.Errorf("mark ready: %w", err)
	}
	doc.Status = model.DocumentStatusReady

	return &ScanResult{Document: doc, Issues: issues}, nil
}

func (s *scanService) runScan(ctx context.Context, doc *model.Document) ([]model.AccessibilityIssue, error) {
	ctx, span := otel.Tracer("docremedy/service").Start(ctx, "scan.document")
	span.SetAttributes(attribute.String("document.id", doc.ID))
	defer span.End()

	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("get from storage: %w", err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	d, err := docx.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	findings, err := scan.Scan(ctx, d, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	span.SetAttributes(attribute.Int("scan.findings", len(findings)))

	now := time.Now().UTC()
	issues := make([]model.AccessibilityIssue, 0, len(findings))
	for _, f := range findings {
		issues = append(issues, model.AccessibilityIssue{
			ID:           uuid.New().String(),
			DocumentID:   doc.ID,
			Clause:       f.Clause,
			Description:  f.Description,
			Status:       model.IssueStatusActive,
			WCAGLevel:    f.WCAGLevel,
			Details:      f.Details,
			ElementXPath: f.ElementXPath,
			CreatedAt:    now,
		})
	}
	return issues, nil
}

func (s *scanService) Issues(ctx context.Context, documentID string) ([]model.AccessibilityIssue, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.docs.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.issues.ListByDocument(ctx, documentID)
}
