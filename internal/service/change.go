package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docremedy/internal/docx"
	"docremedy/internal/model"
	"docremedy/internal/repository"
	"docremedy/internal/storage"
	"docremedy/internal/suggest"
)

var (
	ErrChangeNotFound     = errors.New("staged change not found")
	ErrChangeNotStaged    = errors.New("change is not in staged state")
	ErrNewContentRequired = errors.New("new content is required")
	ErrNoStagedChanges    = errors.New("no staged changes to apply")
)

// diffPreviewLimit caps the content shown in change diffs.
const diffPreviewLimit = 50

// StageRequest describes a change to stage against an issue. FixType and
// NewValue come from an accepted suggestion; manual edits leave them empty.
type StageRequest struct {
	NewContent string
	ChangeType string
	FixType    string
	NewValue   string
}

// ChangeDiff is a clipped before/after preview of a staged change.
type ChangeDiff struct {
	Type     string `json:"type"`
	Original string `json:"original"`
	Modified string `json:"modified"`
}

// ChangeWithDiff decorates a staged change with its preview diff.
type ChangeWithDiff struct {
	model.StagedChange
	Diff ChangeDiff `json:"diff"`
}

// ApplyResult reports the outcome of applying a document's staged changes.
type ApplyResult struct {
	Document       *model.Document `json:"document"`
	AppliedChanges []string        `json:"applied_changes"`
}

// ChangeService manages the stage/apply lifecycle of document edits.
type ChangeService interface {
	// Stage records a pending change for an issue and marks the issue fixed.
	Stage(ctx context.Context, issueID string, req StageRequest) (*ChangeWithDiff, error)

	// List returns every change for a document with preview diffs.
	List(ctx context.Context, documentID string) ([]ChangeWithDiff, error)

	// Apply writes all staged changes into a remediated copy of the document.
	// The source document is marked remediated; the copy references it.
	Apply(ctx context.Context, documentID string) (*ApplyResult, error)

	// Cancel removes a change that is still staged and un-fixes its issue.
	Cancel(ctx context.Context, changeID string) error

	// Clear removes a change regardless of its state.
	Clear(ctx context.Context, changeID string) error
}

type changeService struct {
	store   storage.Storage
	docs    repository.DocumentRepository
	issues  repository.IssueRepository
	changes repository.ChangeRepository
}

// NewChangeService constructs a ChangeService.
func NewChangeService(store storage.Storage, docs repository.DocumentRepository, issues repository.IssueRepository, changes repository.ChangeRepository) ChangeService {
	return &changeService{store: store, docs: docs, issues: issues, changes: changes}
}

func (s *changeService) Stage(ctx context.Context, issueID string, req StageRequest) (*ChangeWithDiff, error) {
	if issueID == "" {
		return nil, ErrIDRequired
	}
	if req.NewContent == "" {
		return nil, ErrNewContentRequired
	}
	issue, err := loadIssue(ctx, s.issues, issueID)
	if err != nil {
		return nil, err
	}

	changeType := req.ChangeType
	if changeType == "" {
		if req.FixType != "" {
			changeType = model.ChangeTypeSuggested
		} else {
			changeType = model.ChangeTypeManual
		}
	}

	ch := &model.StagedChange{
		ID:              uuid.New().String(),
		IssueID:         issue.ID,
		DocumentID:      issue.DocumentID,
		OriginalContent: issue.Details.String("original_content"),
		NewContent:      req.NewContent,
		ChangeType:      changeType,
		FixType:         req.FixType,
		NewValue:        req.NewValue,
		Status:          model.ChangeStatusStaged,
		CreatedAt:       time.Now().UTC(),
	}
	stored, err := s.changes.Create(ctx, ch)
	if err != nil {
		return nil, fmt.Errorf("create change: %w", err)
	}
	if err := s.issues.SetFixed(ctx, issue.ID, true); err != nil {
		if delErr := s.changes.Delete(ctx, stored.ID); delErr != nil {
			return nil, fmt.Errorf("mark issue fixed failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("mark issue fixed: %w", err)
	}
	return withDiff(stored), nil
}

func withDiff(ch *model.StagedChange) *ChangeWithDiff {
	return &ChangeWithDiff{
		StagedChange: *ch,
		Diff: ChangeDiff{
			Type:     "text_change",
			Original: clipPreview(ch.OriginalContent),
			Modified: clipPreview(ch.NewContent),
		},
	}
}

func (s *changeService) List(ctx context.Context, documentID string) ([]ChangeWithDiff, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.docs.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	list, err := s.changes.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	out := make([]ChangeWithDiff, 0, len(list))
	for i := range list {
		out = append(out, *withDiff(&list[i]))
	}
	return out, nil
}

func (s *changeService) Apply(ctx context.Context, documentID string) (*ApplyResult, error) {
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
	staged, err := s.changes.ListStagedByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if len(staged) == 0 {
		return nil, ErrNoStagedChanges
	}

	if err := s.docs.UpdateStatus(ctx, documentID, model.DocumentStatusRemediating); err != nil {
		return nil, fmt.Errorf("mark remediating: %w", err)
	}

	copyDoc, err := s.remediate(ctx, doc, staged)
	if err != nil {
		_ = s.docs.UpdateStatus(ctx, documentID, doc.Status)
		return nil, err
	}

	now := time.Now().UTC()
	ids := make([]string, len(staged))
	for i, ch := range staged {
		ids[i] = ch.ID
	}
	if err := s.changes.MarkApplied(ctx, ids, now); err != nil {
		return nil, fmt.Errorf("mark changes applied: %w", err)
	}
	if err := s.docs.MarkRemediated(ctx, documentID, now); err != nil {
		return nil, fmt.Errorf("mark remediated: %w", err)
	}

	return &ApplyResult{Document: copyDoc, AppliedChanges: ids}, nil
}

// remediate applies the staged edits to the document content and stores the
// result as a new document row referencing the source.
func (s *changeService) remediate(ctx context.Context, doc *model.Document, staged []model.StagedChange) (*model.Document, error) {
	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("get from storage: %w", err)
	}
	defer rc.Close()

	src, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	d, err := docx.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	for i := range staged {
		ch := &staged[i]
		issue, err := loadIssue(ctx, s.issues, ch.IssueID)
		if err != nil {
			return nil, fmt.Errorf("load issue for change %s: %w", ch.ID, err)
		}
		if err := applyFix(d, issue.ElementXPath, ch); err != nil {
			return nil, fmt.Errorf("apply change %s: %w", ch.ID, err)
		}
	}

	out, err := docx.Patch(src, d)
	if err != nil {
		return nil, fmt.Errorf("rebuild document: %w", err)
	}

	key := filepath.ToSlash(filepath.Join("documents", uuid.New().String()+".docx"))
	if _, err := s.store.Put(ctx, key, bytes.NewReader(out), storage.PutObjectOptions{
		Size:        int64(len(out)),
		ContentType: DocxContentType,
		Metadata: map[string]string{
			"source-document": doc.ID,
		},
	}); err != nil {
		return nil, fmt.Errorf("store remediated copy: %w", err)
	}

	copyDoc := &model.Document{
		ID:               uuid.New().String(),
		Filename:         remediatedFilename(doc.Filename),
		StoragePath:      key,
		Size:             int64(len(out)),
		ContentType:      DocxContentType,
		Status:           model.DocumentStatusReady,
		SourceDocumentID: &doc.ID,
		CreatedAt:        time.Now().UTC(),
	}
	stored, err := s.docs.Create(ctx, copyDoc)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("save remediated copy failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("save remediated copy: %w", err)
	}
	return stored, nil
}

func (s *changeService) Cancel(ctx context.Context, changeID string) error {
	if changeID == "" {
		return ErrIDRequired
	}
	ch, err := s.findChange(ctx, changeID)
	if err != nil {
		return err
	}
	if ch.Status != model.ChangeStatusStaged {
		return ErrChangeNotStaged
	}
	if err := s.changes.Delete(ctx, changeID); err != nil {
		return err
	}
	return s.issues.SetFixed(ctx, ch.IssueID, false)
}

func (s *changeService) Clear(ctx context.Context, changeID string) error {
	if changeID == "" {
		return ErrIDRequired
	}
	ch, err := s.findChange(ctx, changeID)
	if err != nil {
		return err
	}
	if err := s.changes.Delete(ctx, changeID); err != nil {
		return err
	}
	if ch.Status == model.ChangeStatusStaged {
		return s.issues.SetFixed(ctx, ch.IssueID, false)
	}
	return nil
}

func (s *changeService) findChange(ctx context.Context, id string) (*model.StagedChange, error) {
	ch, err := s.changes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChangeNotFound
		}
		return nil, err
	}
	return ch, nil
}

// applyFix mutates the parsed document according to the change's fix type.
// Changes without a fix type rewrite the element text.
func applyFix(d *docx.Document, xpath string, ch *model.StagedChange) error {
	loc, err := docx.ParseLocator(xpath)
	if err != nil {
		return err
	}

	switch ch.FixType {
	case suggest.FixColorChange:
		return d.SetRunColor(loc, ch.NewValue)

	case suggest.FixHeadingStructure, suggest.FixHeadingLevel:
		return d.SetParagraphStyle(loc, ch.NewValue)

	case suggest.FixAltText:
		err := d.SetAltText(loc, ch.NewValue)
		if errors.Is(err, docx.ErrNoDrawing) {
			// The paragraph only references an image elsewhere; annotate it
			// so the description still lands in the document.
			p, _, _, rerr := d.Resolve(loc)
			if rerr != nil || p == nil {
				return err
			}
			p.AddRun(" [Image: " + ch.NewValue + "]")
			return nil
		}
		return err

	case suggest.FixTableHeader:
		var labels []string
		if ch.NewValue != "" {
			labels = strings.Split(ch.NewValue, ", ")
		}
		return d.MarkTableHeader(loc, labels)

	case suggest.FixLinkText:
		return d.ReplaceText(loc, ch.NewValue)

	case suggest.FixFontSize:
		pt := 0
		if _, err := fmt.Sscanf(strings.TrimSpace(ch.NewValue), "%dpt", &pt); err != nil || pt <= 0 {
			return fmt.Errorf("invalid font size %q", ch.NewValue)
		}
		return d.SetRunSizePt(loc, pt)

	default:
		return d.ReplaceText(loc, ch.NewContent)
	}
}

// remediatedFilename derives the copy's filename, e.g. "report.docx"
// becomes "report-remediated.docx".
func remediatedFilename(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "-remediated" + ext
}

// clipPreview truncates diff content the way the change list presents it.
func clipPreview(s string) string {
	r := []rune(s)
	if len(r) <= diffPreviewLimit {
		return s
	}
	return string(r[:diffPreviewLimit]) + "..."
}
