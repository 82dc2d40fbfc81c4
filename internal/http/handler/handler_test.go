package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docremedy/internal/docx"
	"docremedy/internal/model"
	"docremedy/internal/service"
	serviceMocks "docremedy/internal/service/mocks"
	"docremedy/internal/suggest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var docxRenderResult = docx.RenderResult{HTML: "<p>Sample paragraph</p>"}

var suggestFixture = suggest.Suggestion{
	IssueID:       "i1",
	SuggestedText: "Change text color from #C8C8C8 to #333333 for better contrast",
	Confidence:    0.95,
	FixType:       suggest.FixColorChange,
	OldValue:      "#C8C8C8",
	NewValue:      "#333333",
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func multipartFile(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	part.Write([]byte(content))
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/documents/upload", UploadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		body, contentType := multipartFile(t, "report.docx", "content")

		expectedDoc := &model.Document{ID: uuid.New().String(), Filename: "report.docx"}
		mockSvc.On("Upload", mock.Anything, mock.Anything, "report.docx", mock.Anything).Return(expectedDoc, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents/upload", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expectedDoc.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/documents/upload", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("wrong file type", func(t *testing.T) {
		body, contentType := multipartFile(t, "report.pdf", "%PDF-1.4")

		mockSvc.On("Upload", mock.Anything, mock.Anything, "report.pdf", mock.Anything).
			Return(nil, service.ErrInvalidFileType).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents/upload", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_FILE_TYPE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		body, contentType := multipartFile(t, "report.docx", "content")

		mockSvc.On("Upload", mock.Anything, mock.Anything, "report.docx", mock.Anything).
			Return(nil, errors.New("upload failed")).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents/upload", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents", ListDocuments(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedRes := &service.DocumentListResult{
			Items: []model.Document{{ID: uuid.New().String(), Filename: "report.docx"}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, 10, 0).Return(expectedRes, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents?limit=10&offset=0", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.DocumentListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_LIMIT", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 10, 0).Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id", GetDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		expectedDoc := &model.Document{ID: id, Filename: "report.docx"}
		mockSvc.On("Get", mock.Anything, id).Return(expectedDoc, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents/invalid-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})
}

func TestDownloadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id/file", DownloadDocument(mockSvc, 0))

	t.Run("streams content", func(t *testing.T) {
		id := uuid.New().String()
		doc := &model.Document{ID: id, Filename: "report.docx", ContentType: "application/octet-stream", Size: 7}
		mockSvc.On("File", mock.Anything, id).
			Return(io.NopCloser(strings.NewReader("content")), doc, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/file", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "report.docx")

		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "content", string(b))
		mockSvc.AssertExpectations(t)
	})

	t.Run("presigned url", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("PresignFile", mock.Anything, id, mock.Anything).
			Return("https://minio/presigned", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/file?presign=true", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "https://minio/presigned", body["url"])
		assert.NotNil(t, body["expires_in"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("File", mock.Anything, id).Return(nil, nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/file", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRenderDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id/render", RenderDocument(mockSvc))

	id := uuid.New().String()
	mockSvc.On("Render", mock.Anything, id).
		Return(&docxRenderResult, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/render", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Contains(t, body["html_content"], "<p>")
	assert.Equal(t, id, body["document_id"])
	mockSvc.AssertExpectations(t)
}

func TestDeleteDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Delete("/documents/:id", DeleteDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestScanDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockScanService)
	app := fiber.New()
	app.Get("/documents/:id/scan", ScanDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Scan", mock.Anything, id).Return(&service.ScanResult{
			Document: &model.Document{ID: id, Status: model.DocumentStatusReady},
			Issues:   []model.AccessibilityIssue{{ID: "i1"}},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/scan", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			ScanResults []model.AccessibilityIssue `json:"scan_results"`
			DocumentID  string                     `json:"document_id"`
			TotalIssues int                        `json:"total_issues"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Len(t, body.ScanResults, 1)
		assert.Equal(t, id, body.DocumentID)
		assert.Equal(t, 1, body.TotalIssues)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Scan", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/scan", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListIssues(t *testing.T) {
	mockSvc := new(serviceMocks.MockScanService)
	app := fiber.New()
	app.Get("/issues/:documentId", ListIssues(mockSvc))

	id := uuid.New().String()
	mockSvc.On("Issues", mock.Anything, id).Return([]model.AccessibilityIssue{
		{ID: "i1", Clause: "WCAG 2.1 AA 1.4.3"},
		{ID: "i2", Clause: "WCAG 2.1 A 1.3.1"},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/issues/"+id, nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []model.AccessibilityIssue
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Len(t, body, 2)
	assert.Equal(t, "WCAG 2.1 AA 1.4.3", body[0].Clause)
	mockSvc.AssertExpectations(t)
}

func TestSuggestFix(t *testing.T) {
	mockSvc := new(serviceMocks.MockSuggestService)
	app := fiber.New()
	app.Post("/issues/:id/suggest-fix", SuggestFix(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("SuggestFix", mock.Anything, id).Return(&suggestFixture, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/issues/"+id+"/suggest-fix", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "color_change", body["fix_type"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("issue not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("SuggestFix", mock.Anything, id).Return(nil, service.ErrIssueNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/issues/"+id+"/suggest-fix", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestStageChange(t *testing.T) {
	mockSvc := new(serviceMocks.MockChangeService)
	app := fiber.New()
	app.Post("/issues/:id/stage-change", StageChange(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Stage", mock.Anything, id, service.StageRequest{
			NewContent: "Darker title",
			FixType:    "color_change",
			NewValue:   "#333333",
		}).Return(&service.ChangeWithDiff{
			StagedChange: model.StagedChange{ID: "ch-1", Status: model.ChangeStatusStaged},
			Diff:         service.ChangeDiff{Type: "text_change", Original: "Light title", Modified: "Darker title"},
		}, nil).Once()

		body, _ := json.Marshal(map[string]string{
			"new_content": "Darker title",
			"fix_type":    "color_change",
			"new_value":   "#333333",
		})
		req := httptest.NewRequest(http.MethodPost, "/issues/"+id+"/stage-change", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result struct {
			ChangeID string             `json:"change_id"`
			Diff     service.ChangeDiff `json:"diff"`
			Status   string             `json:"status"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "ch-1", result.ChangeID)
		assert.Equal(t, "staged", result.Status)
		assert.Equal(t, "text_change", result.Diff.Type)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing new content", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Stage", mock.Anything, id, mock.Anything).
			Return(nil, service.ErrNewContentRequired).Once()

		body, _ := json.Marshal(map[string]string{})
		req := httptest.NewRequest(http.MethodPost, "/issues/"+id+"/stage-change", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NEW_CONTENT_REQUIRED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestListChanges(t *testing.T) {
	mockSvc := new(serviceMocks.MockChangeService)
	app := fiber.New()
	app.Get("/changes/:documentId", ListChanges(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("List", mock.Anything, id).Return([]service.ChangeWithDiff{
			{
				StagedChange: model.StagedChange{ID: "ch-1"},
				Diff:         service.ChangeDiff{Type: "text_change", Original: "a", Modified: "b"},
			},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/changes/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body []service.ChangeWithDiff
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Len(t, body, 1)
		assert.Equal(t, "text_change", body[0].Diff.Type)
		mockSvc.AssertExpectations(t)
	})

	t.Run("document missing", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("List", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/changes/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestApplyChanges(t *testing.T) {
	mockSvc := new(serviceMocks.MockChangeService)
	app := fiber.New()
	app.Post("/documents/:id/apply-changes", ApplyChanges(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Apply", mock.Anything, id).Return(&service.ApplyResult{
			Document:       &model.Document{ID: "copy-id"},
			AppliedChanges: []string{"ch-1", "ch-2", "ch-3"},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents/"+id+"/apply-changes", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			UpdatedDocumentID string   `json:"updated_document_id"`
			AppliedChanges    []string `json:"applied_changes"`
			TotalChanges      int      `json:"total_changes"`
			Status            string   `json:"status"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "copy-id", result.UpdatedDocumentID)
		assert.Len(t, result.AppliedChanges, 3)
		assert.Equal(t, 3, result.TotalChanges)
		assert.Equal(t, "success", result.Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("nothing staged", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Apply", mock.Anything, id).Return(nil, service.ErrNoStagedChanges).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents/"+id+"/apply-changes", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NO_STAGED_CHANGES", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestCancelChange(t *testing.T) {
	mockSvc := new(serviceMocks.MockChangeService)
	app := fiber.New()
	app.Delete("/changes/:id", CancelChange(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Cancel", mock.Anything, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/changes/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "cancelled", body["status"])
		assert.Equal(t, id, body["change_id"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("already applied", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Cancel", mock.Anything, id).Return(service.ErrChangeNotStaged).Once()

		req := httptest.NewRequest(http.MethodDelete, "/changes/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "CHANGE_NOT_STAGED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestClearChange(t *testing.T) {
	mockSvc := new(serviceMocks.MockChangeService)
	app := fiber.New()
	app.Post("/changes/:id/clear", ClearChange(mockSvc))

	id := uuid.New().String()
	mockSvc.On("Clear", mock.Anything, id).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/changes/"+id+"/clear", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "cleared", body["status"])
	mockSvc.AssertExpectations(t)
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	RegisterRoutes(app, nil, Services{
		Documents: new(serviceMocks.MockDocumentService),
		Scans:     new(serviceMocks.MockScanService),
		Suggests:  new(serviceMocks.MockSuggestService),
		Changes:   new(serviceMocks.MockChangeService),
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}
