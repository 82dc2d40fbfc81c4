package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docremedy/internal/service"
)

// ScanDocument runs an accessibility scan over the document and returns the
// fresh issue set.
func ScanDocument(svc service.ScanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.Scan(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"scan_results": res.Issues,
			"document_id":  res.Document.ID,
			"total_issues": len(res.Issues),
		})
	}
}

// ListIssues returns the issues recorded for a document.
func ListIssues(svc service.ScanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("documentId")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		issues, err := svc.Issues(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(issues)
	}
}

// SuggestFix returns a proposed fix for one issue, with preview snippets.
func SuggestFix(svc service.SuggestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		s, err := svc.SuggestFix(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(s)
	}
}
