package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docremedy/internal/service"
)

// stageChangeRequest is the JSON body for staging a change against an issue.
type stageChangeRequest struct {
	NewContent string `json:"new_content"`
	ChangeType string `json:"change_type"`
	FixType    string `json:"fix_type"`
	NewValue   string `json:"new_value"`
}

// StageChange records a pending change for an issue.
func StageChange(svc service.ChangeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var body stageChangeRequest
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		ch, err := svc.Stage(c.UserContext(), id, service.StageRequest{
			NewContent: body.NewContent,
			ChangeType: body.ChangeType,
			FixType:    body.FixType,
			NewValue:   body.NewValue,
		})
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"change_id": ch.ID,
			"diff":      ch.Diff,
			"status":    ch.Status,
		})
	}
}

// ListChanges returns a document's changes with preview diffs.
func ListChanges(svc service.ChangeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("documentId")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		list, err := svc.List(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(list)
	}
}

// ApplyChanges writes all staged changes into a remediated document copy.
func ApplyChanges(svc service.ChangeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.Apply(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"updated_document_id": res.Document.ID,
			"applied_changes":     res.AppliedChanges,
			"total_changes":       len(res.AppliedChanges),
			"status":              "success",
		})
	}
}

// CancelChange removes a change that is still staged.
func CancelChange(svc service.ChangeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Cancel(c.UserContext(), id); err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{"change_id": id, "status": "cancelled"})
	}
}

// ClearChange removes a change regardless of its state.
func ClearChange(svc service.ChangeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Clear(c.UserContext(), id); err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{"change_id": id, "status": "cleared"})
	}
}
