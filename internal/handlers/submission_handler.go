package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/talentbridge/intake-backend/internal/apperr"
	"github.com/talentbridge/intake-backend/internal/dto"
	"github.com/talentbridge/intake-backend/internal/middleware"
	"github.com/talentbridge/intake-backend/internal/services"
	"gorm.io/datatypes"
)

type SubmissionHandler struct {
	submissions *services.SubmissionService
}

func NewSubmissionHandler(submissions *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

// SaveDraft upserts the caller's draft. Last write wins.
func (h *SubmissionHandler) SaveDraft(c *fiber.Ctx) error {
	ident, ok := middleware.Identity(c)
	if !ok {
		return apperr.Unauthenticated()
	}

	var req dto.DraftSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	var resumeUploadID *uint
	if req.ResumeUpload != nil {
		resumeUploadID = &req.ResumeUpload.ID
	}

	draft, err := h.submissions.SaveDraft(c.UserContext(), ident.ApplicantID, datatypes.JSON(req.Profile), resumeUploadID)
	if err != nil {
		return err
	}

	return c.JSON(dto.CurrentSubmissionResponse{
		Submission: &dto.SubmissionView{
			Profile:      json.RawMessage(draft.Profile),
			ResumeUpload: req.ResumeUpload,
		},
		IsFinal: false,
	})
}

// CreateFinal records the caller's authoritative submission.
func (h *SubmissionHandler) CreateFinal(c *fiber.Ctx) error {
	ident, ok := middleware.Identity(c)
	if !ok {
		return apperr.Unauthenticated()
	}

	var req dto.FinalSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if req.ResumeUpload.ID == 0 {
		return apperr.Validation("resumeUpload.id is required")
	}

	sub, err := h.submissions.CreateFinal(c.UserContext(), ident.ApplicantID, datatypes.JSON(req.Profile), req.ResumeUpload.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CurrentSubmissionResponse{
		Submission: &dto.SubmissionView{
			Profile:      json.RawMessage(sub.Profile),
			ResumeUpload: &dto.UploadRef{ID: sub.ResumeUploadID},
		},
		IsFinal: true,
	})
}

// Current returns the caller's submission, final taking precedence
// over draft.
func (h *SubmissionHandler) Current(c *fiber.Ctx) error {
	ident, ok := middleware.Identity(c)
	if !ok {
		return apperr.Unauthenticated()
	}

	profile, resumeUploadID, isFinal, err := h.submissions.CurrentSubmission(c.UserContext(), ident.ApplicantID)
	if err != nil {
		return err
	}

	resp := dto.CurrentSubmissionResponse{IsFinal: isFinal}
	if profile != nil {
		view := &dto.SubmissionView{Profile: json.RawMessage(profile)}
		if resumeUploadID != nil {
			view.ResumeUpload = &dto.UploadRef{ID: *resumeUploadID}
		}
		resp.Submission = view
	}
	return c.JSON(resp)
}
