package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/talentbridge/intake-backend/internal/apperr"
	"github.com/talentbridge/intake-backend/internal/dto"
	"github.com/talentbridge/intake-backend/internal/middleware"
	"github.com/talentbridge/intake-backend/internal/models"
	"github.com/talentbridge/intake-backend/internal/services"
)

type UploadHandler struct {
	uploads *services.UploadService
}

func NewUploadHandler(uploads *services.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Request issues a signed upload credential for a new resume upload.
func (h *UploadHandler) Request(c *fiber.Ctx) error {
	ident, ok := middleware.Identity(c)
	if !ok {
		return apperr.Unauthenticated()
	}

	var req dto.UploadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	cred, err := h.uploads.RequestUploadURL(c.UserContext(), ident.ApplicantID, req.OriginalFilename, req.ContentType)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{
		ID:            cred.Upload.ID,
		SignedLink:    cred.SignedLink,
		PresignedPost: cred.PresignedPost,
	})
}

// Complete moves an upload to its terminal status.
func (h *UploadHandler) Complete(c *fiber.Ctx) error {
	ident, ok := middleware.Identity(c)
	if !ok {
		return apperr.Unauthenticated()
	}

	uploadID, err := c.ParamsInt("id")
	if err != nil || uploadID <= 0 {
		return apperr.Validation("invalid upload id")
	}

	var req dto.CompleteUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	upload, err := h.uploads.CompleteUpload(c.UserContext(), ident.ApplicantID, uint(uploadID), models.UploadStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(dto.CompleteUploadResponse{
		ID:               upload.ID,
		OriginalFilename: upload.OriginalFilename,
		Status:           string(upload.Status),
	})
}

// ResumeDownload signs a download URL for the applicant's current
// resume.
func (h *UploadHandler) ResumeDownload(c *fiber.Ctx) error {
	ident, ok := middleware.Identity(c)
	if !ok {
		return apperr.Unauthenticated()
	}

	url, err := h.uploads.CurrentResumeDownloadURL(c.UserContext(), ident.ApplicantID)
	if err != nil {
		return err
	}
	return c.JSON(dto.ResumeDownloadResponse{SignedLink: url})
}
