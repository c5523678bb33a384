package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/talentbridge/intake-backend/internal/apperr"
	"github.com/talentbridge/intake-backend/internal/config"
	"github.com/talentbridge/intake-backend/internal/dto"
	"github.com/talentbridge/intake-backend/internal/middleware"
	"github.com/talentbridge/intake-backend/internal/services"
	"github.com/talentbridge/intake-backend/internal/session"
)

type ApplicantHandler struct {
	applicants *services.ApplicantService
	uploads    *services.UploadService
	sessions   *session.Manager
	cfg        *config.Config
}

func NewApplicantHandler(applicants *services.ApplicantService, uploads *services.UploadService, sessions *session.Manager, cfg *config.Config) *ApplicantHandler {
	return &ApplicantHandler{applicants: applicants, uploads: uploads, sessions: sessions, cfg: cfg}
}

// Create registers an applicant and opens a cookie session, so the
// unauthenticated intake flow can continue without a bearer token.
func (h *ApplicantHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateApplicantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	applicant, err := h.applicants.Create(c.UserContext(), req.Email)
	if err != nil {
		return err
	}

	cookieValue, err := h.sessions.Open(c.UserContext(), applicant.ID)
	if err != nil {
		return apperr.Internal("failed to open session", err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    cookieValue,
		Path:     "/",
		Expires:  time.Now().Add(h.sessions.TTL()),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusCreated).JSON(dto.ApplicantResponse{
		ID:    applicant.ID,
		Email: applicant.Email,
	})
}

// AttachExternalID records the identity-provider subject for an
// applicant. Admin-gated.
func (h *ApplicantHandler) AttachExternalID(c *fiber.Ctx) error {
	applicantID, err := c.ParamsInt("id")
	if err != nil || applicantID <= 0 {
		return apperr.Validation("invalid applicant id")
	}

	var req dto.AttachExternalIDRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.applicants.AttachExternalID(c.UserContext(), uint(applicantID), req.ExternalID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "external id attached"})
}

// SetPaused flips the applicant's pause flag. Admin-gated.
func (h *ApplicantHandler) SetPaused(c *fiber.Ctx) error {
	applicantID, err := c.ParamsInt("id")
	if err != nil || applicantID <= 0 {
		return apperr.Validation("invalid applicant id")
	}

	var req dto.SetPausedRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.applicants.SetPaused(c.UserContext(), uint(applicantID), req.Paused); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "applicant updated"})
}

// DeleteAccount removes the caller's applicant record and all stored
// uploads. Runs under RequireJWTAllowUnregistered: a caller who never
// registered still gets a success, there is simply nothing to delete.
func (h *ApplicantHandler) DeleteAccount(c *fiber.Ctx) error {
	ident, ok := middleware.Identity(c)
	if !ok {
		return apperr.Unauthenticated()
	}

	if !ident.Registered {
		return c.JSON(fiber.Map{"message": "account deleted"})
	}

	if err := h.uploads.DeleteAllUploads(c.UserContext(), ident.ApplicantID); err != nil {
		return err
	}
	if err := h.applicants.Delete(c.UserContext(), ident.ApplicantID); err != nil {
		return err
	}

	slog.Info("account deleted", "applicant_id", ident.ApplicantID)
	return c.JSON(fiber.Map{"message": "account deleted"})
}
