package services

import (
	"context"

	"github.com/talentbridge/intake-backend/internal/apperr"
	"github.com/talentbridge/intake-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OpportunityService records postings submitted by partner organizations.
type OpportunityService struct {
	db *gorm.DB
}

func NewOpportunityService(db *gorm.DB) *OpportunityService {
	return &OpportunityService{db: db}
}

func (s *OpportunityService) Create(ctx context.Context, organization, title string, details datatypes.JSON, submittedBy string) (*models.Opportunity, error) {
	if organization == "" || title == "" {
		return nil, apperr.Validation("organization and title are required")
	}

	opp := models.Opportunity{
		Organization: organization,
		Title:        title,
		Details:      details,
		SubmittedBy:  submittedBy,
	}
	if err := s.db.WithContext(ctx).Create(&opp).Error; err != nil {
		return nil, apperr.Internal("failed to create opportunity", err)
	}
	return &opp, nil
}
