package models

import (
	"strings"
	"time"
)

// Applicant is the system of record for a person going through intake.
// Created on first profile submission; ExternalID stays nil until the
// applicant authenticates through the identity provider at least once.
type Applicant struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	ExternalID *string   `gorm:"size:255;index" json:"-"`
	Paused     bool      `gorm:"default:false" json:"paused"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CanonicalEmail lowercases and trims an email address. Every store
// read and write goes through this so uniqueness is case-insensitive.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
