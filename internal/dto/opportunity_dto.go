package dto

import "encoding/json"

type CreateOpportunityRequest struct {
	Organization string          `json:"organization"`
	Title        string          `json:"title"`
	Details      json.RawMessage `json:"details"`
}

type OpportunityResponse struct {
	ID           uint   `json:"id"`
	Organization string `json:"organization"`
	Title        string `json:"title"`
}
