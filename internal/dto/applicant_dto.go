package dto

type CreateApplicantRequest struct {
	Email string `json:"email"`
}

type ApplicantResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type AttachExternalIDRequest struct {
	ExternalID string `json:"externalId"`
}

type SetPausedRequest struct {
	Paused bool `json:"paused"`
}
