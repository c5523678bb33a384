package dto

import "github.com/talentbridge/intake-backend/internal/storage"

type UploadRequest struct {
	OriginalFilename string `json:"originalFilename"`
	ContentType      string `json:"contentType"`
}

// UploadResponse carries exactly one of SignedLink / PresignedPost,
// depending on the configured signing strategy.
type UploadResponse struct {
	ID            uint                   `json:"id"`
	SignedLink    string                 `json:"signedLink,omitempty"`
	PresignedPost *storage.PresignedPost `json:"presignedPost,omitempty"`
}

type CompleteUploadRequest struct {
	Status string `json:"status"`
}

type CompleteUploadResponse struct {
	ID               uint   `json:"id"`
	OriginalFilename string `json:"originalFilename"`
	Status           string `json:"status"`
}

type ResumeDownloadResponse struct {
	SignedLink string `json:"signedLink"`
}
