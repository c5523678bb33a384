package dto

import "encoding/json"

type UploadRef struct {
	ID uint `json:"id"`
}

type DraftSubmissionRequest struct {
	Profile      json.RawMessage `json:"profile"`
	ResumeUpload *UploadRef      `json:"resumeUpload,omitempty"`
}

type FinalSubmissionRequest struct {
	Profile      json.RawMessage `json:"profile"`
	ResumeUpload UploadRef       `json:"resumeUpload"`
}

type SubmissionView struct {
	Profile      json.RawMessage `json:"profile"`
	ResumeUpload *UploadRef      `json:"resumeUpload,omitempty"`
}

// CurrentSubmissionResponse is the read shape: the final submission
// when one exists, else the draft, else a null submission.
type CurrentSubmissionResponse struct {
	Submission *SubmissionView `json:"submission"`
	IsFinal    bool            `json:"isFinal"`
}
