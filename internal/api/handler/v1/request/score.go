package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateScoreRequest struct {
	TeamID string             `json:"teamId"`
	Scores map[string]float64 `json:"scores"`
	Notes  string             `json:"notes"`
}

func (req *CreateScoreRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TeamID, validation.Required),
		validation.Field(&req.Scores, validation.Required),
		validation.Field(&req.Notes, validation.Length(0, 500)),
	)
}

// IngestScoreRequest is the payload pushed by an external score source.
type IngestScoreRequest struct {
	TeamID        string             `json:"teamId"`
	Scores        map[string]float64 `json:"scores"`
	ScoredBy      string             `json:"scoredBy"`
	ScoredByName  string             `json:"scoredByName"`
	AttachmentURL string             `json:"attachmentUrl"`
	Notes         string             `json:"notes"`
}

func (req *IngestScoreRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TeamID, validation.Required),
		validation.Field(&req.Scores, validation.Required),
		validation.Field(&req.AttachmentURL, is.URL),
	)
}
