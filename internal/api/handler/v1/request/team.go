package request

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
)

type MemberRequest struct {
	Name  string `json:"name"`
	Class string `json:"class"`
	NISN  string `json:"nisn"`
}

func (m MemberRequest) Validate() error {
	return validation.ValidateStruct(
		&m,
		validation.Field(&m.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&m.Class, validation.Length(0, 20)),
		validation.Field(&m.NISN, validation.Length(0, 20)),
	)
}

type RegisterTeamRequest struct {
	CompetitionID string          `json:"competitionId"`
	TeamName      string          `json:"teamName"`
	Members       []MemberRequest `json:"members"`
}

func (req *RegisterTeamRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.CompetitionID, validation.Required),
		validation.Field(&req.TeamName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Members, validation.Required),
	)
	if err != nil {
		return err
	}

	for i, m := range req.Members {
		if err = m.Validate(); err != nil {
			return fmt.Errorf("members[%d]: %w", i, err)
		}
	}

	return nil
}
