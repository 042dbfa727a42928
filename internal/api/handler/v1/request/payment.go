package request

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errBlankTeamID = errors.New("team ids must not be blank")

type CreatePaymentRequest struct {
	TeamIDs []string `json:"teamIds"`
}

func (req *CreatePaymentRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.TeamIDs, validation.Required),
	)
	if err != nil {
		return err
	}

	for _, id := range req.TeamIDs {
		if strings.TrimSpace(id) == "" {
			return errBlankTeamID
		}
	}

	return nil
}
