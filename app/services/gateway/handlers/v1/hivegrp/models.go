package hivegrp

import (
	"github.com/codehive-india/showcase/foundation/hive"
	"github.com/codehive-india/showcase/foundation/validate"
)

// newPost is the payload accepted by the simulated publish endpoint. The
// beneficiary weights are already basis points, matching what the front-end
// sends after parsing percentages. Tags are checked for presence only; an
// empty list is accepted the same way a missing filter would be.
type newPost struct {
	Author        string             `json:"author" validate:"required"`
	Title         string             `json:"title" validate:"required"`
	Body          string             `json:"body" validate:"required"`
	Tags          []string           `json:"tags" validate:"required"`
	Beneficiaries []hive.Beneficiary `json:"beneficiaries" validate:"omitempty,dive"`
}

// Validate checks the payload against its declared tags.
func (np newPost) Validate() error {
	return validate.Check(np)
}
