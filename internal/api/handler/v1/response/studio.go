package response

import "github.com/dancecash/dancecash-api/internal/domain"

type StudioProfileResponse struct {
	Studio domain.Studio  `json:"studio"`
	Events []domain.Event `json:"events"`
}
