package response

import "github.com/dancecash/dancecash-api/internal/domain"

type LoginResponse struct {
	Token  string        `json:"token"`
	Studio domain.Studio `json:"studio"`
}
