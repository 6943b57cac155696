package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dancecash/dancecash-api/internal/api/handler/v1/response"
)

// ContextKeyStudioID is set by the JWT middleware on authenticated routes.
const ContextKeyStudioID = "studioID"

func getStudioIDFromContext(ctx *gin.Context) (uint, *response.Err) {
	value, exists := ctx.Get(ContextKeyStudioID)
	if !exists {
		return 0, response.ErrPermissionDenied(errors.New("studio ID not found in context"))
	}

	studioID, ok := value.(uint)
	if !ok || studioID == 0 {
		return 0, response.ErrPermissionDenied(errors.New("invalid studio ID in context"))
	}

	return studioID, nil
}
