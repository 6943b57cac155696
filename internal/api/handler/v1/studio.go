package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dancecash/dancecash-api/internal/api/handler/v1/request"
	"github.com/dancecash/dancecash-api/internal/api/handler/v1/response"
	"github.com/dancecash/dancecash-api/internal/domain"
	"github.com/dancecash/dancecash-api/internal/service"
)

type StudioService interface {
	GetStudio(ctx context.Context, id uint) (domain.Studio, error)
	UpdateSettings(ctx context.Context, studio domain.Studio) (domain.Studio, error)
}

type StudioEventsLister interface {
	GetStudioEvents(ctx context.Context, studioID uint) ([]domain.Event, error)
}

type StudioHandler struct {
	svc    StudioService
	events StudioEventsLister
}

func NewStudioHandler(svc StudioService, events StudioEventsLister) *StudioHandler {
	return &StudioHandler{
		svc:    svc,
		events: events,
	}
}

// HandleGetProfile godoc
// @Summary      Get the authenticated studio's profile
// @Tags         studio
// @Produce      json
// @Success      200  {object}  response.StudioProfileResponse
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /studio/profile [get]
// @Security     BearerAuth
func (h *StudioHandler) HandleGetProfile(ctx *gin.Context) {
	studioID, respErr := getStudioIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	studio, err := h.svc.GetStudio(ctx.Request.Context(), studioID)
	if err != nil {
		if errors.Is(err, service.ErrStudioNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("studio", "ID", studioID))
			return
		}

		err = fmt.Errorf("v1.HandleGetProfile -> h.svc.GetStudio -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	events, err := h.events.GetStudioEvents(ctx.Request.Context(), studioID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetProfile -> h.events.GetStudioEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.StudioProfileResponse{
		Studio: studio,
		Events: events,
	})
}

// HandleUpdateSettings godoc
// @Summary      Update studio settings
// @Description  Updates the studio profile, including the BCH payout address payments are swept to.
// @Tags         studio
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdateStudioRequest  true  "request body"
// @Success      200      {object}  domain.Studio
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /studio/settings [put]
// @Security     BearerAuth
func (h *StudioHandler) HandleUpdateSettings(ctx *gin.Context) {
	studioID, respErr := getStudioIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateStudioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	studio, err := h.svc.UpdateSettings(ctx.Request.Context(), domain.Studio{
		ID:          studioID,
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		BCHAddress:  req.BCHAddress,
	})
	if err != nil {
		if errors.Is(err, service.ErrStudioNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("studio", "ID", studioID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateSettings -> h.svc.UpdateSettings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, studio)
}
