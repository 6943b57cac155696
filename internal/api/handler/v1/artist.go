package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dancecash/dancecash-api/internal/api/handler/v1/request"
	"github.com/dancecash/dancecash-api/internal/api/handler/v1/response"
	"github.com/dancecash/dancecash-api/internal/domain"
	"github.com/dancecash/dancecash-api/internal/service"
)

type ArtistHandler struct {
	svc EventService
}

func NewArtistHandler(svc EventService) *ArtistHandler {
	return &ArtistHandler{
		svc: svc,
	}
}

// HandleGetArtists godoc
// @Summary      List all artists
// @Tags         artists
// @Produce      json
// @Success      200  {array}   domain.Artist
// @Failure      500  {object}  response.Err
// @Router       /artists [get]
func (h *ArtistHandler) HandleGetArtists(ctx *gin.Context) {
	artists, err := h.svc.GetArtists(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetArtists -> h.svc.GetArtists -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, artists)
}

// HandleGetArtist godoc
// @Summary      Get an artist by ID
// @Tags         artists
// @Produce      json
// @Param        artistID  path      int  true  "Artist ID"
// @Success      200       {object}  domain.Artist
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /artists/{artistID} [get]
func (h *ArtistHandler) HandleGetArtist(ctx *gin.Context) {
	artistID, err := parseUintParam(ctx, "artistID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	artist, err := h.svc.GetArtist(ctx.Request.Context(), artistID)
	if err != nil {
		if errors.Is(err, service.ErrArtistNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("artist", "ID", artistID))
			return
		}

		err = fmt.Errorf("v1.HandleGetArtist -> h.svc.GetArtist -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, artist)
}

// HandleCreateArtist godoc
// @Summary      Create a new artist profile
// @Tags         artists
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateArtistRequest  true  "request body"
// @Success      201      {object}  domain.Artist
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /artists [post]
// @Security     BearerAuth
func (h *ArtistHandler) HandleCreateArtist(ctx *gin.Context) {
	studioID, respErr := getStudioIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateArtistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateArtist(ctx.Request.Context(), domain.Artist{
		StudioID:  studioID,
		Name:      req.Name,
		Bio:       req.Bio,
		Instagram: req.Instagram,
		Website:   req.Website,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateArtist -> h.svc.CreateArtist -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateArtist godoc
// @Summary      Update an artist profile
// @Tags         artists
// @Accept       json
// @Produce      json
// @Param        artistID  path      int                          true  "Artist ID"
// @Param        request   body      request.CreateArtistRequest  true  "request body"
// @Success      200       {object}  domain.Artist
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /artists/{artistID} [put]
// @Security     BearerAuth
func (h *ArtistHandler) HandleUpdateArtist(ctx *gin.Context) {
	studioID, respErr := getStudioIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	artistID, err := parseUintParam(ctx, "artistID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.CreateArtistRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateArtist(ctx.Request.Context(), domain.Artist{
		ID:        artistID,
		StudioID:  studioID,
		Name:      req.Name,
		Bio:       req.Bio,
		Instagram: req.Instagram,
		Website:   req.Website,
		ImageURL:  req.ImageURL,
	}, studioID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArtistNotFound):
			response.RenderErr(ctx, response.ErrNotFound("artist", "ID", artistID))
		case errors.Is(err, service.ErrNotArtistOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotArtistOwner))
		default:
			err = fmt.Errorf("v1.HandleUpdateArtist -> h.svc.UpdateArtist -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}
