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

type SignupService interface {
	CreateSignup(ctx context.Context, signup domain.Signup) (domain.Signup, error)
	GetSignup(ctx context.Context, id string) (domain.Signup, error)
	Checkout(ctx context.Context, signup domain.Signup, amount float64, currency string) (domain.Signup, error)
	TicketPDF(ctx context.Context, id string) ([]byte, error)
	GetCashStamp(ctx context.Context, signupID string) (domain.CashStamp, error)
}

type SignupHandler struct {
	svc SignupService
}

func NewSignupHandler(svc SignupService) *SignupHandler {
	return &SignupHandler{
		svc: svc,
	}
}

// HandleCreateSignup godoc
// @Summary      Sign up an attendee for an event
// @Description  Creates a pending signup. The signup must then be settled via a BCH payment or a door checkout.
// @Tags         signups
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                          true  "Event ID"
// @Param        request  body      request.CreateSignupRequest  true  "request body"
// @Success      201      {object}  domain.Signup
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/signups [post]
func (h *SignupHandler) HandleCreateSignup(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.CreateSignupRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	signup, err := h.svc.CreateSignup(ctx.Request.Context(), domain.Signup{
		EventID:       eventID,
		AttendeeName:  req.Name,
		AttendeeEmail: req.Email,
		AttendeePhone: req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrEventFull):
			response.RenderErr(ctx, &response.Err{
				StatusCode: http.StatusConflict,
				Msg:        service.ErrEventFull.Error(),
			})
		default:
			err = fmt.Errorf("v1.HandleCreateSignup -> h.svc.CreateSignup -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, signup)
}

// HandleGetSignup godoc
// @Summary      Get a signup by ID
// @Tags         signups
// @Produce      json
// @Param        signupID  path      string  true  "Signup ID"
// @Success      200       {object}  domain.Signup
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /signups/{signupID} [get]
func (h *SignupHandler) HandleGetSignup(ctx *gin.Context) {
	signupID := ctx.Param("signupID")

	signup, err := h.svc.GetSignup(ctx.Request.Context(), signupID)
	if err != nil {
		if errors.Is(err, service.ErrSignupNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("signup", "ID", signupID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSignup -> h.svc.GetSignup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, signup)
}

// HandleCheckout godoc
// @Summary      Sign up and pay at the door
// @Description  Creates a signup confirmed immediately with the door payment method. No on-chain settlement happens.
// @Tags         signups
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                      true  "Event ID"
// @Param        request  body      request.CheckoutRequest  true  "request body"
// @Success      201      {object}  domain.Signup
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/checkout [post]
func (h *SignupHandler) HandleCheckout(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.CheckoutRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	signup, err := h.svc.Checkout(ctx.Request.Context(), domain.Signup{
		EventID:       eventID,
		AttendeeName:  req.Name,
		AttendeeEmail: req.Email,
	}, req.Amount, req.Currency)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrEventFull):
			response.RenderErr(ctx, &response.Err{
				StatusCode: http.StatusConflict,
				Msg:        service.ErrEventFull.Error(),
			})
		default:
			err = fmt.Errorf("v1.HandleCheckout -> h.svc.Checkout -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, signup)
}

// HandleGetTicketPDF godoc
// @Summary      Download the printable ticket for a confirmed signup
// @Tags         signups
// @Produce      application/pdf
// @Param        signupID  path      string  true  "Signup ID"
// @Success      200       {file}    binary
// @Failure      404       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /signups/{signupID}/ticket.pdf [get]
func (h *SignupHandler) HandleGetTicketPDF(ctx *gin.Context) {
	signupID := ctx.Param("signupID")

	pdf, err := h.svc.TicketPDF(ctx.Request.Context(), signupID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSignupNotFound):
			response.RenderErr(ctx, response.ErrNotFound("signup", "ID", signupID))
		case errors.Is(err, service.ErrSignupNotSettled):
			response.RenderErr(ctx, &response.Err{
				StatusCode: http.StatusConflict,
				Msg:        service.ErrSignupNotSettled.Error(),
			})
		default:
			err = fmt.Errorf("v1.HandleGetTicketPDF -> h.svc.TicketPDF -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "ticket-"+signupID+".pdf"))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

// HandleGetCashStamp godoc
// @Summary      Get the cashback stamp minted for a settled signup
// @Tags         signups
// @Produce      json
// @Param        signupID  path      string  true  "Signup ID"
// @Success      200       {object}  domain.CashStamp
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /signups/{signupID}/cashstamp [get]
func (h *SignupHandler) HandleGetCashStamp(ctx *gin.Context) {
	signupID := ctx.Param("signupID")

	stamp, err := h.svc.GetCashStamp(ctx.Request.Context(), signupID)
	if err != nil {
		if errors.Is(err, service.ErrCashStampNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("cashstamp", "signupID", signupID))
			return
		}

		err = fmt.Errorf("v1.HandleGetCashStamp -> h.svc.GetCashStamp -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stamp)
}
