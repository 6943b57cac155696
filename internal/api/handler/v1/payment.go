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

type PaymentService interface {
	IssueAddress(ctx context.Context, signupID string, amountBCH float64) (domain.PaymentAddress, error)
	VerifyPayment(ctx context.Context, address, signupID string) (service.VerifyResult, error)
}

type RateService interface {
	CurrentRate(ctx context.Context) service.Rate
}

type PaymentHandler struct {
	svc   PaymentService
	rates RateService
}

func NewPaymentHandler(svc PaymentService, rates RateService) *PaymentHandler {
	return &PaymentHandler{
		svc:   svc,
		rates: rates,
	}
}

// HandleGetRate godoc
// @Summary      Get the current BCH/USD rate
// @Description  Always responds 200. When the upstream rate source is down the configured fallback rate is returned and the error field is set.
// @Tags         payments
// @Produce      json
// @Success      200  {object}  response.RateResponse
// @Router       /payments/rate [get]
func (h *PaymentHandler) HandleGetRate(ctx *gin.Context) {
	rate := h.rates.CurrentRate(ctx.Request.Context())

	resp := response.RateResponse{
		BCHToUSD:  rate.BCHToUSD,
		Timestamp: rate.Timestamp,
	}
	if rate.Fallback {
		resp.Error = "rate source unavailable, using fallback rate"
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleGenerateAddress godoc
// @Summary      Issue a deposit address for a signup
// @Description  Returns the single-use BCH address to pay for a pending signup. Repeated calls return the same address until it expires.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      request.GenerateAddressRequest  true  "request body"
// @Success      200      {object}  response.AddressResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /payments/address [post]
func (h *PaymentHandler) HandleGenerateAddress(ctx *gin.Context) {
	var req request.GenerateAddressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	addr, err := h.svc.IssueAddress(ctx.Request.Context(), req.SignupID, req.AmountBCH)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSignupNotFound):
			response.RenderErr(ctx, response.ErrNotFound("signup", "ID", req.SignupID))
		case errors.Is(err, service.ErrSignupNotPayable), errors.Is(err, service.ErrPaymentAddressExpired):
			response.RenderErr(ctx, &response.Err{
				StatusCode: http.StatusConflict,
				Msg:        err.Error(),
			})
		case errors.Is(err, service.ErrInvalidAmount):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidAmount))
		default:
			err = fmt.Errorf("v1.HandleGenerateAddress -> h.svc.IssueAddress -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.AddressResponse{
		Address:   addr.Address,
		AmountBCH: addr.AmountBCH,
		ExpiresAt: addr.ExpiresAt,
	})
}

// HandleVerifyPayment godoc
// @Summary      Verify a payment and settle the signup
// @Description  Checks the deposit address balance. Once the expected amount has arrived, the signup is confirmed and settlement (NFT ticket mint, sweep, cashback stamp, email) runs exactly once; later calls report confirmed without repeating side effects.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      request.VerifyPaymentRequest  true  "request body"
// @Success      200      {object}  response.VerifyResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /payments/verify [post]
func (h *PaymentHandler) HandleVerifyPayment(ctx *gin.Context) {
	var req request.VerifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.VerifyPayment(ctx.Request.Context(), req.Address, req.SignupID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSignupNotFound):
			response.RenderErr(ctx, response.ErrNotFound("signup", "ID", req.SignupID))
		case errors.Is(err, service.ErrPaymentAddressNotFound):
			response.RenderErr(ctx, response.ErrNotFound("payment address", "address", req.Address))
		default:
			err = fmt.Errorf("v1.HandleVerifyPayment -> h.svc.VerifyPayment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.VerifyResponse{
		Confirmed:      result.Confirmed,
		Balance:        result.Balance,
		ExpectedAmount: result.ExpectedAmount,
	})
}
