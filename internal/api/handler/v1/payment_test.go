package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dancecash/dancecash-api/internal/domain"
	"github.com/dancecash/dancecash-api/internal/service"
)

const testSignupID = "11111111-2222-3333-4444-555555555555"

type stubPaymentService struct {
	addr      domain.PaymentAddress
	addrErr   error
	result    service.VerifyResult
	verifyErr error
}

func (s *stubPaymentService) IssueAddress(_ context.Context, _ string, _ float64) (domain.PaymentAddress, error) {
	return s.addr, s.addrErr
}

func (s *stubPaymentService) VerifyPayment(_ context.Context, _, _ string) (service.VerifyResult, error) {
	return s.result, s.verifyErr
}

type stubRateService struct {
	rate service.Rate
}

func (s *stubRateService) CurrentRate(_ context.Context) service.Rate {
	return s.rate
}

func newPaymentRouter(svc PaymentService, rates RateService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewPaymentHandler(svc, rates)
	router.GET("/payments/rate", handler.HandleGetRate)
	router.POST("/payments/address", handler.HandleGenerateAddress)
	router.POST("/payments/verify", handler.HandleVerifyPayment)

	return router
}

func TestHandleGetRate(t *testing.T) {
	t.Run("live rate", func(t *testing.T) {
		router := newPaymentRouter(&stubPaymentService{}, &stubRateService{
			rate: service.Rate{BCHToUSD: 342.5, Timestamp: time.Now()},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/payments/rate", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 342.5, body["bchToUsd"])
		assert.NotContains(t, body, "error")
	})

	t.Run("fallback rate still responds 200", func(t *testing.T) {
		router := newPaymentRouter(&stubPaymentService{}, &stubRateService{
			rate: service.Rate{BCHToUSD: 500, Timestamp: time.Now(), Fallback: true},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/payments/rate", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 500.0, body["bchToUsd"])
		assert.NotEmpty(t, body["error"])
	})
}

func TestHandleGenerateAddress(t *testing.T) {
	t.Run("returns the issued address", func(t *testing.T) {
		expires := time.Now().Add(time.Hour)
		router := newPaymentRouter(&stubPaymentService{
			addr: domain.PaymentAddress{
				Address:   "bchtest:qdeposit",
				AmountBCH: 0.05,
				ExpiresAt: expires,
			},
		}, &stubRateService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payments/address",
			strings.NewReader(`{"signupId":"`+testSignupID+`"}`))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "bchtest:qdeposit", body["address"])
		assert.Equal(t, 0.05, body["amountBch"])
		assert.Contains(t, body, "expiresAt")
	})

	t.Run("rejects an invalid signup id", func(t *testing.T) {
		router := newPaymentRouter(&stubPaymentService{}, &stubRateService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payments/address",
			strings.NewReader(`{"signupId":"nope"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps unknown signup to 404", func(t *testing.T) {
		router := newPaymentRouter(&stubPaymentService{
			addrErr: service.ErrSignupNotFound,
		}, &stubRateService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payments/address",
			strings.NewReader(`{"signupId":"`+testSignupID+`"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("maps a non-payable signup to 409", func(t *testing.T) {
		router := newPaymentRouter(&stubPaymentService{
			addrErr: service.ErrSignupNotPayable,
		}, &stubRateService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payments/address",
			strings.NewReader(`{"signupId":"`+testSignupID+`"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandleVerifyPayment(t *testing.T) {
	t.Run("reports a pending payment", func(t *testing.T) {
		router := newPaymentRouter(&stubPaymentService{
			result: service.VerifyResult{Confirmed: false, Balance: 0.01, ExpectedAmount: 0.05},
		}, &stubRateService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payments/verify",
			strings.NewReader(`{"address":"bchtest:qdeposit","signupId":"`+testSignupID+`"}`))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["confirmed"])
		assert.Equal(t, 0.01, body["balance"])
		assert.Equal(t, 0.05, body["expectedAmount"])
	})

	t.Run("reports a confirmed payment", func(t *testing.T) {
		router := newPaymentRouter(&stubPaymentService{
			result: service.VerifyResult{Confirmed: true, Balance: 0.05, ExpectedAmount: 0.05},
		}, &stubRateService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payments/verify",
			strings.NewReader(`{"address":"bchtest:qdeposit","signupId":"`+testSignupID+`"}`))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["confirmed"])
	})

	t.Run("maps an unknown address to 404", func(t *testing.T) {
		router := newPaymentRouter(&stubPaymentService{
			verifyErr: service.ErrPaymentAddressNotFound,
		}, &stubRateService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payments/verify",
			strings.NewReader(`{"address":"bchtest:qunknown","signupId":"`+testSignupID+`"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
