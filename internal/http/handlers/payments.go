package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

type depositIntentRequest struct {
	Amount float64 `json:"amount"`
}

type depositIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreateDepositIntent opens a Stripe payment intent for the broker-service
// deposit. The amount arrives in dollars and is charged in cents. When no
// Stripe key is configured the endpoint reports the payment service as
// unavailable instead of failing the broker request flow.
func (a *App) CreateDepositIntent(w http.ResponseWriter, r *http.Request) {
	if a.StripeKey == "" {
		a.error(w, http.StatusServiceUnavailable, "unavailable", "payment service not configured")
		return
	}

	var req depositIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("service", "broker_deposit")

	pi, err := paymentintent.New(params)
	if err != nil {
		a.Log.Error().Err(err).Msg("create payment intent failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to start payment")
		return
	}
	a.json(w, http.StatusOK, depositIntentResponse{ClientSecret: pi.ClientSecret})
}
