package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/furnimart/storefront/internal/entity"
	"github.com/furnimart/storefront/internal/metrics"
)

// PaymentIntentRequest asks the gateway (via the backend) to authorize a
// charge. Amount is in minor currency units.
type PaymentIntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreatePaymentIntent requests a gateway client secret for the given amount.
// This endpoint is not enveloped; it returns {clientSecret} directly, and all
// failures here map to ErrGateway since nothing has been captured yet.
func (c *Client) CreatePaymentIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	start := time.Now()
	secret, err := c.createPaymentIntent(ctx, amountMinor, currency)
	metrics.ObserveBackendRequest("create_payment_intent", err, time.Since(start))
	return secret, err
}

func (c *Client) createPaymentIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	req := PaymentIntentRequest{Amount: amountMinor, Currency: currency}
	resp, err := c.roundTrip(ctx, http.MethodPost, "/payment/create-payment-intent", nil, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", entity.ErrGateway, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: backend returned HTTP %d", entity.ErrGateway, resp.StatusCode)
	}

	var out paymentIntentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", entity.ErrGateway, err)
	}
	if out.ClientSecret == "" {
		return "", fmt.Errorf("%w: no client secret in response", entity.ErrGateway)
	}
	return out.ClientSecret, nil
}
