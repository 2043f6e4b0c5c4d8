package rails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	errs "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	railsport "github.com/payflow-labs/payflow/internal/domain/port/rails"
	"github.com/payflow-labs/payflow/internal/resilience"
)

// Config represents payment rails gateway configuration
type Config struct {
	BankAPIURL     string        `mapstructure:"rails_bank_api_url"`
	CardNetworkURL string        `mapstructure:"rails_card_network_url"`
	ACHNetworkURL  string        `mapstructure:"rails_ach_network_url"`
	RequestTimeout time.Duration `mapstructure:"rails_request_timeout"`
}

type railRequest struct {
	MethodID    uint64 `json:"method_id"`
	OwnerID     uint64 `json:"owner_id"`
	AmountCents int64  `json:"amount_cents"`
}

type railResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// HTTPGateway talks to the external payment processors. Every call runs
// through the per-service circuit breaker and the external-payment retry
// policy, so a degraded processor fails fast instead of queueing work.
type HTTPGateway struct {
	client   *http.Client
	config   Config
	breakers *resilience.Registry
	retry    resilience.Policy
	logger   coreport.Logger
}

// NewHTTPGateway creates the gateway
func NewHTTPGateway(cfg Config, breakers *resilience.Registry, logger coreport.Logger) *HTTPGateway {
	return &HTTPGateway{
		client:   &http.Client{Timeout: cfg.RequestTimeout},
		config:   cfg,
		breakers: breakers,
		retry:    resilience.ExternalPaymentPolicy(),
		logger:   logger,
	}
}

var _ railsport.PaymentRails = (*HTTPGateway)(nil)

// Collect pulls amountCents from the given payment method. Returns the
// processor's reference for the settlement record.
func (g *HTTPGateway) Collect(ctx context.Context, method *entity.PaymentMethod, amountCents int64) (string, error) {
	service, baseURL := g.routeCollect(method)
	return g.call(ctx, service, baseURL+"/v1/collect", method, amountCents)
}

// Payout pushes amountCents to the given payment method
func (g *HTTPGateway) Payout(ctx context.Context, method *entity.PaymentMethod, amountCents int64) (string, error) {
	service, baseURL := g.routePayout(method)
	return g.call(ctx, service, baseURL+"/v1/payout", method, amountCents)
}

// routeCollect maps a payment method to the processor that can debit it
func (g *HTTPGateway) routeCollect(method *entity.PaymentMethod) (string, string) {
	if method.Kind == entity.MethodCard {
		return railsport.ServiceCardNetwork, g.config.CardNetworkURL
	}
	return railsport.ServiceBankAPI, g.config.BankAPIURL
}

// routePayout maps a payment method to the processor that can credit it.
// Bank payouts ride the ACH network.
func (g *HTTPGateway) routePayout(method *entity.PaymentMethod) (string, string) {
	if method.Kind == entity.MethodCard {
		return railsport.ServiceCardNetwork, g.config.CardNetworkURL
	}
	return railsport.ServiceACHNetwork, g.config.ACHNetworkURL
}

func (g *HTTPGateway) call(ctx context.Context, service, url string, method *entity.PaymentMethod, amountCents int64) (string, error) {
	breaker := g.breakers.Get(service)

	var reference string
	err := g.retry.Do(ctx, g.logger, func() error {
		return breaker.Execute(ctx, func(callCtx context.Context) error {
			ref, callErr := g.doRequest(callCtx, url, method, amountCents)
			if callErr != nil {
				return callErr
			}
			reference = ref
			return nil
		})
	})
	if err != nil {
		g.logger.Warn("Payment rail call failed", map[string]any{
			"service":      service,
			"method_id":    method.ID,
			"amount_cents": amountCents,
			"error":        err.Error(),
		})
		return "", err
	}

	return reference, nil
}

func (g *HTTPGateway) doRequest(ctx context.Context, url string, method *entity.PaymentMethod, amountCents int64) (string, error) {
	payload, err := json.Marshal(railRequest{
		MethodID:    method.ID,
		OwnerID:     method.OwnerID,
		AmountCents: amountCents,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode rail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build rail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errs.ErrExternalService, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %s", errs.ErrExternalService, err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", errs.ErrExternalService, resp.StatusCode, string(body))
	}

	var railResp railResponse
	if err := json.Unmarshal(body, &railResp); err != nil {
		return "", fmt.Errorf("%w: malformed response: %s", errs.ErrExternalService, err.Error())
	}
	if railResp.Reference == "" {
		return "", fmt.Errorf("%w: response missing reference", errs.ErrExternalService)
	}

	return railResp.Reference, nil
}
