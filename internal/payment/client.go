package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"bus-ticketing/internal/models"
	"bus-ticketing/internal/utils"
)

// HTTPGateway charges through the payment service over HTTP. It is the
// production counterpart of SimulatedGateway; both satisfy the booking
// service's Gateway interface.
type HTTPGateway struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPGateway(baseURL string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGateway{BaseURL: baseURL, Client: client}
}

func (g *HTTPGateway) Charge(ctx context.Context, chargeReq models.ChargeRequest) (*models.ChargeResponse, error) {
	reqBody, err := json.Marshal(chargeReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/api/v1/charges", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	var envelope utils.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	if !envelope.Valido {
		if len(envelope.Erros) > 0 {
			return nil, fmt.Errorf("charge rejected: %s", envelope.Erros[0])
		}
		return nil, fmt.Errorf("charge rejected: status %d", resp.StatusCode)
	}

	// Dados round-trips through the envelope as a generic map
	dados, err := json.Marshal(envelope.Dados)
	if err != nil {
		return nil, err
	}
	var charge models.ChargeResponse
	if err := json.Unmarshal(dados, &charge); err != nil {
		return nil, fmt.Errorf("failed to decode charge result: %w", err)
	}
	return &charge, nil
}
