// Package usps shapes parcel rate requests for the USPS prices API proxy.
package usps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/forcedowels/storefront/internal/shipping/domain"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type rateRequest struct {
	DestinationZip   string `json:"destinationZip"`
	DestinationState string `json:"destinationState"`
	WeightPounds     int64  `json:"weightPounds"`
}

type rateResponse struct {
	Rates []struct {
		Service       string  `json:"service"`
		Price         float64 `json:"price"`
		EstimatedDays int     `json:"estimatedDays"`
	} `json:"rates"`
}

func (c *Client) Rates(ctx context.Context, dest domain.Destination, weightPounds int64) ([]domain.RateOption, error) {
	body, err := json.Marshal(rateRequest{
		DestinationZip:   dest.Zip,
		DestinationState: dest.State,
		WeightPounds:     weightPounds,
	})
	if err != nil {
		return nil, fmt.Errorf("usps: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rates", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("usps: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usps: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usps: unexpected status %d", resp.StatusCode)
	}

	var out rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("usps: decode response: %w", err)
	}

	options := make([]domain.RateOption, 0, len(out.Rates))
	for _, r := range out.Rates {
		options = append(options, domain.RateOption{
			Carrier:       domain.CarrierParcel,
			Service:       r.Service,
			AmountCents:   int64(r.Price*100 + 0.5),
			EstimatedDays: r.EstimatedDays,
		})
	}
	return options, nil
}
