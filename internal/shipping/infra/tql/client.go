// Package tql shapes freight quote requests for the TQL LTL API.
package tql

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
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type quoteRequest struct {
	DestCity    string `json:"destCity"`
	DestState   string `json:"destState"`
	DestZip     string `json:"destZip"`
	TotalWeight int64  `json:"totalWeight"`
	// Palletized dowels ship as freight class 70.
	FreightClass string `json:"freightClass"`
}

type quoteResponse struct {
	Quotes []struct {
		CarrierName string  `json:"carrierName"`
		Total       float64 `json:"total"`
		TransitDays int     `json:"transitDays"`
	} `json:"quotes"`
}

func (c *Client) Rates(ctx context.Context, dest domain.Destination, weightPounds int64) ([]domain.RateOption, error) {
	body, err := json.Marshal(quoteRequest{
		DestCity:     dest.City,
		DestState:    dest.State,
		DestZip:      dest.Zip,
		TotalWeight:  weightPounds,
		FreightClass: "70",
	})
	if err != nil {
		return nil, fmt.Errorf("tql: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/quotes", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tql: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tql: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tql: unexpected status %d", resp.StatusCode)
	}

	var out quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("tql: decode response: %w", err)
	}

	options := make([]domain.RateOption, 0, len(out.Quotes))
	for _, q := range out.Quotes {
		options = append(options, domain.RateOption{
			Carrier:       domain.CarrierFreight,
			Service:       q.CarrierName,
			AmountCents:   int64(q.Total*100 + 0.5),
			EstimatedDays: q.TransitDays,
		})
	}
	return options, nil
}
