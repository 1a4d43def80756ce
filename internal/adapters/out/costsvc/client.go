// Package costsvc provides the HTTP client for the external delivery cost
// service. The service quotes the delivering cost and road distance for a
// route; callers degrade gracefully when the lookup fails.
package costsvc

import (
	"context"
	"fmt"
	"time"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/ports"
	"carveyor/internal/pkg/errs"

	"github.com/go-resty/resty/v2"
)

// RestyDeliveryCostClient implements DeliveryCostLookup over the cost
// service's REST API.
type RestyDeliveryCostClient struct {
	client *resty.Client
}

// NewRestyDeliveryCostClient creates a cost service client for the given base
// URL. Transient failures are retried twice before the lookup is reported
// failed.
func NewRestyDeliveryCostClient(baseURL string, timeout time.Duration) (*RestyDeliveryCostClient, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2)

	return &RestyDeliveryCostClient{client: client}, nil
}

type routeCostRequest struct {
	SourceRoad      string `json:"source_road"`
	DestinationRoad string `json:"destination_road"`
}

type routeCostResponse struct {
	Cost       int64   `json:"cost"`
	DistanceKm float64 `json:"distance_km"`
}

// Lookup resolves the delivering cost and distance for a route.
func (c *RestyDeliveryCostClient) Lookup(
	ctx context.Context,
	source, destination kernel.Address,
) (ports.DeliveryCostResult, error) {
	if err := source.Validate(); err != nil {
		return ports.DeliveryCostResult{}, err
	}
	if err := destination.Validate(); err != nil {
		return ports.DeliveryCostResult{}, err
	}

	var result routeCostResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(routeCostRequest{
			SourceRoad:      source.Road(),
			DestinationRoad: destination.Road(),
		}).
		SetResult(&result).
		Post("/route-cost")
	if err != nil {
		return ports.DeliveryCostResult{}, fmt.Errorf("cost service request failed: %w", err)
	}
	if resp.IsError() {
		return ports.DeliveryCostResult{}, fmt.Errorf("cost service responded %s", resp.Status())
	}

	cost, err := kernel.NewMoney(result.Cost)
	if err != nil {
		return ports.DeliveryCostResult{}, fmt.Errorf("cost service returned invalid cost: %w", err)
	}

	return ports.DeliveryCostResult{
		Cost:       cost,
		DistanceKm: result.DistanceKm,
	}, nil
}
