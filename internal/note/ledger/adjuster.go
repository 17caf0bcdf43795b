// Package ledger drives signed quantity adjustments against the product
// service. The product service owns the invariant that a quantity never goes
// negative; this package only carries the deltas over the wire.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/warehouse-inbound/pkg/logger"
)

// Adjuster applies one signed quantity adjustment to one product.
type Adjuster interface {
	Adjust(ctx context.Context, productID string, delta int64) error
}

// AdjustmentError is a rejected adjustment: the product service answered with
// a non-200 status. Detail carries the response body text.
type AdjustmentError struct {
	ProductID string
	Detail    string
}

func (e *AdjustmentError) Error() string {
	return fmt.Sprintf("failed to update product %s: %s", e.ProductID, e.Detail)
}

// HTTPAdjuster adjusts product quantities through the product service's
// update endpoint. Success is exactly HTTP 200; any other status is a hard
// failure.
type HTTPAdjuster struct {
	baseURL string
	client  *http.Client
}

// NewHTTPAdjuster creates an adjuster targeting the product service at
// baseURL, e.g. "http://localhost:8081".
func NewHTTPAdjuster(baseURL string) *HTTPAdjuster {
	return &HTTPAdjuster{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Adjust issues PUT /api/products/{id} with the signed delta as Quantity.
func (a *HTTPAdjuster) Adjust(ctx context.Context, productID string, delta int64) error {
	body, err := json.Marshal(map[string]int64{"Quantity": delta})
	if err != nil {
		return fmt.Errorf("failed to encode adjustment: %w", err)
	}

	url := a.baseURL + "/api/products/" + productID
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build adjustment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach product service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		logger.Warn(ctx).
			Str("product_id", productID).
			Int64("delta", delta).
			Int("status", resp.StatusCode).
			Msg("Adjustment rejected")
		return &AdjustmentError{
			ProductID: productID,
			Detail:    strings.TrimSpace(string(detail)),
		}
	}

	return nil
}
