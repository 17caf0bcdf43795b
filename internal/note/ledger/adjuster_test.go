package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHTTPAdjuster_SendsSignedDelta verifies the request shape: PUT to the
// product endpoint with the delta as Quantity.
func TestHTTPAdjuster_SendsSignedDelta(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	adjuster := NewHTTPAdjuster(server.URL)
	err := adjuster.Adjust(context.Background(), "widget-1", -3)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/products/widget-1", gotPath)
	assert.Equal(t, map[string]int64{"Quantity": -3}, gotBody)
}

// TestHTTPAdjuster_NonOKIsRejection verifies any status other than 200 turns
// into an AdjustmentError carrying the response body.
func TestHTTPAdjuster_NonOKIsRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("insufficient quantity: product widget-1 has 2, adjustment -5\n"))
	}))
	defer server.Close()

	adjuster := NewHTTPAdjuster(server.URL)
	err := adjuster.Adjust(context.Background(), "widget-1", -5)

	var aerr *AdjustmentError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "widget-1", aerr.ProductID)
	assert.Equal(t, "insufficient quantity: product widget-1 has 2, adjustment -5", aerr.Detail)
	assert.Contains(t, aerr.Error(), "failed to update product widget-1")
}

// TestHTTPAdjuster_CreatedIsNotSuccess verifies success is exactly 200, not
// any 2xx.
func TestHTTPAdjuster_CreatedIsNotSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	adjuster := NewHTTPAdjuster(server.URL)
	err := adjuster.Adjust(context.Background(), "widget-1", 1)

	var aerr *AdjustmentError
	assert.ErrorAs(t, err, &aerr)
}

// TestHTTPAdjuster_Unreachable verifies a transport failure is not an
// AdjustmentError; it reports the connection problem directly.
func TestHTTPAdjuster_Unreachable(t *testing.T) {
	adjuster := NewHTTPAdjuster("http://127.0.0.1:1")
	err := adjuster.Adjust(context.Background(), "widget-1", 1)

	require.Error(t, err)
	var aerr *AdjustmentError
	assert.False(t, errors.As(err, &aerr))
}
