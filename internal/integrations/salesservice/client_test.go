package salesservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TruongDHiep/Booking-Service-System/pkg/logger"
)

func TestCreateSaleOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/sale-orders", r.URL.Path)

		var req SaleOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "APT/00003", req.AppointmentReference)
		require.Len(t, req.Lines, 1)
		assert.Equal(t, "PRD-1", req.Lines[0].ProductRef)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(SaleOrder{ID: 42, Name: "SO042", State: "draft"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.NewNop())
	so, err := c.CreateSaleOrder(context.Background(), &SaleOrderRequest{
		AppointmentReference: "APT/00003",
		Lines:                []SaleOrderLine{{ProductRef: "PRD-1", Quantity: 1, PriceUnit: 80}},
	})

	require.NoError(t, err)
	assert.Equal(t, "SO042", so.Name)
}

func TestCreateSaleOrder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"rejected", http.StatusUnprocessableEntity, `{"code":422,"message":"unknown product"}`, ErrRejected},
		{"server error", http.StatusBadGateway, `oops`, ErrInvalidResponse},
		{"bad body", http.StatusOK, `not json`, ErrInvalidResponse},
		{"empty name", http.StatusOK, `{"id":1}`, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, time.Second, logger.NewNop())
			_, err := c.CreateSaleOrder(context.Background(), &SaleOrderRequest{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateSaleOrder_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond, logger.NewNop())
	_, err := c.CreateSaleOrder(context.Background(), &SaleOrderRequest{})
	assert.ErrorIs(t, err, ErrInternal)
}
