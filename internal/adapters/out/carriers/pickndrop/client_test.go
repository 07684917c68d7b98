package pickndrop_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"fulfillment/internal/adapters/out/carriers/pickndrop"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCredentialStore struct {
	mu    sync.Mutex
	creds map[order.Carrier]ports.CarrierCredential
}

func newMemoryCredentialStore() *memoryCredentialStore {
	return &memoryCredentialStore{creds: make(map[order.Carrier]ports.CarrierCredential)}
}

func (s *memoryCredentialStore) Get(_ context.Context, c order.Carrier) (*ports.CarrierCredential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cred, ok := s.creds[c]
	if !ok {
		return nil, nil
	}
	return &cred, nil
}

func (s *memoryCredentialStore) Put(_ context.Context, cred ports.CarrierCredential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[cred.Carrier] = cred
	return nil
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	owner, err := kernel.NewOwnerRef(kernel.OwnerFranchise, kernel.NewUUID())
	require.NoError(t, err)
	o, err := order.NewOrder(
		kernel.NewUUID(),
		owner,
		order.Customer{Name: "Aruna Shakya", Phone: "9800000001", Address: "Patan"},
		[]order.Line{{ProductID: kernel.NewUUID(), Quantity: 2}},
		order.PaymentCashOnDelivery,
		decimal.NewFromInt(1500),
		decimal.NewFromInt(0),
		decimal.NewFromInt(100),
	)
	require.NoError(t, err)
	return o
}

func TestClient_Dispatch_ObtainsTokenAndCreatesShipment(t *testing.T) {
	var tokenCalls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/token":
			tokenCalls++
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "client-1", body["client_id"])
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"access_token": "pnd-token", "expires_in": 1800,
			}))
		case "/v2/shipments":
			assert.Equal(t, "Bearer pnd-token", r.Header.Get("Authorization"))
			require.NoError(t, json.NewEncoder(w).Encode(map[string]string{
				"shipment_no": "PND-555",
			}))
		}
	}))
	defer server.Close()

	client := pickndrop.NewClient(pickndrop.Config{
		BaseURL:      server.URL,
		ClientID:     "client-1",
		ClientSecret: "secret",
	}, newMemoryCredentialStore())

	tracking, err := client.Dispatch(t.Context(), testOrder(t))
	require.NoError(t, err)
	assert.Equal(t, "PND-555", tracking)
	assert.Equal(t, 1, tokenCalls)

	_, err = client.Dispatch(t.Context(), testOrder(t))
	require.NoError(t, err)
	assert.Equal(t, 1, tokenCalls)
}

func TestClient_Dispatch_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := pickndrop.NewClient(pickndrop.Config{BaseURL: server.URL}, newMemoryCredentialStore())

	_, err := client.Dispatch(t.Context(), testOrder(t))
	assert.ErrorIs(t, err, errs.ErrCarrierUnavailable)
}

func TestClient_Branches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/token":
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"access_token": "pnd-token", "expires_in": 1800,
			}))
		case "/v2/locations":
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"locations": []map[string]string{
					{"code": "LTP-01", "name": "Lalitpur Depot", "district": "Lalitpur"},
				},
			}))
		}
	}))
	defer server.Close()

	client := pickndrop.NewClient(pickndrop.Config{BaseURL: server.URL}, newMemoryCredentialStore())

	branches, err := client.Branches(t.Context())
	require.NoError(t, err)
	require.Len(t, branches, 1)
	assert.Equal(t, ports.Branch{ID: "LTP-01", Name: "Lalitpur Depot", City: "Lalitpur"}, branches[0])
}

func TestClient_Track(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/token":
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"access_token": "pnd-token", "expires_in": 3600,
			}))
		case "/v2/shipments/PND-7":
			assert.Equal(t, "Bearer pnd-token", r.Header.Get("Authorization"))
			require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"status": "RTV_COMPLETED"}))
		}
	}))
	defer server.Close()

	client := pickndrop.NewClient(pickndrop.Config{BaseURL: server.URL}, newMemoryCredentialStore())

	raw, err := client.Track(t.Context(), "PND-7")
	require.NoError(t, err)
	assert.Equal(t, "RTV_COMPLETED", raw)
}

func TestClient_MapStatus(t *testing.T) {
	client := pickndrop.NewClient(pickndrop.Config{}, newMemoryCredentialStore())

	status, ok := client.MapStatus("DELIVERED")
	require.True(t, ok)
	assert.Equal(t, order.Delivered, status)

	status, ok = client.MapStatus("RTV_COMPLETED")
	require.True(t, ok)
	assert.Equal(t, order.ReturnedByCarrier, status)

	_, ok = client.MapStatus("UNKNOWN_CODE")
	assert.False(t, ok)
}
