// Package pickndrop implements the carrier client for the Pick&Drop
// third-party logistics provider. Pick&Drop issues session tokens against a
// client-id/secret pair; like YDM the token is cached in the credential
// store and refreshed lazily.
package pickndrop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const (
	tokenPath     = "/v2/token"
	shipmentsPath = "/v2/shipments"
	locationsPath = "/v2/locations"
)

// statusTable maps Pick&Drop's raw status vocabulary onto the canonical one.
func statusTable() map[string]order.Status {
	return map[string]order.Status{
		"PICKED_UP":        order.SentToCarrier,
		"IN_TRANSIT":       order.SentToCarrier,
		"OUT_FOR_DELIVERY": order.OutForDelivery,
		"HOLD":             order.Rescheduled,
		"DELIVERED":        order.Delivered,
		"RTV_IN_TRANSIT":   order.ReturnPending,
		"RTV_COMPLETED":    order.ReturnedByCarrier,
	}
}

// Config holds the Pick&Drop endpoint and account coordinates.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// Client talks to the Pick&Drop REST API. Safe for concurrent use.
type Client struct {
	config      Config
	httpClient  *http.Client
	credentials ports.CredentialStore
}

// NewClient creates a Pick&Drop client backed by the given credential store.
func NewClient(config Config, credentials ports.CredentialStore) *Client {
	return &Client{
		config:      config,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		credentials: credentials,
	}
}

// Name identifies the carrier this client talks to.
func (c *Client) Name() order.Carrier {
	return order.CarrierPickNDrop
}

// MapStatus translates a raw Pick&Drop status into the canonical vocabulary.
func (c *Client) MapStatus(raw string) (order.Status, bool) {
	status, ok := statusTable()[raw]
	return status, ok
}

type shipmentRequest struct {
	ReferenceNo   string `json:"reference_no"`
	ReceiverName  string `json:"receiver_name"`
	ReceiverPhone string `json:"receiver_phone"`
	ReceiverAddr  string `json:"receiver_address"`
	CODAmount     string `json:"cod_amount"`
}

type shipmentResponse struct {
	ShipmentNo string `json:"shipment_no"`
}

// Dispatch registers the order as a Pick&Drop shipment and returns the
// shipment number used as the tracking code.
func (c *Client) Dispatch(ctx context.Context, o *order.Order) (string, error) {
	body := shipmentRequest{
		ReferenceNo:   o.Code(),
		ReceiverName:  o.Customer().Name,
		ReceiverPhone: o.Customer().Phone,
		ReceiverAddr:  o.Customer().Address,
		CODAmount:     o.CODAmount().StringFixed(2),
	}

	var resp shipmentResponse
	if err := c.doAuthorized(ctx, http.MethodPost, shipmentsPath, body, &resp); err != nil {
		return "", err
	}
	if resp.ShipmentNo == "" {
		return "", errs.NewCarrierUnavailableError(string(order.CarrierPickNDrop),
			fmt.Errorf("dispatch response carried no shipment number"))
	}

	return resp.ShipmentNo, nil
}

type trackResponse struct {
	Status string `json:"status"`
}

// Track fetches the current raw status of a Pick&Drop shipment.
func (c *Client) Track(ctx context.Context, trackingCode string) (string, error) {
	var resp trackResponse
	err := c.doAuthorized(ctx, http.MethodGet, shipmentsPath+"/"+trackingCode, nil, &resp)
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}

type locationResponse struct {
	Locations []struct {
		Code     string `json:"code"`
		Name     string `json:"name"`
		District string `json:"district"`
	} `json:"locations"`
}

// Branches fetches Pick&Drop's serviceable location list.
func (c *Client) Branches(ctx context.Context) ([]ports.Branch, error) {
	var resp locationResponse
	if err := c.doAuthorized(ctx, http.MethodGet, locationsPath, nil, &resp); err != nil {
		return nil, err
	}

	branches := make([]ports.Branch, 0, len(resp.Locations))
	for _, l := range resp.Locations {
		branches = append(branches, ports.Branch{ID: l.Code, Name: l.Name, City: l.District})
	}
	return branches, nil
}

func (c *Client) doAuthorized(ctx context.Context, method, path string, body, out any) error {
	token, err := c.token(ctx, false)
	if err != nil {
		return err
	}

	status, err := c.doRequest(ctx, method, path, token, body, out)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		if token, err = c.token(ctx, true); err != nil {
			return err
		}
		if status, err = c.doRequest(ctx, method, path, token, body, out); err != nil {
			return err
		}
	}
	if status < 200 || status > 299 {
		return errs.NewCarrierUnavailableError(string(order.CarrierPickNDrop),
			fmt.Errorf("unexpected response status %d", status))
	}

	return nil
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (c *Client) token(ctx context.Context, force bool) (string, error) {
	if !force {
		cred, err := c.credentials.Get(ctx, order.CarrierPickNDrop)
		if err != nil {
			return "", err
		}
		if cred != nil && !cred.Expired(time.Now()) {
			return cred.Token, nil
		}
	}

	var resp tokenResponse
	status, err := c.doRequest(ctx, http.MethodPost, tokenPath, "", tokenRequest{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
	}, &resp)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK || resp.AccessToken == "" {
		return "", errs.NewCarrierUnavailableError(string(order.CarrierPickNDrop),
			fmt.Errorf("token request failed with status %d", status))
	}

	cred := ports.CarrierCredential{
		Carrier:   order.CarrierPickNDrop,
		Token:     resp.AccessToken,
		ExpiresAt: time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}
	if err = c.credentials.Put(ctx, cred); err != nil {
		return "", err
	}

	return resp.AccessToken, nil
}

func (c *Client) doRequest(ctx context.Context, method, path, token string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("pickndrop: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("pickndrop: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errs.NewCarrierUnavailableError(string(order.CarrierPickNDrop), err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return 0, errs.NewCarrierUnavailableError(string(order.CarrierPickNDrop), err)
		}
	}

	return resp.StatusCode, nil
}
