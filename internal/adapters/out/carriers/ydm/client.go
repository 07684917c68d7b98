// Package ydm implements the carrier client for the YDM third-party
// logistics provider. YDM authenticates with a short-lived bearer token;
// the client refreshes it lazily through the credential store so a token
// survives process restarts and is shared between dispatches.
package ydm

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
	loginPath    = "/api/v1/auth/login"
	orderPath    = "/api/v1/orders"
	branchesPath = "/api/v1/branches"
)

// statusTable maps YDM's raw status vocabulary onto the canonical one.
// Raw strings not listed here are unrecognized; the caller records a remark.
func statusTable() map[string]order.Status {
	return map[string]order.Status{
		"Pickup Pending":     order.SentToCarrier,
		"Pickup Complete":    order.SentToCarrier,
		"Out For Delivery":   order.OutForDelivery,
		"Rescheduled":        order.Rescheduled,
		"Delivery Completed": order.Delivered,
		"Return Initiated":   order.ReturnPending,
		"Return to Vendor":   order.ReturnedByCarrier,
	}
}

// Config holds the YDM endpoint and account coordinates.
type Config struct {
	BaseURL  string
	Username string
	Password string
}

// Client talks to the YDM REST API. Safe for concurrent use.
type Client struct {
	config      Config
	httpClient  *http.Client
	credentials ports.CredentialStore
}

// NewClient creates a YDM client backed by the given credential store.
func NewClient(config Config, credentials ports.CredentialStore) *Client {
	return &Client{
		config:      config,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		credentials: credentials,
	}
}

// Name identifies the carrier this client talks to.
func (c *Client) Name() order.Carrier {
	return order.CarrierYDM
}

// MapStatus translates a raw YDM status into the canonical vocabulary.
func (c *Client) MapStatus(raw string) (order.Status, bool) {
	status, ok := statusTable()[raw]
	return status, ok
}

type dispatchRequest struct {
	OrderCode      string `json:"order_code"`
	CustomerName   string `json:"customer_name"`
	CustomerPhone  string `json:"customer_phone"`
	Address        string `json:"address"`
	CODAmount      string `json:"cod_amount"`
	DeliveryCharge string `json:"delivery_charge"`
}

type dispatchResponse struct {
	TrackingID string `json:"tracking_id"`
}

// Dispatch registers the order with YDM and returns its tracking identifier.
func (c *Client) Dispatch(ctx context.Context, o *order.Order) (string, error) {
	body := dispatchRequest{
		OrderCode:      o.Code(),
		CustomerName:   o.Customer().Name,
		CustomerPhone:  o.Customer().Phone,
		Address:        o.Customer().Address,
		CODAmount:      o.CODAmount().StringFixed(2),
		DeliveryCharge: o.DeliveryCharge().StringFixed(2),
	}

	var resp dispatchResponse
	if err := c.doAuthorized(ctx, http.MethodPost, orderPath, body, &resp); err != nil {
		return "", err
	}
	if resp.TrackingID == "" {
		return "", errs.NewCarrierUnavailableError(string(order.CarrierYDM),
			fmt.Errorf("dispatch response carried no tracking id"))
	}

	return resp.TrackingID, nil
}

type trackResponse struct {
	Status string `json:"status"`
}

// Track fetches the current raw status of a YDM shipment.
func (c *Client) Track(ctx context.Context, trackingCode string) (string, error) {
	var resp trackResponse
	err := c.doAuthorized(ctx, http.MethodGet, orderPath+"/"+trackingCode+"/status", nil, &resp)
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}

type branchResponse struct {
	Branches []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		City string `json:"city"`
	} `json:"branches"`
}

// Branches fetches YDM's serviceable branch list.
func (c *Client) Branches(ctx context.Context) ([]ports.Branch, error) {
	var resp branchResponse
	if err := c.doAuthorized(ctx, http.MethodGet, branchesPath, nil, &resp); err != nil {
		return nil, err
	}

	branches := make([]ports.Branch, 0, len(resp.Branches))
	for _, b := range resp.Branches {
		branches = append(branches, ports.Branch{ID: b.ID, Name: b.Name, City: b.City})
	}
	return branches, nil
}

// doAuthorized performs a request with a valid bearer token, refreshing the
// token once when the cached one is expired or the API rejects it.
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
		// Cached token revoked server-side; force one re-login.
		if token, err = c.token(ctx, true); err != nil {
			return err
		}
		if status, err = c.doRequest(ctx, method, path, token, body, out); err != nil {
			return err
		}
	}
	if status < 200 || status > 299 {
		return errs.NewCarrierUnavailableError(string(order.CarrierYDM),
			fmt.Errorf("unexpected response status %d", status))
	}

	return nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// token returns a usable bearer token, re-authenticating only when the
// stored one is missing, expired, or a refresh is forced.
func (c *Client) token(ctx context.Context, force bool) (string, error) {
	if !force {
		cred, err := c.credentials.Get(ctx, order.CarrierYDM)
		if err != nil {
			return "", err
		}
		if cred != nil && !cred.Expired(time.Now()) {
			return cred.Token, nil
		}
	}

	var resp loginResponse
	status, err := c.doRequest(ctx, http.MethodPost, loginPath, "", loginRequest{
		Username: c.config.Username,
		Password: c.config.Password,
	}, &resp)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK || resp.Token == "" {
		return "", errs.NewCarrierUnavailableError(string(order.CarrierYDM),
			fmt.Errorf("login failed with status %d", status))
	}

	cred := ports.CarrierCredential{
		Carrier:   order.CarrierYDM,
		Token:     resp.Token,
		ExpiresAt: time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}
	if err = c.credentials.Put(ctx, cred); err != nil {
		return "", err
	}

	return resp.Token, nil
}

// doRequest performs one JSON round trip. Transport failures become
// carrier-unavailable errors; HTTP status handling is left to the caller.
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("ydm: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("ydm: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errs.NewCarrierUnavailableError(string(order.CarrierYDM), err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return 0, errs.NewCarrierUnavailableError(string(order.CarrierYDM), err)
		}
	}

	return resp.StatusCode, nil
}
