// Package dash implements the carrier client for DASH, the company's
// in-house delivery fleet. DASH sits inside the network perimeter and
// authenticates with a static API key, so there is no token lifecycle here.
package dash

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
	orderPath = "/internal/orders"
	hubsPath  = "/internal/hubs"
)

// statusTable maps DASH's raw status vocabulary onto the canonical one.
func statusTable() map[string]order.Status {
	return map[string]order.Status{
		"queued":           order.SentToDash,
		"assigned":         order.SentToDash,
		"out_for_delivery": order.OutForDelivery,
		"rescheduled":      order.Rescheduled,
		"delivered":        order.Delivered,
		"customer_refused": order.ReturnedByCustomer,
		"returning":        order.ReturnPending,
		"returned":         order.ReturnedByCarrier,
	}
}

// Config holds the DASH endpoint coordinates.
type Config struct {
	BaseURL string
	APIKey  string
}

// Client talks to the DASH dispatch API. Safe for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a DASH client.
func NewClient(config Config) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Name identifies the carrier this client talks to.
func (c *Client) Name() order.Carrier {
	return order.CarrierDash
}

// MapStatus translates a raw DASH status into the canonical vocabulary.
func (c *Client) MapStatus(raw string) (order.Status, bool) {
	status, ok := statusTable()[raw]
	return status, ok
}

type dispatchRequest struct {
	Reference     string `json:"reference"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
	CODAmount     string `json:"cod_amount"`
}

type dispatchResponse struct {
	JobID string `json:"job_id"`
}

// Dispatch books the order with the in-house fleet and returns the job
// identifier used as the tracking code.
func (c *Client) Dispatch(ctx context.Context, o *order.Order) (string, error) {
	body := dispatchRequest{
		Reference:     o.Code(),
		CustomerName:  o.Customer().Name,
		CustomerPhone: o.Customer().Phone,
		Address:       o.Customer().Address,
		CODAmount:     o.CODAmount().StringFixed(2),
	}

	var resp dispatchResponse
	if err := c.doRequest(ctx, http.MethodPost, orderPath, body, &resp); err != nil {
		return "", err
	}
	if resp.JobID == "" {
		return "", errs.NewCarrierUnavailableError(string(order.CarrierDash),
			fmt.Errorf("dispatch response carried no job id"))
	}

	return resp.JobID, nil
}

type trackResponse struct {
	Status string `json:"status"`
}

// Track fetches the current raw status of a DASH job.
func (c *Client) Track(ctx context.Context, trackingCode string) (string, error) {
	var resp trackResponse
	if err := c.doRequest(ctx, http.MethodGet, orderPath+"/"+trackingCode+"/status", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

type hubResponse struct {
	Hubs []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		City string `json:"city"`
	} `json:"hubs"`
}

// Branches lists the fleet's delivery hubs.
func (c *Client) Branches(ctx context.Context) ([]ports.Branch, error) {
	var resp hubResponse
	if err := c.doRequest(ctx, http.MethodGet, hubsPath, nil, &resp); err != nil {
		return nil, err
	}

	branches := make([]ports.Branch, 0, len(resp.Hubs))
	for _, h := range resp.Hubs {
		branches = append(branches, ports.Branch{ID: h.ID, Name: h.Name, City: h.City})
	}
	return branches, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("dash: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("dash: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewCarrierUnavailableError(string(order.CarrierDash), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.NewCarrierUnavailableError(string(order.CarrierDash),
			fmt.Errorf("unexpected response status %d", resp.StatusCode))
	}

	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errs.NewCarrierUnavailableError(string(order.CarrierDash), err)
		}
	}

	return nil
}
