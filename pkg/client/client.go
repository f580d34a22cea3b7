// Package client is the typed HTTP client the desktop front end uses to talk
// to the inventory service. Transport failures surface as DEPENDENCY_ERROR
// so the GUI can show "service unavailable" instead of crashing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expirytracker/expirytracker-backend/internal/consumable"
	"github.com/expirytracker/expirytracker-backend/pkg/enums"
	pkgerrors "github.com/expirytracker/expirytracker-backend/pkg/errors"
	"github.com/expirytracker/expirytracker-backend/pkg/types"
)

// Client calls the inventory service endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithHTTPClient builds a client with a caller-supplied http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	c := New(baseURL)
	if httpClient != nil {
		c.http = httpClient
	}
	return c
}

var listPaths = map[consumable.Filter]string{
	consumable.FilterAll:          "/listAll",
	consumable.FilterExpired:      "/listExpired",
	consumable.FilterNotExpired:   "/listNonExpired",
	consumable.FilterExpiringSoon: "/listExpiringIn7Days",
}

// Ping reports whether the service answers its liveness endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/ping", nil)
	return err
}

// List fetches the filtered item sequence for the criterion.
func (c *Client) List(ctx context.Context, criterion consumable.Filter) ([]consumable.Item, error) {
	path, ok := listPaths[criterion]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown list criterion %q", criterion))
	}
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

// Add creates an item of the given kind and returns the updated full list.
func (c *Client) Add(ctx context.Context, kind enums.Kind, name, notes string, price, matter float64, expiry time.Time) ([]consumable.Item, error) {
	payload := map[string]any{
		"name":   name,
		"notes":  notes,
		"price":  price,
		"matter": matter,
		"expiry": expiry.Format("2006-01-02T15:04:05"),
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding add request: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/addItem/"+kind.String(), bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

// Remove deletes an item by id and returns the updated full list.
func (c *Client) Remove(ctx context.Context, id uuid.UUID) ([]consumable.Item, error) {
	body, err := c.do(ctx, http.MethodPost, "/removeItem/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

// Exit asks the service to flush the inventory to disk.
func (c *Client) Exit(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/exit", nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "service unavailable")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, errorFromResponse(resp.StatusCode, data)
	}
	return data, nil
}

func errorFromResponse(status int, body []byte) error {
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Code != "" {
		return pkgerrors.New(pkgerrors.Code(envelope.Error.Code), envelope.Error.Message)
	}
	return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("service returned status %d", status))
}

func decodeList(body []byte) ([]consumable.Item, error) {
	items, err := consumable.DecodeItems(body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "undecodable response payload")
	}
	return items, nil
}
