package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const externalHTTPTimeout = 30 * time.Second

// Client talks to the BMS order API. Auth is the connect.sid session cookie
// lifted from a logged-in browser; there is no token endpoint.
type Client struct {
	http    *http.Client
	apiURL  string
	cookie  string
	storeID int
}

func NewClient(apiURL, cookie string, storeID int) *Client {
	return &Client{
		http:    &http.Client{Timeout: externalHTTPTimeout},
		apiURL:  apiURL,
		cookie:  cookie,
		storeID: storeID,
	}
}

// OrderListItem is one entry of POST /order/list; the detail endpoint is
// called per id afterwards.
type OrderListItem struct {
	ID   json.Number `json:"id"`
	Code string      `json:"code"`
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.AddCookie(&http.Cookie{Name: "connect.sid", Value: c.cookie})
	return c.http.Do(req)
}

// OrderList fetches the order ids of one store for a date range.
func (c *Client) OrderList(ctx context.Context, startDate, endDate string) ([]OrderListItem, error) {
	const op = "sync.client.OrderList"

	payload, err := json.Marshal(map[string]any{
		"storeIds":  []int{c.storeID},
		"startDate": startDate,
		"endDate":   endDate,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/order/list", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		// an expired cookie answers with a login redirect or 401
		body, _ := io.ReadAll(io.LimitReader(res.Body, 200))
		return nil, fmt.Errorf("%s: status %d: %s", op, res.StatusCode, body)
	}

	var list []OrderListItem
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// OrderDetail fetches the full detail document of one order. The shape is
// deeply nested and varies per order type, so it stays a raw map until the
// flatten step.
func (c *Client) OrderDetail(ctx context.Context, id string) (map[string]any, error) {
	const op = "sync.client.OrderDetail"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/order/%s/detail", c.apiURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: order %s: status %d", op, id, res.StatusCode)
	}

	var detail map[string]any
	if err := json.NewDecoder(res.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("%s: order %s: %w", op, id, err)
	}

	return detail, nil
}
