package appie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/basketbridge/backend/internal/domain"
)

// Client talks to an Albert Heijn product gateway. It implements both the
// catalog search and the cart capabilities. Calls are single attempts: a
// failure surfaces immediately, it is never retried here.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates an Albert Heijn gateway client. token is optional and
// sent as a bearer credential when set.
func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		token:       token,
		rateLimiter: rate.NewLimiter(rate.Limit(2), 5),
	}
}

// SetDebug toggles request logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// ID identifies this catalog.
func (c *Client) ID() string {
	return domain.CatalogAH
}

func (c *Client) doRequest(ctx context.Context, method, reqURL string, body io.Reader) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "BasketBridge/1.0")
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: ah: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ah: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}
	return payload, nil
}

// Search queries the product gateway and maps raw products to candidates.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	params := url.Values{}
	params.Add("query", query)
	params.Add("size", strconv.Itoa(limit))
	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	if c.debug {
		log.Printf("[APPIE] search %q limit=%d", query, limit)
	}

	payload, err := c.doRequest(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	var raw []ahProduct
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode ah search response: %w", err)
	}
	if len(raw) > limit {
		raw = raw[:limit]
	}

	candidates := make([]domain.Candidate, 0, len(raw))
	for _, product := range raw {
		candidates = append(candidates, mapProduct(product))
	}
	if c.debug {
		log.Printf("[APPIE] %d candidates for %q", len(candidates), query)
	}
	return candidates, nil
}

// AddItems submits one batch of order lines.
func (c *Client) AddItems(ctx context.Context, lines []domain.CartLine) error {
	batch := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		batch = append(batch, map[string]any{"id": line.ID, "qty": line.Qty})
	}
	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("encode ah batch: %w", err)
	}

	if c.debug {
		log.Printf("[APPIE] add %d order lines", len(lines))
	}
	_, err = c.doRequest(ctx, http.MethodPost, c.baseURL+"/order/items", bytes.NewReader(body))
	return err
}

// FetchCart returns the current order totals.
func (c *Client) FetchCart(ctx context.Context) (domain.CartSummary, error) {
	payload, err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/order", nil)
	if err != nil {
		return domain.CartSummary{}, err
	}

	var order ahOrder
	if err := json.Unmarshal(payload, &order); err != nil {
		return domain.CartSummary{}, fmt.Errorf("decode ah order: %w", err)
	}

	count := len(order.Items)
	if order.TotalCount != nil {
		count = *order.TotalCount
	}
	return domain.CartSummary{
		TotalRaw:    order.TotalPrice,
		DiscountRaw: order.TotalDiscount,
		ItemCount:   count,
	}, nil
}
