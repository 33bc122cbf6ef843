package picnic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/basketbridge/backend/internal/domain"
)

// Client talks to a Picnic storefront API. Search results carry no brand and
// are never promotional; the scorer treats those as neutral facts.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a Picnic storefront client. token is the session
// credential, sent as x-picnic-auth when set.
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
	return domain.CatalogPicnic
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
		req.Header.Set("x-picnic-auth", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: picnic: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: picnic: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}
	return payload, nil
}

// Search queries the storefront and maps raw products to candidates.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	params := url.Values{}
	params.Add("query", query)
	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	if c.debug {
		log.Printf("[PICNIC] search %q limit=%d", query, limit)
	}

	payload, err := c.doRequest(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode picnic search response: %w", err)
	}

	products := result.Products
	if len(products) > limit {
		products = products[:limit]
	}

	candidates := make([]domain.Candidate, 0, len(products))
	for _, product := range products {
		candidates = append(candidates, mapProduct(product))
	}
	if c.debug {
		log.Printf("[PICNIC] %d candidates for %q", len(candidates), query)
	}
	return candidates, nil
}

// AddItems adds lines one by one; the storefront has no batch endpoint.
func (c *Client) AddItems(ctx context.Context, lines []domain.CartLine) error {
	for _, line := range lines {
		body, err := json.Marshal(map[string]any{
			"product_id": line.ID,
			"count":      line.Qty,
		})
		if err != nil {
			return fmt.Errorf("encode picnic cart line: %w", err)
		}
		if c.debug {
			log.Printf("[PICNIC] add %s x%d", line.ID, line.Qty)
		}
		if _, err := c.doRequest(ctx, http.MethodPost, c.baseURL+"/cart/add", bytes.NewReader(body)); err != nil {
			return err
		}
	}
	return nil
}

// FetchCart returns the current cart totals.
func (c *Client) FetchCart(ctx context.Context) (domain.CartSummary, error) {
	payload, err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/cart", nil)
	if err != nil {
		return domain.CartSummary{}, err
	}

	var cart cartResponse
	if err := json.Unmarshal(payload, &cart); err != nil {
		return domain.CartSummary{}, fmt.Errorf("decode picnic cart: %w", err)
	}

	count := len(cart.Items)
	if cart.ItemCount != nil {
		count = *cart.ItemCount
	}
	return domain.CartSummary{
		TotalRaw:  cart.TotalPrice,
		ItemCount: count,
	}, nil
}
