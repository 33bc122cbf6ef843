package appie

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basketbridge/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8181", "token-123")

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8181", client.baseURL)
	assert.Equal(t, "token-123", client.token)
	assert.Equal(t, domain.CatalogAH, client.ID())
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
}

func TestSearch(t *testing.T) {
	t.Run("successful search maps products", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "halfvolle melk", r.URL.Query().Get("query"))
			assert.Equal(t, "8", r.URL.Query().Get("size"))
			assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{
					"id": 123456,
					"title": "Halfvolle melk",
					"brand": "AH",
					"unitSize": "1 l",
					"price": {"now": 1.19, "was": 1.39},
					"isOrderable": true,
					"isBonus": true,
					"bonusMechanism": "2 voor 2.00"
				},
				{
					"id": 654321,
					"title": "Volle melk",
					"price": {"now": 1.29, "unitSize": "1 l"},
					"isAvailable": false
				}
			]`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "token-123")
		candidates, err := client.Search(context.Background(), "halfvolle melk", 8)

		require.NoError(t, err)
		require.Len(t, candidates, 2)

		first := candidates[0]
		assert.Equal(t, "123456", first.ID)
		assert.Equal(t, "Halfvolle melk", first.Name)
		assert.Equal(t, "AH", first.Brand)
		assert.Equal(t, "1 l", first.UnitSize)
		require.NotNil(t, first.Available)
		assert.True(t, *first.Available)
		assert.True(t, first.IsBonus)
		assert.Equal(t, "2 voor 2.00", first.BonusMechanism)
		require.NotNil(t, first.PriceNow)
		assert.Equal(t, 1.19, *first.PriceNow)

		// No top-level unitSize: falls back to the price block. Availability
		// falls back to isAvailable when isOrderable is absent.
		second := candidates[1]
		assert.Equal(t, "1 l", second.UnitSize)
		require.NotNil(t, second.Available)
		assert.False(t, *second.Available)
	})

	t.Run("truncates to the requested limit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id": 1, "title": "a"}, {"id": 2, "title": "b"}, {"id": 3, "title": "c"}]`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		candidates, err := client.Search(context.Background(), "melk", 2)

		require.NoError(t, err)
		assert.Len(t, candidates, 2)
	})

	t.Run("no token omits authorization header", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		_, err := client.Search(context.Background(), "melk", 8)
		require.NoError(t, err)
	})

	t.Run("server error surfaces as catalog unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		_, err := client.Search(context.Background(), "melk", 8)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})

	t.Run("invalid json is a decode error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		_, err := client.Search(context.Background(), "melk", 8)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode ah search response")
	})
}

func TestAddItems(t *testing.T) {
	var received []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/order/items", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	err := client.AddItems(context.Background(), []domain.CartLine{
		{ID: "123", Qty: 2, Name: "melk"},
		{ID: "456", Qty: 1, Name: "brood"},
	})

	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, "123", received[0]["id"])
	assert.Equal(t, float64(2), received[0]["qty"])
}

func TestFetchCart(t *testing.T) {
	t.Run("uses total count when present", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/order", r.URL.Path)
			w.Write([]byte(`{"totalPrice": 15.5, "totalDiscount": 1.25, "totalCount": 7, "items": [{}, {}]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		summary, err := client.FetchCart(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 15.5, summary.TotalRaw)
		assert.Equal(t, 1.25, summary.DiscountRaw)
		assert.Equal(t, 7, summary.ItemCount)
	})

	t.Run("falls back to item count", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"totalPrice": "EUR 12,34", "items": [{}, {}, {}]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		summary, err := client.FetchCart(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "EUR 12,34", summary.TotalRaw)
		assert.Equal(t, 3, summary.ItemCount)
	})
}
