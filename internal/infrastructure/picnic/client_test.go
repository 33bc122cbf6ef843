package picnic

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
	client := NewClient("http://localhost:8182", "session-abc")

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8182", client.baseURL)
	assert.Equal(t, "session-abc", client.token)
	assert.Equal(t, domain.CatalogPicnic, client.ID())
	assert.NotNil(t, client.rateLimiter)
}

func TestSearch(t *testing.T) {
	t.Run("successful search maps products", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "halfvolle melk", r.URL.Query().Get("query"))
			assert.Equal(t, "session-abc", r.Header.Get("x-picnic-auth"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"products": [
				{"id": "p1", "name": "Halfvolle melk", "unit": "1 liter", "available": true, "price": 119},
				{"id": "p2", "name": "Volle melk", "unit": "1 liter"}
			]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "session-abc")
		candidates, err := client.Search(context.Background(), "halfvolle melk", 8)

		require.NoError(t, err)
		require.Len(t, candidates, 2)

		first := candidates[0]
		assert.Equal(t, "p1", first.ID)
		assert.Equal(t, "Halfvolle melk", first.Name)
		assert.Equal(t, "1 liter", first.UnitSize)
		require.NotNil(t, first.Available)
		assert.True(t, *first.Available)
		require.NotNil(t, first.PriceNow)
		assert.Equal(t, 1.19, *first.PriceNow)
		assert.Empty(t, first.Brand)
		assert.False(t, first.IsBonus)

		// Missing price and availability stay nil.
		second := candidates[1]
		assert.Nil(t, second.Available)
		assert.Nil(t, second.PriceNow)
	})

	t.Run("truncates to the requested limit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"products": [{"id": "p1"}, {"id": "p2"}, {"id": "p3"}]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		candidates, err := client.Search(context.Background(), "melk", 2)

		require.NoError(t, err)
		assert.Len(t, candidates, 2)
	})

	t.Run("server error surfaces as catalog unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewClient(server.URL, "expired")
		_, err := client.Search(context.Background(), "melk", 8)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})
}

func TestAddItems(t *testing.T) {
	t.Run("posts one request per line", func(t *testing.T) {
		var received []map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/cart/add", r.URL.Path)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			received = append(received, body)
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		err := client.AddItems(context.Background(), []domain.CartLine{
			{ID: "p1", Qty: 2},
			{ID: "p2", Qty: 1},
		})

		require.NoError(t, err)
		require.Len(t, received, 2)
		assert.Equal(t, "p1", received[0]["product_id"])
		assert.Equal(t, float64(2), received[0]["count"])
		assert.Equal(t, "p2", received[1]["product_id"])
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		err := client.AddItems(context.Background(), []domain.CartLine{
			{ID: "p1", Qty: 1},
			{ID: "p2", Qty: 1},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
		assert.Equal(t, 1, calls)
	})
}

func TestFetchCart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart", r.URL.Path)
		w.Write([]byte(`{"totalPrice": 1234, "itemCount": 5, "items": [{}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	summary, err := client.FetchCart(context.Background())

	require.NoError(t, err)
	assert.Equal(t, float64(1234), summary.TotalRaw)
	assert.Equal(t, 5, summary.ItemCount)
}
