package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/basketbridge/backend/internal/domain"
	"github.com/basketbridge/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	matcher  *usecase.MatcherService
	cart     *usecase.CartService
	checkout *usecase.CheckoutService
	catalogs []domain.Catalog
}

// NewHandler creates a new HTTP handler
func NewHandler(
	matcher *usecase.MatcherService,
	cart *usecase.CartService,
	checkout *usecase.CheckoutService,
	catalogs []domain.Catalog,
) *Handler {
	return &Handler{
		matcher:  matcher,
		cart:     cart,
		checkout: checkout,
		catalogs: catalogs,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "basketbridge-backend",
		"version": "1.0.0",
	})
}

// matchRequest is the POST /match body.
type matchRequest struct {
	Items       []domain.ItemInput `json:"items" binding:"required"`
	NoCache     bool               `json:"no_cache"`
	SearchLimit int                `json:"search_limit"`
}

// MatchItems resolves a batch of free-text items against both catalogs.
func (h *Handler) MatchItems(c *gin.Context) {
	if h.matcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "matching service not configured"})
		return
	}

	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}

	items := make([]domain.Item, 0, len(req.Items))
	for _, input := range req.Items {
		items = append(items, input.Normalize())
	}

	report, err := h.matcher.MatchItems(c.Request.Context(), items, usecase.MatchOptions{
		NoCache:             req.NoCache,
		SearchLimitOverride: req.SearchLimit,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": "match failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// SearchBoth runs the same query against every catalog.
func (h *Handler) SearchBoth(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	results := make(map[string][]domain.Candidate, len(h.catalogs))
	for _, catalog := range h.catalogs {
		candidates, err := catalog.Search(c.Request.Context(), query, limit)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "search failed", "detail": err.Error()})
			return
		}
		results[catalog.ID()] = candidates
	}

	c.JSON(http.StatusOK, gin.H{"query": query, "results": results})
}

// cartAddRequest is the POST /cart/add body.
type cartAddRequest struct {
	Items       []domain.ItemInput `json:"items" binding:"required"`
	AutoMatch   bool               `json:"auto_match"`
	Confirm     bool               `json:"confirm"`
	DryRun      bool               `json:"dry_run"`
	NoCache     bool               `json:"no_cache"`
	SearchLimit int                `json:"search_limit"`
}

// AddToCarts plans and optionally applies cart additions. With auto_match the
// batch must fully resolve first; otherwise manual ids are required.
func (h *Handler) AddToCarts(c *gin.Context) {
	if h.cart == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cart service not configured"})
		return
	}

	var req cartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}

	items := make([]domain.Item, 0, len(req.Items))
	for _, input := range req.Items {
		items = append(items, input.Normalize())
	}

	var (
		planned map[string][]domain.CartLine
		skipped []usecase.SkippedItem
	)
	if req.AutoMatch {
		report, err := h.matcher.MatchItems(c.Request.Context(), items, usecase.MatchOptions{
			NoCache:             req.NoCache,
			SearchLimitOverride: req.SearchLimit,
		})
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, domain.ErrCatalogUnavailable) {
				status = http.StatusBadGateway
			}
			c.JSON(status, gin.H{"error": "match failed", "detail": err.Error()})
			return
		}
		if report.Summary.Unresolved > 0 {
			c.JSON(http.StatusConflict, gin.H{
				"error":            "unresolved matches remain",
				"summary":          report.Summary,
				"unresolved_items": report.UnresolvedItems,
			})
			return
		}
		planned = h.cart.PlanPurchases(report.ResolvedItems)
	} else {
		planned, skipped = h.cart.PlanManual(items)
	}

	result, err := h.cart.Apply(c.Request.Context(), planned, skipped, req.Confirm, req.DryRun)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConfirmationRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrCatalogUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "cart update failed", "detail": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart update failed", "detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// CompareCheckout compares both carts' totals.
func (h *Handler) CompareCheckout(c *gin.Context) {
	if h.checkout == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "checkout service not configured"})
		return
	}

	report, err := h.checkout.Compare(c.Request.Context(), c.Query("picnic_unit"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrCatalogUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "cart fetch failed", "detail": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "compare failed", "detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}
