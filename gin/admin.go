package gin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eliasantony/food-fellas/index"
	"github.com/eliasantony/food-fellas/log"
)

// SearchBackfill reindexes full collections into the search indexes.
type SearchBackfill interface {
	Recipes(ctx context.Context) (index.Report, error)
	Users(ctx context.Context) (index.Report, error)
}

// AggregateBackfill replays derived-field computation over the store.
type AggregateBackfill interface {
	BackfillAggregates(ctx context.Context) error
	BackfillUnits(ctx context.Context) error
}

// Recommender refreshes every user's recommendation list.
type Recommender interface {
	Run(ctx context.Context) error
}

// AdminHandler serves the maintenance endpoints. Every route is guarded by
// the X-API-Key header.
type AdminHandler struct {
	APIKey string

	Search      SearchBackfill
	Aggregates  AggregateBackfill
	Recommender Recommender

	Logger log.Logger
}

func (h *AdminHandler) RegisterRoutes(router *gin.Engine) {
	admin := router.Group("/foodfellas/admin", h.checkAPIKey)
	admin.POST("/backfill/search", h.BackfillSearch)
	admin.POST("/backfill/aggregates", h.BackfillAggregates)
	admin.POST("/backfill/units", h.BackfillUnits)
	admin.POST("/recommendations", h.RefreshRecommendations)
}

func (h *AdminHandler) checkAPIKey(c *gin.Context) {
	if h.APIKey == "" {
		h.Logger.Error("admin api key is not configured")
		c.AbortWithStatusJSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Server configuration error.",
		})
		return
	}

	if c.GetHeader("X-API-Key") != h.APIKey {
		c.AbortWithStatusJSON(http.StatusForbidden, map[string]interface{}{
			"error": "Unauthorized",
		})
		return
	}

	c.Next()
}

func (h *AdminHandler) BackfillSearch(c *gin.Context) {
	ctx := c.Request.Context()

	recipes, err := h.Search.Recipes(ctx)
	if err != nil {
		h.fail(c, "error backfilling recipes", err)
		return
	}

	users, err := h.Search.Users(ctx)
	if err != nil {
		h.fail(c, "error backfilling users", err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"message": "Backfilled recipes and users!",
			"recipes": recipes,
			"users":   users,
		},
	})
}

func (h *AdminHandler) BackfillAggregates(c *gin.Context) {
	if err := h.Aggregates.BackfillAggregates(c.Request.Context()); err != nil {
		h.fail(c, "error backfilling aggregates", err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": "Backfilled aggregates!",
	})
}

func (h *AdminHandler) BackfillUnits(c *gin.Context) {
	if err := h.Aggregates.BackfillUnits(c.Request.Context()); err != nil {
		h.fail(c, "error backfilling units", err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": "Backfilled units and servings!",
	})
}

func (h *AdminHandler) RefreshRecommendations(c *gin.Context) {
	if err := h.Recommender.Run(c.Request.Context()); err != nil {
		h.fail(c, "error refreshing recommendations", err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": "Refreshed recommendations!",
	})
}

// fail hides the failure detail from the caller, it only goes to the logs.
func (h *AdminHandler) fail(c *gin.Context, msg string, err error) {
	h.Logger.Errorf("%s: %v", msg, err)
	c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error": "Internal Server Error",
	})
}
