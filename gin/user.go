package gin

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/notify"
	"github.com/eliasantony/food-fellas/trigger"
)

type UserHandler struct {
	Users foodfellas.UserStore

	Dispatcher *trigger.Dispatcher
	Notifier   *notify.Service
}

func (h *UserHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/foodfellas/users/:id", h.Get)
	router.PUT("/foodfellas/users/:id", h.Put)

	router.POST("/foodfellas/users/:id/follow", h.Follow)
	router.GET("/foodfellas/users/:id/recommendations", h.Recommendations)
	router.POST("/foodfellas/users/:id/interactions", h.AddInteraction)
	router.POST("/foodfellas/users/:id/collection", h.SaveToCollection)
}

func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")

	user, err := h.Users.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	} else if user == nil {
		c.JSON(http.StatusNotFound, map[string]interface{}{
			"error": fmt.Sprintf("User %s not found", id),
		})
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": user,
	})
}

func (h *UserHandler) Put(c *gin.Context) {
	id := c.Param("id")

	before, err := h.Users.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	var user foodfellas.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	user.ID = id

	// Same ownership rule as on recipes: the aggregate counters and the
	// subscription flag are maintained server side, a profile PUT must not
	// reset them.
	if before != nil {
		user.RecipeCount = before.RecipeCount
		user.AverageRating = before.AverageRating
		user.TotalReviews = before.TotalReviews
		user.Subscribed = before.Subscribed
	}

	if err := h.Users.Upsert(&user); err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	beforeSnap := foodfellas.Deleted
	if before != nil {
		beforeSnap = foodfellas.SnapshotOf(before)
	}
	h.Dispatcher.Dispatch(c.Request.Context(), "users/"+id, beforeSnap, foodfellas.SnapshotOf(user))

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": user,
	})
}

func (h *UserHandler) Follow(c *gin.Context) {
	userID := c.Param("id")

	var body struct {
		FollowerUID string `json:"followerUid"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if body.FollowerUID == "" {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "field followerUid should not be empty",
		})
		return
	}

	follower, err := h.Users.Get(body.FollowerUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	} else if follower == nil {
		c.JSON(http.StatusNotFound, map[string]interface{}{
			"error": fmt.Sprintf("User %s not found", body.FollowerUID),
		})
		return
	}

	if err := h.Users.Follow(userID, body.FollowerUID); err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	h.Notifier.NewFollower(c.Request.Context(), userID, follower.DisplayName, follower.ID)

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": "ok",
	})
}

func (h *UserHandler) Recommendations(c *gin.Context) {
	recs, err := h.Users.Recommendations(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": recs,
	})
}

func (h *UserHandler) AddInteraction(c *gin.Context) {
	userID := c.Param("id")

	var body struct {
		RecipeID string `json:"recipeId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if body.RecipeID == "" {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "field recipeId should not be empty",
		})
		return
	}

	if err := h.Users.AddInteraction(userID, body.RecipeID); err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": "ok",
	})
}

func (h *UserHandler) SaveToCollection(c *gin.Context) {
	userID := c.Param("id")

	var body struct {
		RecipeID string `json:"recipeId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if body.RecipeID == "" {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "field recipeId should not be empty",
		})
		return
	}

	if err := h.Users.SaveToCollection(userID, body.RecipeID); err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": "ok",
	})
}
