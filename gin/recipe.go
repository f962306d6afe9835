package gin

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
	"github.com/eliasantony/food-fellas/etl"
	"github.com/eliasantony/food-fellas/notify"
	"github.com/eliasantony/food-fellas/trigger"
)

type RecipeHandler struct {
	Recipes  foodfellas.RecipeStore
	Ratings  foodfellas.RatingStore
	Comments foodfellas.CommentStore
	Index    foodfellas.RecipeIndex

	Dispatcher *trigger.Dispatcher
	Notifier   *notify.Service
	Extractor  etl.Extractor
}

func (h *RecipeHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/foodfellas/recipes", h.Search)
	router.POST("/foodfellas/recipes", h.Insert)
	router.GET("/foodfellas/recipes/:id", h.Get)
	router.PUT("/foodfellas/recipes/:id", h.Update)
	router.DELETE("/foodfellas/recipes/:id", h.Delete)

	router.PUT("/foodfellas/recipes/:id/ratings/:userId", h.PutRating)
	router.DELETE("/foodfellas/recipes/:id/ratings/:userId", h.DeleteRating)

	router.GET("/foodfellas/recipes/:id/comments", h.ListComments)
	router.POST("/foodfellas/recipes/:id/comments", h.InsertComment)

	router.POST("/foodfellas/extract", h.Extract)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id := c.Param("id")

	recipe, err := h.Recipes.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	} else if recipe == nil {
		c.JSON(http.StatusNotFound, map[string]interface{}{
			"error": fmt.Sprintf("Recipe %s not found", id),
		})
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": recipe,
	})
}

func (h *RecipeHandler) Insert(c *gin.Context) {
	var recipe foodfellas.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if recipe.ID != "" {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "field id should be empty",
		})
		return
	}
	recipe.ID = uuid.New().String()

	if err := h.Recipes.Upsert(&recipe); err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	h.Dispatcher.Dispatch(ctx, "recipes/"+recipe.ID, foodfellas.Deleted, foodfellas.SnapshotOf(recipe))
	h.Notifier.NewRecipe(ctx, recipe.AuthorID, recipe.ID)

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": recipe,
	})
}

func (h *RecipeHandler) Update(c *gin.Context) {
	id := c.Param("id")

	before, err := h.Recipes.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	} else if before == nil {
		c.JSON(http.StatusNotFound, map[string]interface{}{
			"error": fmt.Sprintf("Recipe %s not found", id),
		})
		return
	}

	var recipe foodfellas.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	recipe.ID = id

	// The rating aggregate belongs to the stats service, not the client: a
	// PUT replaces the document, and the rating documents it is computed
	// from are still there.
	recipe.AverageRating = before.AverageRating
	recipe.RatingsCount = before.RatingsCount
	recipe.RatingCounts = before.RatingCounts

	if err := h.Recipes.Upsert(&recipe); err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	h.Dispatcher.Dispatch(c.Request.Context(), "recipes/"+id, foodfellas.SnapshotOf(before), foodfellas.SnapshotOf(recipe))

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": recipe,
	})
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	before, err := h.Recipes.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	} else if before == nil {
		c.JSON(http.StatusNotFound, map[string]interface{}{
			"error": fmt.Sprintf("Recipe %s not found", id),
		})
		return
	}

	if err := h.Recipes.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	h.Dispatcher.Dispatch(c.Request.Context(), "recipes/"+id, foodfellas.SnapshotOf(before), foodfellas.Deleted)

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": "ok",
	})
}

func (h *RecipeHandler) Search(c *gin.Context) {
	search := foodfellas.RecipeSearch{
		Q:      c.Query("q"),
		Tags:   c.QueryArray("tags"),
		Limit:  20,
		Offset: 0,
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			c.JSON(http.StatusBadRequest, map[string]interface{}{
				"error": "limit should be an integer",
			})
			return
		}
		search.Limit = n
	}
	if offset := c.Query("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil {
			c.JSON(http.StatusBadRequest, map[string]interface{}{
				"error": "offset should be an integer",
			})
			return
		}
		search.Offset = n
	}

	results, err := h.Index.Search(search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	recipes := make([]*foodfellas.Recipe, 0, len(results.IDs))
	for _, id := range results.IDs {
		recipe, err := h.Recipes.Get(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"error": err.Error(),
			})
			return
		}
		// The index can be briefly ahead of the store.
		if recipe == nil {
			continue
		}
		recipes = append(recipes, recipe)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"data":  recipes,
		"total": results.Total,
	})
}

func (h *RecipeHandler) PutRating(c *gin.Context) {
	recipeID := c.Param("id")
	userID := c.Param("userId")

	var body struct {
		Rating int `json:"rating"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if body.Rating < 1 || body.Rating > 5 {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "rating should be between 1 and 5",
		})
		return
	}

	recipe, err := h.Recipes.Get(recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	} else if recipe == nil {
		c.JSON(http.StatusNotFound, map[string]interface{}{
			"error": fmt.Sprintf("Recipe %s not found", recipeID),
		})
		return
	}

	before, err := h.Ratings.Get(recipeID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	rating := foodfellas.Rating{RecipeID: recipeID, UserID: userID, Rating: body.Rating}
	if err := h.Ratings.Put(&rating); err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	beforeSnap := foodfellas.Deleted
	if before != nil {
		beforeSnap = foodfellas.SnapshotOf(before)
	}
	h.Dispatcher.Dispatch(c.Request.Context(), "recipes/"+recipeID+"/ratings/"+userID, beforeSnap, foodfellas.SnapshotOf(rating))

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": rating,
	})
}

func (h *RecipeHandler) DeleteRating(c *gin.Context) {
	recipeID := c.Param("id")
	userID := c.Param("userId")

	before, err := h.Ratings.Get(recipeID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	} else if before == nil {
		c.JSON(http.StatusNotFound, map[string]interface{}{
			"error": fmt.Sprintf("No rating by %s on recipe %s", userID, recipeID),
		})
		return
	}

	if err := h.Ratings.Delete(recipeID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	h.Dispatcher.Dispatch(c.Request.Context(), "recipes/"+recipeID+"/ratings/"+userID, foodfellas.SnapshotOf(before), foodfellas.Deleted)

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": "ok",
	})
}

func (h *RecipeHandler) ListComments(c *gin.Context) {
	comments, err := h.Comments.ByRecipe(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": comments,
	})
}

func (h *RecipeHandler) InsertComment(c *gin.Context) {
	recipeID := c.Param("id")

	var comment foodfellas.Comment
	if err := c.ShouldBindJSON(&comment); err != nil {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if strings.TrimSpace(comment.Comment) == "" {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "field comment should not be empty",
		})
		return
	}

	recipe, err := h.Recipes.Get(recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	} else if recipe == nil {
		c.JSON(http.StatusNotFound, map[string]interface{}{
			"error": fmt.Sprintf("Recipe %s not found", recipeID),
		})
		return
	}

	comment.ID = uuid.New().String()
	comment.RecipeID = recipeID
	if err := h.Comments.Put(&comment); err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	h.Dispatcher.Dispatch(ctx, "recipes/"+recipeID+"/comments/"+comment.ID, foodfellas.Deleted, foodfellas.SnapshotOf(comment))
	h.Notifier.NewComment(ctx, recipe.AuthorID, comment.AuthorName, recipeID, comment.ID)

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": comment,
	})
}

func (h *RecipeHandler) Extract(c *gin.Context) {
	var body struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if body.URL == "" {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "field url should not be empty",
		})
		return
	}

	recipe, err := h.Extractor.ExtractURL(body.URL)
	if err != nil {
		c.JSON(errors.Code(err), map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": recipe,
	})
}
