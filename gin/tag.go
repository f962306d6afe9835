package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	foodfellas "github.com/eliasantony/food-fellas"
)

type TagHandler struct {
	Tags foodfellas.TagStore
}

func (h *TagHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/foodfellas/tags", h.List)
}

func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.Tags.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"data": tags,
	})
}
