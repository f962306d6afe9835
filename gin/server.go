package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/etl"
	"github.com/eliasantony/food-fellas/log"
	"github.com/eliasantony/food-fellas/notify"
	"github.com/eliasantony/food-fellas/subscription"
	"github.com/eliasantony/food-fellas/trigger"
)

func New(
	recipes foodfellas.RecipeStore,
	ratings foodfellas.RatingStore,
	comments foodfellas.CommentStore,
	users foodfellas.UserStore,
	tags foodfellas.TagStore,
	recipeIndex foodfellas.RecipeIndex,
	dispatcher *trigger.Dispatcher,
	notifier *notify.Service,
	subscriptions *subscription.Service,
	admin *AdminHandler,
	logger log.Logger,
) (http.Handler, error) {
	router := gin.Default()

	// CORS
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept-Language, Authorization, Content-Type, X-API-Key")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
		}
		c.Next()
	})

	// Unknown route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"message": "Page not found"})
	})

	// Ping
	router.GET("/foodfellas/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"data": "ok"})
	})

	// Recipes
	recipeHandler := RecipeHandler{
		Recipes:    recipes,
		Ratings:    ratings,
		Comments:   comments,
		Index:      recipeIndex,
		Dispatcher: dispatcher,
		Notifier:   notifier,
		Extractor:  etl.Extractor{},
	}
	recipeHandler.RegisterRoutes(router)

	// Users
	userHandler := UserHandler{
		Users:      users,
		Dispatcher: dispatcher,
		Notifier:   notifier,
	}
	userHandler.RegisterRoutes(router)

	// Tags
	tagHandler := TagHandler{Tags: tags}
	tagHandler.RegisterRoutes(router)

	// Admin
	admin.RegisterRoutes(router)

	// Apple subscription webhook, served by the go-kit transport
	subscription.RegisterHTTPRoutes(kitRouter{engine: router}, subscriptions)

	return router, nil
}

// kitRouter mounts go-kit http handlers on the gin engine.
type kitRouter struct {
	engine *gin.Engine
}

func (r kitRouter) RegisterHandler(path, method string, f http.Handler) {
	r.engine.Handle(method, path, gin.WrapH(f))
}
