package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/eliasantony/food-fellas/bleve"
	"github.com/eliasantony/food-fellas/bolt"
	"github.com/eliasantony/food-fellas/gin"
	"github.com/eliasantony/food-fellas/index"
	"github.com/eliasantony/food-fellas/log"
	"github.com/eliasantony/food-fellas/notify"
	"github.com/eliasantony/food-fellas/recommend"
	"github.com/eliasantony/food-fellas/sentiment"
	"github.com/eliasantony/food-fellas/stats"
	"github.com/eliasantony/food-fellas/subscription"
	"github.com/eliasantony/food-fellas/trigger"
)

var env string

type Configuration struct {
	HTTP struct {
		Addr string `toml:"addr"`
	} `toml:"http"`
	Bolt struct {
		Store string `toml:"store"`
	} `toml:"bolt"`
	Bleve struct {
		Recipes string `toml:"recipes"`
		Users   string `toml:"users"`
	} `toml:"bleve"`
	Admin struct {
		APIKey string `toml:"api_key"`
	} `toml:"admin"`
	FCM struct {
		Endpoint  string `toml:"endpoint"`
		ServerKey string `toml:"server_key"`
	} `toml:"fcm"`
	Google struct {
		Credentials  string `toml:"credentials"`
		Package      string `toml:"package"`
		Subscription string `toml:"subscription"`
	} `toml:"google"`
}

func init() {
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "environment")
}

var RootCmd = cobra.Command{
	Use:   "foodfellas",
	Short: "FoodFellas backend server",
	Long:  "FoodFellas backend server",
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func serve() {
	// Load configuration
	cfgData, err := ioutil.ReadFile(fmt.Sprintf("configuration/config.%s.toml", env))
	if err != nil {
		fmt.Println("error reading configuration:", err)
		os.Exit(1)
	}

	var cfg Configuration
	if err := toml.Unmarshal(cfgData, &cfg); err != nil {
		fmt.Println("error unmarshalling configuration:", err)
		os.Exit(1)
	}

	logger := log.New(env)
	ctx := context.Background()

	// Stores
	driver := &bolt.Driver{}
	if err := driver.Open(cfg.Bolt.Store); err != nil {
		logger.Fatal("could not open db:", err)
	}
	defer driver.Close()

	recipes := &bolt.RecipeStore{Driver: driver}
	ratings := &bolt.RatingStore{Driver: driver}
	comments := &bolt.CommentStore{Driver: driver}
	users := &bolt.UserStore{Driver: driver}
	tags := &bolt.TagStore{Driver: driver}

	// Indexes
	recipeIndex, err := bleve.NewRecipeIndex(cfg.Bleve.Recipes)
	if err != nil {
		logger.Fatal("could not open recipe index:", err)
	}
	defer recipeIndex.Close()

	userIndex, err := bleve.NewUserIndex(cfg.Bleve.Users)
	if err != nil {
		logger.Fatal("could not open user index:", err)
	}
	defer userIndex.Close()

	// Triggers
	dispatcher := trigger.NewDispatcher(logger)
	statsService := stats.NewService(recipes, ratings, users, logger)
	statsService.Register(dispatcher)
	sentiment.NewService(comments).Register(dispatcher)
	index.NewPropagator(recipes, users, recipeIndex, userIndex, logger).Register(dispatcher)

	// Notifications
	fcm, err := notify.NewFCMClient(cfg.FCM.Endpoint, cfg.FCM.ServerKey)
	if err != nil {
		logger.Fatal("could not create fcm client:", err)
	}
	notifier := notify.NewService(fcm, users, logger)

	// Subscriptions
	verifier, err := subscription.NewPlayVerifier(ctx, cfg.Google.Credentials, cfg.Google.Package, cfg.Google.Subscription)
	if err != nil {
		logger.Fatal("could not create play verifier:", err)
	}
	subscriptions := subscription.NewService(users, verifier, logger)
	subscriptions.StartCron(ctx)

	// Recommendations
	recommender := recommend.NewService(users, recipes, notifier, logger)
	recommender.StartCron(ctx)

	// Admin
	backfill := index.NewBackfill(recipes, users, recipeIndex, userIndex, logger)
	admin := &gin.AdminHandler{
		APIKey:      cfg.Admin.APIKey,
		Search:      backfill,
		Aggregates:  statsService,
		Recommender: recommender,
		Logger:      logger,
	}

	// Start web server
	handler, err := gin.New(recipes, ratings, comments, users, tags, recipeIndex, dispatcher, notifier, subscriptions, admin, logger)
	if err != nil {
		logger.Fatal("could not create server:", err)
	}

	logger.Print("server started, listening on ", cfg.HTTP.Addr)
	logger.Fatal(http.ListenAndServe(cfg.HTTP.Addr, handler))
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
