package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/eliasantony/food-fellas/bolt"
	"github.com/eliasantony/food-fellas/index"
	"github.com/eliasantony/food-fellas/stats"
)

func init() {
	BackfillCmd.AddCommand(&BackfillSearchCmd)
	BackfillCmd.AddCommand(&BackfillAggregatesCmd)
	BackfillCmd.AddCommand(&BackfillUnitsCmd)
	BackfillCmd.AddCommand(&BackfillNotificationsCmd)
	RootCmd.AddCommand(&BackfillCmd)
}

var BackfillCmd = cobra.Command{
	Use:   "backfill",
	Short: "Rebuild derived data from the source collections",
	Long:  "Rebuild derived data from the source collections",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var BackfillSearchCmd = cobra.Command{
	Use:   "search",
	Short: "Reindex all recipes and users",
	Long:  "Reindex all recipes and users",
	Run: func(cmd *cobra.Command, args []string) {
		driver, closeDriver, err := createDriver()
		if err != nil {
			logger.Fatal(err)
		}
		defer closeDriver()

		recipeIndex, userIndex, closeIndexes, err := createIndexes()
		if err != nil {
			logger.Fatal(err)
		}
		defer closeIndexes()

		backfill := index.NewBackfill(
			&bolt.RecipeStore{Driver: driver},
			&bolt.UserStore{Driver: driver},
			recipeIndex,
			userIndex,
			logger,
		)

		ctx := context.Background()
		report, err := backfill.Recipes(ctx)
		if err != nil {
			logger.Fatal("error reindexing recipes:", err)
		}
		logger.Printf("recipes: %d indexed, %d failed", report.Indexed, report.Failed)

		report, err = backfill.Users(ctx)
		if err != nil {
			logger.Fatal("error reindexing users:", err)
		}
		logger.Printf("users: %d indexed, %d failed", report.Indexed, report.Failed)
	},
}

var BackfillAggregatesCmd = cobra.Command{
	Use:   "aggregates",
	Short: "Recompute all recipe and user aggregates",
	Long:  "Recompute all recipe and user aggregates",
	Run: func(cmd *cobra.Command, args []string) {
		service, cleanup, err := createStatsService()
		if err != nil {
			logger.Fatal(err)
		}
		defer cleanup()

		if err := service.BackfillAggregates(context.Background()); err != nil {
			logger.Fatal("error backfilling aggregates:", err)
		}
		logger.Print("aggregates backfilled")
	},
}

var BackfillUnitsCmd = cobra.Command{
	Use:   "units",
	Short: "Fill missing ingredient units and servings",
	Long:  "Fill missing ingredient units and servings",
	Run: func(cmd *cobra.Command, args []string) {
		service, cleanup, err := createStatsService()
		if err != nil {
			logger.Fatal(err)
		}
		defer cleanup()

		if err := service.BackfillUnits(context.Background()); err != nil {
			logger.Fatal("error backfilling units:", err)
		}
		logger.Print("units backfilled")
	},
}

var BackfillNotificationsCmd = cobra.Command{
	Use:   "notifications",
	Short: "Enable all notification preferences for every user",
	Long:  "Enable all notification preferences for every user",
	Run: func(cmd *cobra.Command, args []string) {
		service, cleanup, err := createStatsService()
		if err != nil {
			logger.Fatal(err)
		}
		defer cleanup()

		if err := service.BackfillNotifications(context.Background()); err != nil {
			logger.Fatal("error backfilling notifications:", err)
		}
		logger.Print("notification preferences backfilled")
	},
}

func createStatsService() (*stats.Service, func(), error) {
	driver, closeDriver, err := createDriver()
	if err != nil {
		return nil, func() {}, err
	}

	service := stats.NewService(
		&bolt.RecipeStore{Driver: driver},
		&bolt.RatingStore{Driver: driver},
		&bolt.UserStore{Driver: driver},
		logger,
	)
	return service, closeDriver, nil
}
