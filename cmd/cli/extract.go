package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eliasantony/food-fellas/bolt"
	"github.com/eliasantony/food-fellas/etl"
	"github.com/eliasantony/food-fellas/stats"
)

var (
	extractSave   bool
	extractAuthor string
)

func init() {
	ParseCmd.Flags().BoolVar(&extractSave, "save", false, "store the extracted recipe")
	ParseCmd.Flags().StringVar(&extractAuthor, "author", "", "author id for the stored recipe")
	RootCmd.AddCommand(&ParseCmd)
}

var ParseCmd = cobra.Command{
	Use:   "parse <url>",
	Short: "Extract a recipe from a web page",
	Long:  "Extract a recipe from a web page's JSON-LD metadata",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			logger.Fatal("usage: parse <url>")
		}

		recipe, err := etl.Extractor{}.ExtractURL(args[0])
		if err != nil {
			logger.Fatal(err)
		}

		if extractSave {
			recipe.ID = uuid.New().String()
			recipe.AuthorID = extractAuthor

			driver, closeDriver, err := createDriver()
			if err != nil {
				logger.Fatal(err)
			}
			defer closeDriver()

			recipes := &bolt.RecipeStore{Driver: driver}
			if err := recipes.Upsert(recipe); err != nil {
				logger.Fatal("error storing recipe:", err)
			}

			service := stats.NewService(
				recipes,
				&bolt.RatingStore{Driver: driver},
				&bolt.UserStore{Driver: driver},
				logger,
			)
			if err := service.DeriveRecipeFields(cmd.Context(), recipe.ID); err != nil {
				logger.Fatal("error deriving recipe fields:", err)
			}
			logger.Print("stored recipe ", recipe.ID)
		}

		data, err := json.MarshalIndent(recipe, "", "  ")
		if err != nil {
			logger.Fatal("error marshalling recipe:", err)
		}
		fmt.Println(string(data))
	},
}
