package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"

	"github.com/eliasantony/food-fellas/bolt"
	"github.com/eliasantony/food-fellas/errors"
)

var exportOut string

func init() {
	ExportCmd.Flags().StringVar(&exportOut, "out", "", "output file (defaults to <collection>-<id>.json)")
	RootCmd.AddCommand(&ExportCmd)
}

var ExportCmd = cobra.Command{
	Use:   "export <collection> <id>",
	Short: "Export a document and its sub-collections to a JSON file",
	Long:  "Export a document and its sub-collections to a JSON file",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			logger.Fatal("usage: export <collection> <id>")
		}
		collection, id := args[0], args[1]

		driver, closeDriver, err := createDriver()
		if err != nil {
			logger.Fatal(err)
		}
		defer closeDriver()

		var doc interface{}
		switch collection {
		case "recipes":
			doc, err = exportRecipe(driver, id)
		case "users":
			doc, err = exportUser(driver, id)
		default:
			logger.Fatalf("unknown collection %s (want recipes or users)", collection)
		}
		if err != nil {
			logger.Fatal(err)
		}

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			logger.Fatal("error marshalling document:", err)
		}

		out := exportOut
		if out == "" {
			out = fmt.Sprintf("%s-%s.json", collection, id)
		}
		if err := ioutil.WriteFile(out, data, 0644); err != nil {
			logger.Fatal("error writing file:", err)
		}
		logger.Print("exported to ", out)
	},
}

func exportRecipe(driver *bolt.Driver, id string) (interface{}, error) {
	recipes := &bolt.RecipeStore{Driver: driver}
	recipe, err := recipes.Get(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, errors.NotFound("recipe not found")
	}

	ratings, err := (&bolt.RatingStore{Driver: driver}).ByRecipe(id)
	if err != nil {
		return nil, err
	}
	comments, err := (&bolt.CommentStore{Driver: driver}).ByRecipe(id)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"recipe":   recipe,
		"ratings":  ratings,
		"comments": comments,
	}, nil
}

func exportUser(driver *bolt.Driver, id string) (interface{}, error) {
	users := &bolt.UserStore{Driver: driver}
	user, err := users.Get(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.NotFound("user not found")
	}

	followers, err := users.Followers(id)
	if err != nil {
		return nil, err
	}
	following, err := users.Following(id)
	if err != nil {
		return nil, err
	}
	interactions, err := users.Interactions(id)
	if err != nil {
		return nil, err
	}
	collection, err := users.CollectionRecipes(id)
	if err != nil {
		return nil, err
	}
	recommendations, err := users.Recommendations(id)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"user":            user,
		"followers":       followers,
		"following":       following,
		"interactions":    interactions,
		"collection":      collection,
		"recommendations": recommendations,
	}, nil
}
