package main

import (
	"github.com/spf13/cobra"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/bolt"
)

func init() {
	RootCmd.AddCommand(&SeedTagsCmd)
}

var SeedTagsCmd = cobra.Command{
	Use:   "seed-tags",
	Short: "Populate the tag catalogue",
	Long:  "Populate the tag catalogue",
	Run: func(cmd *cobra.Command, args []string) {
		driver, closeDriver, err := createDriver()
		if err != nil {
			logger.Fatal(err)
		}
		defer closeDriver()

		store := &bolt.TagStore{Driver: driver}
		for _, tag := range tagCatalogue {
			if err := store.Upsert(tag); err != nil {
				logger.Fatalf("error seeding tag %s: %v", tag.Name, err)
			}
		}
		logger.Printf("seeded %d tags", len(tagCatalogue))
	},
}

var tagCatalogue = []foodfellas.TagRef{
	{Name: "Breakfast", Category: "Meal Types", Icon: "🍳"},
	{Name: "Lunch", Category: "Meal Types", Icon: "🥪"},
	{Name: "Dinner", Category: "Meal Types", Icon: "🍽️"},
	{Name: "Snack", Category: "Meal Types", Icon: "🍿"},
	{Name: "Dessert", Category: "Meal Types", Icon: "🍰"},
	{Name: "Appetizer", Category: "Meal Types", Icon: "🥟"},
	{Name: "Beverage", Category: "Meal Types", Icon: "☕️"},
	{Name: "Brunch", Category: "Meal Types", Icon: "🥞"},
	{Name: "Side Dish", Category: "Meal Types", Icon: "🍟"},
	{Name: "Soup", Category: "Meal Types", Icon: "🍲"},
	{Name: "Salad", Category: "Meal Types", Icon: "🥗"},
	{Name: "Under 15 minutes", Category: "Cooking Time", Icon: "⏱️"},
	{Name: "Under 30 minutes", Category: "Cooking Time", Icon: "⏱️"},
	{Name: "Under 1 hour", Category: "Cooking Time", Icon: "⏱️"},
	{Name: "Over 1 hour", Category: "Cooking Time", Icon: "⏳"},
	{Name: "Slow Cook", Category: "Cooking Time", Icon: "🐢"},
	{Name: "Quick & Easy", Category: "Cooking Time", Icon: "⚡️"},
	{Name: "Easy", Category: "Difficulty Levels", Icon: "🙂"},
	{Name: "Medium", Category: "Difficulty Levels", Icon: "😐"},
	{Name: "Hard", Category: "Difficulty Levels", Icon: "😅"},
	{Name: "Beginner Friendly", Category: "Difficulty Levels", Icon: "🥄"},
	{Name: "Intermediate", Category: "Difficulty Levels", Icon: "🍳"},
	{Name: "Expert", Category: "Difficulty Levels", Icon: "👩‍🍳"},
	{Name: "Vegetarian", Category: "Dietary Preferences", Icon: "🥕"},
	{Name: "Vegan", Category: "Dietary Preferences", Icon: "🌱"},
	{Name: "Gluten-Free", Category: "Dietary Preferences", Icon: "🚫🍞"},
	{Name: "Dairy-Free", Category: "Dietary Preferences", Icon: "🥛❌"},
	{Name: "Nut-Free", Category: "Dietary Preferences", Icon: "🥜❌"},
	{Name: "Halal", Category: "Dietary Preferences", Icon: "🕌"},
	{Name: "Kosher", Category: "Dietary Preferences", Icon: "✡️"},
	{Name: "Paleo", Category: "Dietary Preferences", Icon: "🍖"},
	{Name: "Keto", Category: "Dietary Preferences", Icon: "🥩"},
	{Name: "Pescatarian", Category: "Dietary Preferences", Icon: "🐟"},
	{Name: "Low-Carb", Category: "Dietary Preferences", Icon: "🥦"},
	{Name: "Low-Fat", Category: "Dietary Preferences", Icon: "🍏"},
	{Name: "High-Protein", Category: "Dietary Preferences", Icon: "🍗"},
	{Name: "Sugar-Free", Category: "Dietary Preferences", Icon: "🍬❌"},
	{Name: "Italian", Category: "Cuisines", Icon: "🍕"},
	{Name: "Mexican", Category: "Cuisines", Icon: "🌮"},
	{Name: "Chinese", Category: "Cuisines", Icon: "🥡"},
	{Name: "Indian", Category: "Cuisines", Icon: "🍛"},
	{Name: "Japanese", Category: "Cuisines", Icon: "🍣"},
	{Name: "Mediterranean", Category: "Cuisines", Icon: "🥙"},
	{Name: "American", Category: "Cuisines", Icon: "🍔"},
	{Name: "Thai", Category: "Cuisines", Icon: "🍜"},
	{Name: "French", Category: "Cuisines", Icon: "🥐"},
	{Name: "Greek", Category: "Cuisines", Icon: "🥗"},
	{Name: "Korean", Category: "Cuisines", Icon: "🍱"},
	{Name: "Vietnamese", Category: "Cuisines", Icon: "🍜"},
	{Name: "Spanish", Category: "Cuisines", Icon: "🥘"},
	{Name: "Middle Eastern", Category: "Cuisines", Icon: "🥙"},
	{Name: "Caribbean", Category: "Cuisines", Icon: "🍹"},
	{Name: "African", Category: "Cuisines", Icon: "🍲"},
	{Name: "German", Category: "Cuisines", Icon: "🥨"},
	{Name: "Brazilian", Category: "Cuisines", Icon: "🍖"},
	{Name: "Peruvian", Category: "Cuisines", Icon: "🍤"},
	{Name: "Turkish", Category: "Cuisines", Icon: "🍢"},
	{Name: "Other", Category: "Cuisines", Icon: "🌍"},
	{Name: "Grilling", Category: "Cooking Methods", Icon: "🔥"},
	{Name: "Baking", Category: "Cooking Methods", Icon: "🧁"},
	{Name: "Stir-Frying", Category: "Cooking Methods", Icon: "🍳"},
	{Name: "Steaming", Category: "Cooking Methods", Icon: "♨️"},
	{Name: "Roasting", Category: "Cooking Methods", Icon: "🍖"},
	{Name: "Slow Cooking", Category: "Cooking Methods", Icon: "🐢"},
	{Name: "Raw", Category: "Cooking Methods", Icon: "🥗"},
	{Name: "Frying", Category: "Cooking Methods", Icon: "🍤"},
	{Name: "Pressure Cooking", Category: "Cooking Methods", Icon: "🍲"},
	{Name: "No-Cook", Category: "Cooking Methods", Icon: "❄️"},
	{Name: "Party", Category: "Occasions", Icon: "🎉"},
	{Name: "Picnic", Category: "Occasions", Icon: "🧺"},
	{Name: "Holiday", Category: "Occasions", Icon: "🎄"},
	{Name: "Casual", Category: "Occasions", Icon: "👕"},
	{Name: "Formal", Category: "Occasions", Icon: "🎩"},
	{Name: "Date Night", Category: "Occasions", Icon: "❤️"},
	{Name: "Family Gathering", Category: "Occasions", Icon: "👨‍👩‍👧‍👦"},
	{Name: "Game Day", Category: "Occasions", Icon: "🏈"},
	{Name: "BBQ", Category: "Occasions", Icon: "🍖"},
	{Name: "Healthy", Category: "Other Tags", Icon: "💪"},
	{Name: "Comfort Food", Category: "Other Tags", Icon: "🍝"},
	{Name: "Spicy", Category: "Other Tags", Icon: "🌶️"},
	{Name: "Sweet", Category: "Other Tags", Icon: "🍭"},
	{Name: "Savory", Category: "Other Tags", Icon: "🧀"},
	{Name: "Budget-Friendly", Category: "Other Tags", Icon: "💰"},
	{Name: "Kids Friendly", Category: "Other Tags", Icon: "🧒"},
	{Name: "High Fiber", Category: "Other Tags", Icon: "🌾"},
	{Name: "Low Sodium", Category: "Other Tags", Icon: "🧂❌"},
	{Name: "Seasonal", Category: "Other Tags", Icon: "🍂"},
	{Name: "Organic", Category: "Other Tags", Icon: "🥬"},
	{Name: "Gourmet", Category: "Other Tags", Icon: "🍷"},
}
