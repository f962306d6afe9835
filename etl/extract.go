package etl

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
)

// Extractor builds recipe drafts from web pages carrying schema.org/Recipe
// JSON-LD metadata.
type Extractor struct{}

// ExtractURL fetches the page and extracts the first recipe it declares.
func (e Extractor) ExtractURL(url string) (*foodfellas.Recipe, error) {
	doc, err := goquery.NewDocument(url)
	if err != nil {
		return nil, errors.New("could not fetch page", errors.WithCause(err))
	}
	return e.extract(doc)
}

// Extract parses an HTML document from r and extracts the first recipe it
// declares.
func (e Extractor) Extract(r io.Reader) (*foodfellas.Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.New("could not parse page", errors.WithCause(err))
	}
	return e.extract(doc)
}

func (e Extractor) extract(doc *goquery.Document) (*foodfellas.Recipe, error) {
	var recipe *foodfellas.Recipe

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		node := parseLD(s.Text())
		if node == nil {
			return true
		}

		recipe = recipeFromLD(node)
		return recipe == nil
	})

	if recipe == nil {
		return nil, errors.NotFound("no recipe metadata on page")
	}
	return recipe, nil
}

// parseLD decodes a JSON-LD script body. Blocks hold either a single object
// or an array of objects.
func parseLD(text string) interface{} {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var node interface{}
	if err := json.Unmarshal([]byte(text), &node); err != nil {
		return nil
	}
	return node
}

// recipeFromLD walks a JSON-LD node looking for a schema.org/Recipe object,
// descending into arrays and @graph containers.
func recipeFromLD(node interface{}) *foodfellas.Recipe {
	switch n := node.(type) {
	case []interface{}:
		for _, item := range n {
			if recipe := recipeFromLD(item); recipe != nil {
				return recipe
			}
		}
	case map[string]interface{}:
		if isRecipeType(n["@type"]) {
			return buildRecipe(n)
		}
		if graph, ok := n["@graph"]; ok {
			return recipeFromLD(graph)
		}
	}
	return nil
}

// isRecipeType accepts "Recipe" both as a plain string and as one entry of a
// multi-typed node.
func isRecipeType(t interface{}) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func buildRecipe(node map[string]interface{}) *foodfellas.Recipe {
	ingredientNames := stringList(node["recipeIngredient"])

	ingredients := make([]foodfellas.IngredientEntry, 0, len(ingredientNames))
	for _, name := range ingredientNames {
		ingredients = append(ingredients, foodfellas.IngredientEntry{
			Ingredient: foodfellas.Ingredient{IngredientName: name},
		})
	}

	return &foodfellas.Recipe{
		Title:           str(node["name"]),
		Description:     str(node["description"]),
		CookingSteps:    instructionList(node["recipeInstructions"]),
		Ingredients:     ingredients,
		IngredientNames: ingredientNames,
	}
}

// instructionList flattens recipeInstructions: a plain string, a list of
// strings, or a list of HowToStep objects with a text field. HowToSection
// containers hold their steps under itemListElement.
func instructionList(node interface{}) []string {
	steps := []string{}

	switch n := node.(type) {
	case string:
		if s := strings.TrimSpace(n); s != "" {
			steps = append(steps, s)
		}
	case []interface{}:
		for _, item := range n {
			switch step := item.(type) {
			case string:
				if s := strings.TrimSpace(step); s != "" {
					steps = append(steps, s)
				}
			case map[string]interface{}:
				if nested, ok := step["itemListElement"]; ok {
					steps = append(steps, instructionList(nested)...)
					continue
				}
				if s := strings.TrimSpace(str(step["text"])); s != "" {
					steps = append(steps, s)
				}
			}
		}
	}

	return steps
}

func stringList(node interface{}) []string {
	items, ok := node.([]interface{})
	if !ok {
		return []string{}
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				list = append(list, s)
			}
		}
	}
	return list
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
