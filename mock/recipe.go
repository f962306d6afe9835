// Package mock holds in-memory implementations of the store and index
// interfaces, for handler tests.
package mock

import (
	"sort"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
)

type RecipeStore struct {
	db  map[string]*foodfellas.Recipe
	seq int64
}

func (s *RecipeStore) init() {
	if s.db == nil {
		s.db = make(map[string]*foodfellas.Recipe)
	}
}

func (s *RecipeStore) Get(id string) (*foodfellas.Recipe, error) {
	s.init()
	recipe, ok := s.db[id]
	if !ok {
		return nil, nil
	}
	clone := *recipe
	return &clone, nil
}

func (s *RecipeStore) Upsert(recipe *foodfellas.Recipe) error {
	s.init()
	if existing, ok := s.db[recipe.ID]; ok {
		recipe.CreatedAt = existing.CreatedAt
	} else if recipe.CreatedAt == 0 {
		s.seq++
		recipe.CreatedAt = s.seq
	}

	clone := *recipe
	s.db[recipe.ID] = &clone
	return nil
}

func (s *RecipeStore) Update(id string, fn func(*foodfellas.Recipe)) error {
	s.init()
	recipe, ok := s.db[id]
	if !ok {
		return errors.NotFound("recipe " + id + " not found")
	}
	fn(recipe)
	return nil
}

func (s *RecipeStore) Delete(id string) error {
	s.init()
	delete(s.db, id)
	return nil
}

func (s *RecipeStore) ByAuthor(authorID string) ([]*foodfellas.Recipe, error) {
	s.init()
	recipes := make([]*foodfellas.Recipe, 0)
	for _, recipe := range s.db {
		if recipe.AuthorID == authorID {
			clone := *recipe
			recipes = append(recipes, &clone)
		}
	}
	return recipes, nil
}

func (s *RecipeStore) List(after foodfellas.Cursor, limit int) ([]*foodfellas.Recipe, foodfellas.Cursor, error) {
	s.init()
	all := make([]*foodfellas.Recipe, 0, len(s.db))
	for _, recipe := range s.db {
		all = append(all, recipe)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt != all[j].CreatedAt {
			return all[i].CreatedAt < all[j].CreatedAt
		}
		return all[i].ID < all[j].ID
	})

	page := make([]*foodfellas.Recipe, 0, limit)
	next := after
	for _, recipe := range all {
		if recipe.CreatedAt < after.CreatedAt ||
			(recipe.CreatedAt == after.CreatedAt && recipe.ID <= after.ID) {
			continue
		}
		clone := *recipe
		page = append(page, &clone)
		next = foodfellas.Cursor{CreatedAt: recipe.CreatedAt, ID: recipe.ID}
		if len(page) == limit {
			break
		}
	}
	return page, next, nil
}

type RatingStore struct {
	db map[string]map[string]*foodfellas.Rating
}

func (s *RatingStore) init() {
	if s.db == nil {
		s.db = make(map[string]map[string]*foodfellas.Rating)
	}
}

func (s *RatingStore) Get(recipeID, userID string) (*foodfellas.Rating, error) {
	s.init()
	rating, ok := s.db[recipeID][userID]
	if !ok {
		return nil, nil
	}
	clone := *rating
	return &clone, nil
}

func (s *RatingStore) Put(rating *foodfellas.Rating) error {
	s.init()
	if s.db[rating.RecipeID] == nil {
		s.db[rating.RecipeID] = make(map[string]*foodfellas.Rating)
	}
	clone := *rating
	s.db[rating.RecipeID][rating.UserID] = &clone
	return nil
}

func (s *RatingStore) Delete(recipeID, userID string) error {
	s.init()
	delete(s.db[recipeID], userID)
	return nil
}

func (s *RatingStore) ByRecipe(recipeID string) ([]*foodfellas.Rating, error) {
	s.init()
	ratings := make([]*foodfellas.Rating, 0, len(s.db[recipeID]))
	for _, rating := range s.db[recipeID] {
		clone := *rating
		ratings = append(ratings, &clone)
	}
	return ratings, nil
}

type CommentStore struct {
	db  map[string]map[string]*foodfellas.Comment
	seq int64
}

func (s *CommentStore) init() {
	if s.db == nil {
		s.db = make(map[string]map[string]*foodfellas.Comment)
	}
}

func (s *CommentStore) Get(recipeID, commentID string) (*foodfellas.Comment, error) {
	s.init()
	comment, ok := s.db[recipeID][commentID]
	if !ok {
		return nil, nil
	}
	clone := *comment
	return &clone, nil
}

func (s *CommentStore) Put(comment *foodfellas.Comment) error {
	s.init()
	if comment.CreatedAt == 0 {
		s.seq++
		comment.CreatedAt = s.seq
	}
	if s.db[comment.RecipeID] == nil {
		s.db[comment.RecipeID] = make(map[string]*foodfellas.Comment)
	}
	clone := *comment
	s.db[comment.RecipeID][comment.ID] = &clone
	return nil
}

func (s *CommentStore) Update(recipeID, commentID string, fn func(*foodfellas.Comment)) error {
	s.init()
	comment, ok := s.db[recipeID][commentID]
	if !ok {
		return errors.NotFound("comment " + commentID + " not found")
	}
	fn(comment)
	return nil
}

func (s *CommentStore) ByRecipe(recipeID string) ([]*foodfellas.Comment, error) {
	s.init()
	comments := make([]*foodfellas.Comment, 0, len(s.db[recipeID]))
	for _, comment := range s.db[recipeID] {
		clone := *comment
		comments = append(comments, &clone)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt < comments[j].CreatedAt })
	return comments, nil
}
