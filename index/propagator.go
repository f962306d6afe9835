package index

import (
	"context"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
	"github.com/eliasantony/food-fellas/log"
	"github.com/eliasantony/food-fellas/trigger"
)

// Propagator mirrors recipe and user documents into their search indexes.
// Handlers re-read the document from the store at dispatch time instead of
// projecting the event snapshot: the derivation and aggregate handlers run
// first on the same change, and the index has to reflect what they wrote.
// A document that is gone from the store removes the index entry. Index
// write failures are surfaced to the caller and never touch the source
// store.
type Propagator struct {
	recipes foodfellas.RecipeStore
	users   foodfellas.UserStore

	recipeIndex foodfellas.SearchIndex
	userIndex   foodfellas.SearchIndex

	logger log.Logger
}

func NewPropagator(
	recipes foodfellas.RecipeStore,
	users foodfellas.UserStore,
	recipeIndex foodfellas.SearchIndex,
	userIndex foodfellas.SearchIndex,
	logger log.Logger,
) *Propagator {
	return &Propagator{
		recipes:     recipes,
		users:       users,
		recipeIndex: recipeIndex,
		userIndex:   userIndex,
		logger:      logger,
	}
}

// Register wires the reindex handlers onto the dispatcher.
func (p *Propagator) Register(d *trigger.Dispatcher) {
	d.Handle("index.recipe", "recipes/{recipeId}", p.HandleRecipe)
	d.Handle("index.rating", "recipes/{recipeId}/ratings/{userId}", p.HandleRating)
	d.Handle("index.user", "users/{userId}", p.HandleUser)
}

// HandleRecipe reindexes the written recipe and its author: a recipe write
// also moves the author's recipeCount and review aggregate.
func (p *Propagator) HandleRecipe(ctx context.Context, change foodfellas.DocumentChange) error {
	authorID, err := p.reindexRecipe(change.Params["recipeId"])
	if err != nil {
		return err
	}
	if authorID == "" {
		// Deleted recipe: the author is only on the before snapshot.
		authorID, _ = change.Before.Data()["authorId"].(string)
	}
	return p.reindexUser(authorID)
}

// HandleRating reindexes the rated recipe and its author, whose aggregates
// were just recomputed from the rating write.
func (p *Propagator) HandleRating(ctx context.Context, change foodfellas.DocumentChange) error {
	authorID, err := p.reindexRecipe(change.Params["recipeId"])
	if err != nil {
		return err
	}
	return p.reindexUser(authorID)
}

// HandleUser reindexes one user change.
func (p *Propagator) HandleUser(ctx context.Context, change foodfellas.DocumentChange) error {
	return p.reindexUser(change.Params["userId"])
}

// reindexRecipe mirrors the recipe's current store state into the index and
// returns its author ID, empty when the recipe no longer exists.
func (p *Propagator) reindexRecipe(id string) (string, error) {
	recipe, err := p.recipes.Get(id)
	if err != nil {
		return "", errors.New("error loading recipe "+id, errors.WithCause(err))
	}

	if recipe == nil {
		if err := p.recipeIndex.Delete(id); err != nil {
			return "", errors.New("error removing recipe "+id+" from index", errors.WithCause(err))
		}
		p.logger.Printf("removed recipe %s from index", id)
		return "", nil
	}

	if err := p.recipeIndex.Upsert(id, RecipeProjection(id, foodfellas.Doc(recipe))); err != nil {
		return "", errors.New("error indexing recipe "+id, errors.WithCause(err))
	}
	return recipe.AuthorID, nil
}

func (p *Propagator) reindexUser(id string) error {
	if id == "" {
		return nil
	}

	user, err := p.users.Get(id)
	if err != nil {
		return errors.New("error loading user "+id, errors.WithCause(err))
	}

	if user == nil {
		if err := p.userIndex.Delete(id); err != nil {
			return errors.New("error removing user "+id+" from index", errors.WithCause(err))
		}
		p.logger.Printf("removed user %s from index", id)
		return nil
	}

	if err := p.userIndex.Upsert(id, UserProjection(id, foodfellas.Doc(user))); err != nil {
		return errors.New("error indexing user "+id, errors.WithCause(err))
	}
	return nil
}
