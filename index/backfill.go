package index

import (
	"context"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
	"github.com/eliasantony/food-fellas/log"
)

// pageSize bounds one page of the full-collection scan.
const pageSize = 100

// Report summarizes one backfill pass.
type Report struct {
	Indexed int `json:"indexed"`
	Failed  int `json:"failed"`
}

// Backfill replays the reindex logic over entire collections, for bootstrap
// or drift repair. It uses the same projections as the live propagator, so
// its output is identical to what the triggers would have produced.
type Backfill struct {
	recipes foodfellas.RecipeStore
	users   foodfellas.UserStore

	recipeIndex foodfellas.SearchIndex
	userIndex   foodfellas.SearchIndex

	logger log.Logger
}

func NewBackfill(
	recipes foodfellas.RecipeStore,
	users foodfellas.UserStore,
	recipeIndex foodfellas.SearchIndex,
	userIndex foodfellas.SearchIndex,
	logger log.Logger,
) *Backfill {
	return &Backfill{
		recipes:     recipes,
		users:       users,
		recipeIndex: recipeIndex,
		userIndex:   userIndex,
		logger:      logger,
	}
}

// Recipes reindexes every recipe. A document that fails to import is
// counted and logged, and does not block the rest of the pass.
func (b *Backfill) Recipes(ctx context.Context) (Report, error) {
	var report Report
	var cursor foodfellas.Cursor

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		page, next, err := b.recipes.List(cursor, pageSize)
		if err != nil {
			return report, errors.New("error listing recipes", errors.WithCause(err))
		}
		if len(page) == 0 {
			break
		}

		docs := make([]foodfellas.Document, len(page))
		for i, recipe := range page {
			docs[i] = foodfellas.Document{
				ID:     recipe.ID,
				Fields: RecipeProjection(recipe.ID, foodfellas.Doc(recipe)),
			}
		}

		if err := b.importPage(b.recipeIndex, docs, &report); err != nil {
			return report, err
		}

		// The cursor is logged so a failed pass can be resumed manually.
		b.logger.Printf("indexed %d recipes, cursor at %d/%s", len(page), next.CreatedAt, next.ID)
		cursor = next
	}

	return report, nil
}

// Users reindexes every user.
func (b *Backfill) Users(ctx context.Context) (Report, error) {
	var report Report
	var cursor foodfellas.Cursor

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		page, next, err := b.users.List(cursor, pageSize)
		if err != nil {
			return report, errors.New("error listing users", errors.WithCause(err))
		}
		if len(page) == 0 {
			break
		}

		docs := make([]foodfellas.Document, len(page))
		for i, user := range page {
			docs[i] = foodfellas.Document{
				ID:     user.ID,
				Fields: UserProjection(user.ID, foodfellas.Doc(user)),
			}
		}

		if err := b.importPage(b.userIndex, docs, &report); err != nil {
			return report, err
		}

		b.logger.Printf("indexed %d users, cursor at %d/%s", len(page), next.CreatedAt, next.ID)
		cursor = next
	}

	return report, nil
}

func (b *Backfill) importPage(idx foodfellas.SearchIndex, docs []foodfellas.Document, report *Report) error {
	results, err := idx.Bulk(docs)
	if err != nil {
		return errors.New("bulk import failed", errors.WithCause(err))
	}

	for _, res := range results {
		if res.Err != nil {
			report.Failed++
			b.logger.Errorf("error importing document %s: %v", res.ID, res.Err)
			continue
		}
		report.Indexed++
	}
	return nil
}
