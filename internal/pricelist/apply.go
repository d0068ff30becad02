package pricelist

import (
	"context"
	"fmt"

	"kitchencost/internal/store"
	"kitchencost/models"
)

// Upserter stores one ingredient, reporting whether it was newly created.
type Upserter interface {
	Upsert(ctx context.Context, in store.IngredientInput) (*models.Ingredient, bool, error)
}

// Summary counts what an import did.
type Summary struct {
	Parsed   int
	Created  int
	Updated  int
	Problems []Problem
}

// Apply upserts entries one at a time. Each entry commits on its own, so a
// storage failure stops the import but keeps the entries already applied.
// With dryRun set nothing is written.
func Apply(ctx context.Context, target Upserter, entries []Entry, dryRun bool) (Summary, error) {
	summary := Summary{Parsed: len(entries)}
	if dryRun {
		return summary, nil
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		_, created, err := target.Upsert(ctx, entry.Input)
		switch {
		case store.FieldErrors(err) != nil:
			summary.Problems = append(summary.Problems, Problem{Line: entry.Line, Err: err})
			continue
		case err != nil:
			return summary, fmt.Errorf("line %d (%s): %w", entry.Line, entry.Input.Name, err)
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}
	return summary, nil
}
