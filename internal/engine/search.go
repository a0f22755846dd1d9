package engine

import (
	"context"

	"github.com/nordgard/ansuz/internal/models"
	"github.com/nordgard/ansuz/internal/searchquery"
)

// Search runs a full-text query over note titles and bodies. The raw input
// is normalized so punctuation is matched literally and the last word
// matches as a prefix. An empty query yields an empty result set, not all
// notes. Non-archived matches come before archived ones; within each group
// the best match ranks first.
func (e *Engine) Search(ctx context.Context, raw string) ([]models.SearchResult, error) {
	match := searchquery.Prepare(raw)
	if match == "" {
		return []models.SearchResult{}, nil
	}
	results, err := searchRows(ctx, e.db, raw, match)
	if err != nil {
		return nil, err
	}
	ptrs := make([]*models.Note, len(results))
	for i := range results {
		ptrs[i] = &results[i].Note
	}
	if err := e.attachTags(ctx, ptrs); err != nil {
		return nil, err
	}
	return results, nil
}
