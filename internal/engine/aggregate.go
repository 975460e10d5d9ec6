package engine

import (
	"context"
	"log/slog"

	"github.com/mmynk/shoppinglist/internal/calculator"
	"github.com/mmynk/shoppinglist/internal/models"
	"github.com/mmynk/shoppinglist/internal/policy"
)

// GenerateAggregate counts, for each item name, how many distinct
// not-yet-shopped lists of the admin's organisation ask for it. Lists are
// not modified, so calling it again before any status changes gives the
// same result.
func (e *Engine) GenerateAggregate(ctx context.Context, p models.Principal) (map[string]int, error) {
	if err := policy.Require(p, policy.GenerateAggregate, policy.Org(p.OrganisationID)); err != nil {
		return nil, err
	}

	lists, err := e.store.ListUnshoppedLists(ctx, p.OrganisationID)
	if err != nil {
		return nil, classify("failed to list unshopped lists", err)
	}

	items := make([][]string, len(lists))
	for i, l := range lists {
		items[i] = l.Items
	}
	counts := calculator.Aggregate(items)

	slog.Debug("Aggregate generated", "organisation_id", p.OrganisationID, "lists", len(lists), "items", len(counts))
	e.recorder.AggregateGenerated()
	return counts, nil
}
