package calculator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mmynk/shoppinglist/internal/models"
)

// ErrUnknownStatus is returned for labels missing from the status table.
var ErrUnknownStatus = errors.New("unknown list status")

// StatusTable is the ordered list status reference data.
type StatusTable struct {
	ranks    map[string]int
	statuses []models.ListStatus // ascending rank
}

// NewStatusTable validates the seeded statuses. Labels and ranks must be
// unique and one status must have rank 0.
func NewStatusTable(statuses []models.ListStatus) (*StatusTable, error) {
	if len(statuses) == 0 {
		return nil, fmt.Errorf("status table is empty")
	}

	t := &StatusTable{ranks: make(map[string]int, len(statuses))}
	seenRanks := make(map[int]string, len(statuses))
	for _, s := range statuses {
		if s.Label == "" {
			return nil, fmt.Errorf("status with rank %d has no label", s.Rank)
		}
		if _, dup := t.ranks[s.Label]; dup {
			return nil, fmt.Errorf("duplicate status label %q", s.Label)
		}
		if other, dup := seenRanks[s.Rank]; dup {
			return nil, fmt.Errorf("statuses %q and %q share rank %d", other, s.Label, s.Rank)
		}
		t.ranks[s.Label] = s.Rank
		seenRanks[s.Rank] = s.Label
		t.statuses = append(t.statuses, s)
	}
	if _, ok := seenRanks[0]; !ok {
		return nil, fmt.Errorf("status table has no rank 0 status")
	}

	sort.Slice(t.statuses, func(i, j int) bool { return t.statuses[i].Rank < t.statuses[j].Rank })
	return t, nil
}

// Initial returns the rank 0 label every new list starts with.
func (t *StatusTable) Initial() string {
	for _, s := range t.statuses {
		if s.Rank == 0 {
			return s.Label
		}
	}
	return ""
}

// Terminal returns the highest ranked status.
func (t *StatusTable) Terminal() models.ListStatus {
	return t.statuses[len(t.statuses)-1]
}

// Rank looks up the rank of a label.
func (t *StatusTable) Rank(label string) (int, bool) {
	r, ok := t.ranks[label]
	return r, ok
}

// Statuses returns the table in ascending rank order.
func (t *StatusTable) Statuses() []models.ListStatus {
	out := make([]models.ListStatus, len(t.statuses))
	copy(out, t.statuses)
	return out
}

// Advance applies a proposed status to a list currently at current.
// The proposal wins only when its rank is strictly greater; otherwise the
// current status is kept and no error is returned. An empty proposal keeps
// the current status.
func (t *StatusTable) Advance(current, proposed string) (string, error) {
	currentRank, ok := t.ranks[current]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, current)
	}
	if proposed == "" {
		return current, nil
	}
	proposedRank, ok := t.ranks[proposed]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, proposed)
	}
	if proposedRank > currentRank {
		return proposed, nil
	}
	return current, nil
}
