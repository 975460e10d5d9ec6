package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/shoppinglist/internal/models"
)

const (
	// DetailPriceAdded describes the first price recorded on a list.
	DetailPriceAdded = "List price added."
	// DetailPayment describes a payment registered by an admin.
	DetailPayment = "Payment made."
)

// Balance folds a user's ledger entries into their balance.
// Positive means the user owes money. No entries means a zero balance.
func Balance(entries []*models.LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// Charge is a ledger entry to be booked, without identity or timestamp.
type Charge struct {
	Amount decimal.Decimal
	Detail string
}

// PriceChange works out the ledger entry caused by moving a list's price
// from oldPrice to newPrice. It returns nil when no entry is due: either no
// new price was supplied or the price did not change.
//
//   - no previous price: charge the full new price
//   - previous price differs: charge the signed difference
func PriceChange(oldPrice, newPrice *decimal.Decimal) *Charge {
	if newPrice == nil {
		return nil
	}
	if oldPrice == nil {
		return &Charge{Amount: *newPrice, Detail: DetailPriceAdded}
	}
	if oldPrice.Equal(*newPrice) {
		return nil
	}
	diff := newPrice.Sub(*oldPrice)
	return &Charge{
		Amount: diff,
		Detail: fmt.Sprintf("List price updated. Old price: %s, New price: %s, Difference: %s",
			oldPrice.StringFixed(2), newPrice.StringFixed(2), diff.StringFixed(2)),
	}
}

// Payment returns the credit booked when a user pays amount.
func Payment(amount decimal.Decimal) Charge {
	return Charge{Amount: amount.Neg(), Detail: DetailPayment}
}
