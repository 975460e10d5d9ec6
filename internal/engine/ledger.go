package engine

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/shoppinglist/internal/apierr"
	"github.com/mmynk/shoppinglist/internal/calculator"
	"github.com/mmynk/shoppinglist/internal/models"
	"github.com/mmynk/shoppinglist/internal/policy"
)

// AppendEntry books a signed amount against userID. It performs no
// authorisation; callers must have checked the action that causes it.
func (e *Engine) AppendEntry(ctx context.Context, userID string, amount decimal.Decimal, detail string, at time.Time) (*models.LedgerEntry, error) {
	if at.IsZero() {
		at = e.now()
	}
	entry := &models.LedgerEntry{UserID: userID, Amount: amount, Detail: detail, CreatedAt: at}
	if err := e.store.AppendLedgerEntry(ctx, entry); err != nil {
		return nil, classify("failed to append ledger entry", err)
	}
	return entry, nil
}

// GetHistory returns the target user's ledger entries, newest first.
func (e *Engine) GetHistory(ctx context.Context, p models.Principal, userID string) ([]*models.LedgerEntry, error) {
	if err := e.authorizeLedger(ctx, p, policy.ViewProfile, userID); err != nil {
		return nil, err
	}
	entries, err := e.store.ListLedgerEntries(ctx, userID)
	if err != nil {
		return nil, classify("failed to list ledger entries", err)
	}
	return entries, nil
}

// GetBalance sums the target user's ledger entries. It is recomputed on
// every call.
func (e *Engine) GetBalance(ctx context.Context, p models.Principal, userID string) (decimal.Decimal, error) {
	entries, err := e.GetHistory(ctx, p, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return calculator.Balance(entries), nil
}

// RegisterPayment books a payment of amount from userID as a negative
// entry. amount must be a positive decimal. It returns the entry and the
// user's new balance.
func (e *Engine) RegisterPayment(ctx context.Context, p models.Principal, userID, amount string) (*models.LedgerEntry, decimal.Decimal, error) {
	if err := e.authorizeLedger(ctx, p, policy.RegisterPayment, userID); err != nil {
		return nil, decimal.Zero, err
	}

	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, decimal.Zero, apierr.Validation("amount %q is not a decimal", amount)
	}
	if !value.IsPositive() {
		return nil, decimal.Zero, apierr.Validation("amount must be positive")
	}

	payment := calculator.Payment(value)
	entry, err := e.AppendEntry(ctx, userID, payment.Amount, payment.Detail, e.now())
	if err != nil {
		return nil, decimal.Zero, err
	}
	e.recorder.LedgerEntry("payment")

	entries, err := e.store.ListLedgerEntries(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, classify("failed to list ledger entries", err)
	}
	return entry, calculator.Balance(entries), nil
}

func (e *Engine) authorizeLedger(ctx context.Context, p models.Principal, action policy.Action, userID string) error {
	if err := requireResolved(p); err != nil {
		return err
	}
	user, err := e.profile(ctx, userID)
	if err != nil {
		return err
	}
	return policy.Require(p, action, policy.ForProfile(user))
}
