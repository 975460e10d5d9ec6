package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/shoppinglist/internal/auth"
	"github.com/mmynk/shoppinglist/internal/engine"
	"github.com/mmynk/shoppinglist/pkg/api"
)

// LedgerService implements the Connect LedgerService.
type LedgerService struct {
	principals
	engine *engine.Engine
}

var _ api.LedgerServiceHandler = (*LedgerService)(nil)

// NewLedgerService creates a new LedgerService.
func NewLedgerService(eng *engine.Engine, resolver *auth.Resolver) *LedgerService {
	return &LedgerService{principals: principals{resolver: resolver}, engine: eng}
}

// GetHistory returns a user's ledger entries, newest first.
func (s *LedgerService) GetHistory(ctx context.Context, req *connect.Request[api.GetHistoryRequest]) (*connect.Response[api.GetHistoryResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.engine.GetHistory(ctx, p, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError("GetHistory", err)
	}
	return connect.NewResponse(&api.GetHistoryResponse{Entries: toAPIEntries(entries)}), nil
}

// GetBalance returns a user's balance.
func (s *LedgerService) GetBalance(ctx context.Context, req *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	balance, err := s.engine.GetBalance(ctx, p, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError("GetBalance", err)
	}
	return connect.NewResponse(&api.GetBalanceResponse{Balance: money(balance)}), nil
}

// RegisterPayment books a payment received from a user.
func (s *LedgerService) RegisterPayment(ctx context.Context, req *connect.Request[api.RegisterPaymentRequest]) (*connect.Response[api.RegisterPaymentResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RegisterPayment request received",
		"user_id", p.UserID,
		"target_user_id", req.Msg.UserID,
		"amount", req.Msg.Amount,
	)

	entry, balance, err := s.engine.RegisterPayment(ctx, p, req.Msg.UserID, req.Msg.Amount)
	if err != nil {
		return nil, toConnectError("RegisterPayment", err)
	}

	slog.Info("Payment registered", "entry_id", entry.ID, "balance", money(balance))
	return connect.NewResponse(&api.RegisterPaymentResponse{
		Entry:   toAPIEntry(entry),
		Balance: money(balance),
	}), nil
}
