package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/shoppinglist/internal/auth"
	"github.com/mmynk/shoppinglist/internal/engine"
	"github.com/mmynk/shoppinglist/pkg/api"
)

// ListService implements the Connect ListService: list lifecycle and
// aggregation.
type ListService struct {
	principals
	engine *engine.Engine
}

var _ api.ListServiceHandler = (*ListService)(nil)

// NewListService creates a new ListService.
func NewListService(eng *engine.Engine, resolver *auth.Resolver) *ListService {
	return &ListService{principals: principals{resolver: resolver}, engine: eng}
}

// CreateList creates a shopping list for the caller.
func (s *ListService) CreateList(ctx context.Context, req *connect.Request[api.CreateListRequest]) (*connect.Response[api.CreateListResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateList request received",
		"user_id", p.UserID,
		"groups_count", len(req.Msg.ItemsByGroup),
	)

	list, err := s.engine.CreateList(ctx, p, req.Msg.ItemsByGroup)
	if err != nil {
		return nil, toConnectError("CreateList", err)
	}

	slog.Info("List created", "list_id", list.ID, "items_count", len(list.Items))
	return connect.NewResponse(&api.CreateListResponse{List: toAPIList(list)}), nil
}

// GetLists returns the lists the caller may see, grouped by user.
func (s *ListService) GetLists(ctx context.Context, req *connect.Request[api.GetListsRequest]) (*connect.Response[api.GetListsResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.engine.GetListsFor(ctx, p)
	if err != nil {
		return nil, toConnectError("GetLists", err)
	}

	out := make([]api.UserLists, len(users))
	for i, u := range users {
		out[i] = api.UserLists{UserID: u.UserID, Username: u.Username, Lists: toAPILists(u.Lists)}
	}
	return connect.NewResponse(&api.GetListsResponse{Users: out}), nil
}

// GetListDetail returns one list with its items.
func (s *ListService) GetListDetail(ctx context.Context, req *connect.Request[api.GetListDetailRequest]) (*connect.Response[api.GetListDetailResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.engine.GetListDetail(ctx, p, req.Msg.ListID)
	if err != nil {
		return nil, toConnectError("GetListDetail", err)
	}
	return connect.NewResponse(&api.GetListDetailResponse{List: toAPIList(list)}), nil
}

// UpdateList changes a list's price, status and notes.
func (s *ListService) UpdateList(ctx context.Context, req *connect.Request[api.UpdateListRequest]) (*connect.Response[api.UpdateListResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateList request received",
		"user_id", p.UserID,
		"list_id", req.Msg.ListID,
		"status", req.Msg.Status,
		"price_supplied", req.Msg.Price != nil,
	)

	list, entry, err := s.engine.UpdateList(ctx, p, engine.ListUpdate{
		ListID: req.Msg.ListID,
		Price:  req.Msg.Price,
		Status: req.Msg.Status,
		Notes:  req.Msg.Notes,
	})
	if err != nil {
		return nil, toConnectError("UpdateList", err)
	}

	resp := &api.UpdateListResponse{List: toAPIList(list)}
	if entry != nil {
		e := toAPIEntry(entry)
		resp.Entry = &e
		slog.Info("Ledger entry booked", "list_id", list.ID, "user_id", entry.UserID, "amount", e.Amount)
	}
	return connect.NewResponse(resp), nil
}

// GenerateAggregate returns the organisation's aggregate shopping run.
func (s *ListService) GenerateAggregate(ctx context.Context, req *connect.Request[api.GenerateAggregateRequest]) (*connect.Response[api.GenerateAggregateResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.engine.GenerateAggregate(ctx, p)
	if err != nil {
		return nil, toConnectError("GenerateAggregate", err)
	}

	slog.Info("Aggregate generated", "user_id", p.UserID, "items_count", len(counts))
	return connect.NewResponse(&api.GenerateAggregateResponse{Items: toAPICounts(counts)}), nil
}
