package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/shoppinglist/internal/auth"
	"github.com/mmynk/shoppinglist/internal/engine"
	"github.com/mmynk/shoppinglist/pkg/api"
)

// CatalogService implements the Connect CatalogService.
type CatalogService struct {
	principals
	engine *engine.Engine
}

var _ api.CatalogServiceHandler = (*CatalogService)(nil)

// NewCatalogService creates a new CatalogService.
func NewCatalogService(eng *engine.Engine, resolver *auth.Resolver) *CatalogService {
	return &CatalogService{principals: principals{resolver: resolver}, engine: eng}
}

// ListCatalog returns the caller's catalog grouped by catalog group.
func (s *CatalogService) ListCatalog(ctx context.Context, req *connect.Request[api.ListCatalogRequest]) (*connect.Response[api.ListCatalogResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	sections, err := s.engine.ListCatalog(ctx, p)
	if err != nil {
		return nil, toConnectError("ListCatalog", err)
	}
	return connect.NewResponse(&api.ListCatalogResponse{Groups: toAPISections(sections)}), nil
}

// ListGroups returns the organisation's catalog groups.
func (s *CatalogService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.engine.ListGroups(ctx, p)
	if err != nil {
		return nil, toConnectError("ListGroups", err)
	}
	out := make([]api.CatalogGroup, len(groups))
	for i, g := range groups {
		out[i] = toAPIGroup(g)
	}
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// ListCreationOptions returns everything the caller can put on a new list.
func (s *CatalogService) ListCreationOptions(ctx context.Context, req *connect.Request[api.ListCreationOptionsRequest]) (*connect.Response[api.ListCreationOptionsResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	sections, err := s.engine.ListCreationOptions(ctx, p)
	if err != nil {
		return nil, toConnectError("ListCreationOptions", err)
	}
	return connect.NewResponse(&api.ListCreationOptionsResponse{Groups: toAPISections(sections)}), nil
}

// CreateOrUpdateItem creates a catalog item or updates an existing one.
func (s *CatalogService) CreateOrUpdateItem(ctx context.Context, req *connect.Request[api.CreateOrUpdateItemRequest]) (*connect.Response[api.CreateOrUpdateItemResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateOrUpdateItem request received",
		"user_id", p.UserID,
		"existing_id", req.Msg.ExistingID,
	)

	item, created, err := s.engine.CreateOrUpdateItem(ctx, p, engine.ItemInput{
		ExistingID: req.Msg.ExistingID,
		Name:       req.Msg.Name,
		Price:      req.Msg.Price,
		GroupName:  req.Msg.GroupName,
	})
	if err != nil {
		return nil, toConnectError("CreateOrUpdateItem", err)
	}

	slog.Info("Catalog item saved", "item_id", item.ID, "created", created)
	return connect.NewResponse(&api.CreateOrUpdateItemResponse{Item: toAPIItem(item), Created: created}), nil
}

// CreateGroup adds a catalog group to the caller's organisation.
func (s *CatalogService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received", "user_id", p.UserID, "name", req.Msg.Name)

	group, err := s.engine.CreateGroup(ctx, p, req.Msg.Name)
	if err != nil {
		return nil, toConnectError("CreateGroup", err)
	}

	slog.Info("Catalog group created", "group_id", group.ID)
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetItem returns one catalog item.
func (s *CatalogService) GetItem(ctx context.Context, req *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.engine.GetItem(ctx, p, req.Msg.ItemID)
	if err != nil {
		return nil, toConnectError("GetItem", err)
	}
	return connect.NewResponse(&api.GetItemResponse{Item: toAPIItem(item)}), nil
}
