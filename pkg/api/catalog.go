package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// CatalogServiceName is the fully-qualified name of the CatalogService service.
const CatalogServiceName = "shoppinglist.v1.CatalogService"

const (
	CatalogServiceListCatalogProcedure         = "/shoppinglist.v1.CatalogService/ListCatalog"
	CatalogServiceListGroupsProcedure          = "/shoppinglist.v1.CatalogService/ListGroups"
	CatalogServiceListCreationOptionsProcedure = "/shoppinglist.v1.CatalogService/ListCreationOptions"
	CatalogServiceCreateOrUpdateItemProcedure  = "/shoppinglist.v1.CatalogService/CreateOrUpdateItem"
	CatalogServiceCreateGroupProcedure         = "/shoppinglist.v1.CatalogService/CreateGroup"
	CatalogServiceGetItemProcedure             = "/shoppinglist.v1.CatalogService/GetItem"
)

type ListCatalogRequest struct{}

type ListCatalogResponse struct {
	Groups []GroupedItems `json:"groups"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []CatalogGroup `json:"groups"`
}

type ListCreationOptionsRequest struct{}

type ListCreationOptionsResponse struct {
	Groups []GroupedItems `json:"groups"`
}

// CreateOrUpdateItemRequest creates an item, or updates the item named by
// ExistingID. Nil fields are left untouched on update.
type CreateOrUpdateItemRequest struct {
	ExistingID string  `json:"existing_id,omitempty"`
	Name       *string `json:"name,omitempty"`
	Price      *string `json:"price,omitempty"`
	GroupName  *string `json:"group_name,omitempty"`
}

type CreateOrUpdateItemResponse struct {
	Item    CatalogItem `json:"item"`
	Created bool        `json:"created"`
}

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateGroupResponse struct {
	Group CatalogGroup `json:"group"`
}

type GetItemRequest struct {
	ItemID string `json:"item_id"`
}

type GetItemResponse struct {
	Item CatalogItem `json:"item"`
}

// CatalogServiceHandler is implemented by the catalog service.
type CatalogServiceHandler interface {
	ListCatalog(context.Context, *connect.Request[ListCatalogRequest]) (*connect.Response[ListCatalogResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	ListCreationOptions(context.Context, *connect.Request[ListCreationOptionsRequest]) (*connect.Response[ListCreationOptionsResponse], error)
	CreateOrUpdateItem(context.Context, *connect.Request[CreateOrUpdateItemRequest]) (*connect.Response[CreateOrUpdateItemResponse], error)
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetItem(context.Context, *connect.Request[GetItemRequest]) (*connect.Response[GetItemResponse], error)
}

// NewCatalogServiceHandler builds an HTTP handler from the service
// implementation.
func NewCatalogServiceHandler(svc CatalogServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(CatalogServiceListCatalogProcedure, connect.NewUnaryHandler(CatalogServiceListCatalogProcedure, svc.ListCatalog, opts...))
	mux.Handle(CatalogServiceListGroupsProcedure, connect.NewUnaryHandler(CatalogServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(CatalogServiceListCreationOptionsProcedure, connect.NewUnaryHandler(CatalogServiceListCreationOptionsProcedure, svc.ListCreationOptions, opts...))
	mux.Handle(CatalogServiceCreateOrUpdateItemProcedure, connect.NewUnaryHandler(CatalogServiceCreateOrUpdateItemProcedure, svc.CreateOrUpdateItem, opts...))
	mux.Handle(CatalogServiceCreateGroupProcedure, connect.NewUnaryHandler(CatalogServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(CatalogServiceGetItemProcedure, connect.NewUnaryHandler(CatalogServiceGetItemProcedure, svc.GetItem, opts...))
	return "/" + CatalogServiceName + "/", mux
}

// CatalogServiceClient is a client for the catalog service.
type CatalogServiceClient struct {
	listCatalog         *connect.Client[ListCatalogRequest, ListCatalogResponse]
	listGroups          *connect.Client[ListGroupsRequest, ListGroupsResponse]
	listCreationOptions *connect.Client[ListCreationOptionsRequest, ListCreationOptionsResponse]
	createOrUpdateItem  *connect.Client[CreateOrUpdateItemRequest, CreateOrUpdateItemResponse]
	createGroup         *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getItem             *connect.Client[GetItemRequest, GetItemResponse]
}

// NewCatalogServiceClient constructs a client for the catalog service.
func NewCatalogServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CatalogServiceClient {
	opts = clientOptions(opts)
	return &CatalogServiceClient{
		listCatalog:         connect.NewClient[ListCatalogRequest, ListCatalogResponse](httpClient, baseURL+CatalogServiceListCatalogProcedure, opts...),
		listGroups:          connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+CatalogServiceListGroupsProcedure, opts...),
		listCreationOptions: connect.NewClient[ListCreationOptionsRequest, ListCreationOptionsResponse](httpClient, baseURL+CatalogServiceListCreationOptionsProcedure, opts...),
		createOrUpdateItem:  connect.NewClient[CreateOrUpdateItemRequest, CreateOrUpdateItemResponse](httpClient, baseURL+CatalogServiceCreateOrUpdateItemProcedure, opts...),
		createGroup:         connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+CatalogServiceCreateGroupProcedure, opts...),
		getItem:             connect.NewClient[GetItemRequest, GetItemResponse](httpClient, baseURL+CatalogServiceGetItemProcedure, opts...),
	}
}

func (c *CatalogServiceClient) ListCatalog(ctx context.Context, req *connect.Request[ListCatalogRequest]) (*connect.Response[ListCatalogResponse], error) {
	return c.listCatalog.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) ListCreationOptions(ctx context.Context, req *connect.Request[ListCreationOptionsRequest]) (*connect.Response[ListCreationOptionsResponse], error) {
	return c.listCreationOptions.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) CreateOrUpdateItem(ctx context.Context, req *connect.Request[CreateOrUpdateItemRequest]) (*connect.Response[CreateOrUpdateItemResponse], error) {
	return c.createOrUpdateItem.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) GetItem(ctx context.Context, req *connect.Request[GetItemRequest]) (*connect.Response[GetItemResponse], error) {
	return c.getItem.CallUnary(ctx, req)
}
