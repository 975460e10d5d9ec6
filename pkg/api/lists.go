package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// ListServiceName is the fully-qualified name of the ListService service.
const ListServiceName = "shoppinglist.v1.ListService"

const (
	ListServiceCreateListProcedure        = "/shoppinglist.v1.ListService/CreateList"
	ListServiceGetListsProcedure          = "/shoppinglist.v1.ListService/GetLists"
	ListServiceGetListDetailProcedure     = "/shoppinglist.v1.ListService/GetListDetail"
	ListServiceUpdateListProcedure        = "/shoppinglist.v1.ListService/UpdateList"
	ListServiceGenerateAggregateProcedure = "/shoppinglist.v1.ListService/GenerateAggregate"
)

// CreateListRequest maps a group label to the item names picked from it.
type CreateListRequest struct {
	ItemsByGroup map[string][]string `json:"items_by_group"`
}

type CreateListResponse struct {
	List ShoppingList `json:"list"`
}

type GetListsRequest struct{}

type GetListsResponse struct {
	Users []UserLists `json:"users"`
}

type GetListDetailRequest struct {
	ListID string `json:"list_id"`
}

type GetListDetailResponse struct {
	List ShoppingList `json:"list"`
}

// UpdateListRequest changes a list. A nil Price leaves the price alone, an
// empty Status proposes no transition, and Notes always replaces the notes.
type UpdateListRequest struct {
	ListID string  `json:"list_id"`
	Price  *string `json:"price,omitempty"`
	Status string  `json:"status,omitempty"`
	Notes  string  `json:"notes"`
}

type UpdateListResponse struct {
	List ShoppingList `json:"list"`
	// Entry is the ledger entry the price change produced, if any.
	Entry *LedgerEntry `json:"entry,omitempty"`
}

type GenerateAggregateRequest struct{}

// GenerateAggregateResponse lists item names by descending count, then name.
type GenerateAggregateResponse struct {
	Items []ItemCount `json:"items"`
}

// ListServiceHandler is implemented by the list service.
type ListServiceHandler interface {
	CreateList(context.Context, *connect.Request[CreateListRequest]) (*connect.Response[CreateListResponse], error)
	GetLists(context.Context, *connect.Request[GetListsRequest]) (*connect.Response[GetListsResponse], error)
	GetListDetail(context.Context, *connect.Request[GetListDetailRequest]) (*connect.Response[GetListDetailResponse], error)
	UpdateList(context.Context, *connect.Request[UpdateListRequest]) (*connect.Response[UpdateListResponse], error)
	GenerateAggregate(context.Context, *connect.Request[GenerateAggregateRequest]) (*connect.Response[GenerateAggregateResponse], error)
}

// NewListServiceHandler builds an HTTP handler from the service
// implementation.
func NewListServiceHandler(svc ListServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ListServiceCreateListProcedure, connect.NewUnaryHandler(ListServiceCreateListProcedure, svc.CreateList, opts...))
	mux.Handle(ListServiceGetListsProcedure, connect.NewUnaryHandler(ListServiceGetListsProcedure, svc.GetLists, opts...))
	mux.Handle(ListServiceGetListDetailProcedure, connect.NewUnaryHandler(ListServiceGetListDetailProcedure, svc.GetListDetail, opts...))
	mux.Handle(ListServiceUpdateListProcedure, connect.NewUnaryHandler(ListServiceUpdateListProcedure, svc.UpdateList, opts...))
	mux.Handle(ListServiceGenerateAggregateProcedure, connect.NewUnaryHandler(ListServiceGenerateAggregateProcedure, svc.GenerateAggregate, opts...))
	return "/" + ListServiceName + "/", mux
}

// ListServiceClient is a client for the list service.
type ListServiceClient struct {
	createList        *connect.Client[CreateListRequest, CreateListResponse]
	getLists          *connect.Client[GetListsRequest, GetListsResponse]
	getListDetail     *connect.Client[GetListDetailRequest, GetListDetailResponse]
	updateList        *connect.Client[UpdateListRequest, UpdateListResponse]
	generateAggregate *connect.Client[GenerateAggregateRequest, GenerateAggregateResponse]
}

// NewListServiceClient constructs a client for the list service.
func NewListServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ListServiceClient {
	opts = clientOptions(opts)
	return &ListServiceClient{
		createList:        connect.NewClient[CreateListRequest, CreateListResponse](httpClient, baseURL+ListServiceCreateListProcedure, opts...),
		getLists:          connect.NewClient[GetListsRequest, GetListsResponse](httpClient, baseURL+ListServiceGetListsProcedure, opts...),
		getListDetail:     connect.NewClient[GetListDetailRequest, GetListDetailResponse](httpClient, baseURL+ListServiceGetListDetailProcedure, opts...),
		updateList:        connect.NewClient[UpdateListRequest, UpdateListResponse](httpClient, baseURL+ListServiceUpdateListProcedure, opts...),
		generateAggregate: connect.NewClient[GenerateAggregateRequest, GenerateAggregateResponse](httpClient, baseURL+ListServiceGenerateAggregateProcedure, opts...),
	}
}

func (c *ListServiceClient) CreateList(ctx context.Context, req *connect.Request[CreateListRequest]) (*connect.Response[CreateListResponse], error) {
	return c.createList.CallUnary(ctx, req)
}

func (c *ListServiceClient) GetLists(ctx context.Context, req *connect.Request[GetListsRequest]) (*connect.Response[GetListsResponse], error) {
	return c.getLists.CallUnary(ctx, req)
}

func (c *ListServiceClient) GetListDetail(ctx context.Context, req *connect.Request[GetListDetailRequest]) (*connect.Response[GetListDetailResponse], error) {
	return c.getListDetail.CallUnary(ctx, req)
}

func (c *ListServiceClient) UpdateList(ctx context.Context, req *connect.Request[UpdateListRequest]) (*connect.Response[UpdateListResponse], error) {
	return c.updateList.CallUnary(ctx, req)
}

func (c *ListServiceClient) GenerateAggregate(ctx context.Context, req *connect.Request[GenerateAggregateRequest]) (*connect.Response[GenerateAggregateResponse], error) {
	return c.generateAggregate.CallUnary(ctx, req)
}
