package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "shoppinglist.v1.LedgerService"

const (
	LedgerServiceGetHistoryProcedure      = "/shoppinglist.v1.LedgerService/GetHistory"
	LedgerServiceGetBalanceProcedure      = "/shoppinglist.v1.LedgerService/GetBalance"
	LedgerServiceRegisterPaymentProcedure = "/shoppinglist.v1.LedgerService/RegisterPayment"
)

type GetHistoryRequest struct {
	UserID string `json:"user_id"`
}

type GetHistoryResponse struct {
	Entries []LedgerEntry `json:"entries"`
}

type GetBalanceRequest struct {
	UserID string `json:"user_id"`
}

type GetBalanceResponse struct {
	Balance string `json:"balance"`
}

type RegisterPaymentRequest struct {
	UserID string `json:"user_id"`
	Amount string `json:"amount"`
}

type RegisterPaymentResponse struct {
	Entry   LedgerEntry `json:"entry"`
	Balance string      `json:"balance"`
}

// LedgerServiceHandler is implemented by the ledger service.
type LedgerServiceHandler interface {
	GetHistory(context.Context, *connect.Request[GetHistoryRequest]) (*connect.Response[GetHistoryResponse], error)
	GetBalance(context.Context, *connect.Request[GetBalanceRequest]) (*connect.Response[GetBalanceResponse], error)
	RegisterPayment(context.Context, *connect.Request[RegisterPaymentRequest]) (*connect.Response[RegisterPaymentResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceGetHistoryProcedure, connect.NewUnaryHandler(LedgerServiceGetHistoryProcedure, svc.GetHistory, opts...))
	mux.Handle(LedgerServiceGetBalanceProcedure, connect.NewUnaryHandler(LedgerServiceGetBalanceProcedure, svc.GetBalance, opts...))
	mux.Handle(LedgerServiceRegisterPaymentProcedure, connect.NewUnaryHandler(LedgerServiceRegisterPaymentProcedure, svc.RegisterPayment, opts...))
	return "/" + LedgerServiceName + "/", mux
}

// LedgerServiceClient is a client for the ledger service.
type LedgerServiceClient struct {
	getHistory      *connect.Client[GetHistoryRequest, GetHistoryResponse]
	getBalance      *connect.Client[GetBalanceRequest, GetBalanceResponse]
	registerPayment *connect.Client[RegisterPaymentRequest, RegisterPaymentResponse]
}

// NewLedgerServiceClient constructs a client for the ledger service.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	opts = clientOptions(opts)
	return &LedgerServiceClient{
		getHistory:      connect.NewClient[GetHistoryRequest, GetHistoryResponse](httpClient, baseURL+LedgerServiceGetHistoryProcedure, opts...),
		getBalance:      connect.NewClient[GetBalanceRequest, GetBalanceResponse](httpClient, baseURL+LedgerServiceGetBalanceProcedure, opts...),
		registerPayment: connect.NewClient[RegisterPaymentRequest, RegisterPaymentResponse](httpClient, baseURL+LedgerServiceRegisterPaymentProcedure, opts...),
	}
}

func (c *LedgerServiceClient) GetHistory(ctx context.Context, req *connect.Request[GetHistoryRequest]) (*connect.Response[GetHistoryResponse], error) {
	return c.getHistory.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetBalance(ctx context.Context, req *connect.Request[GetBalanceRequest]) (*connect.Response[GetBalanceResponse], error) {
	return c.getBalance.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) RegisterPayment(ctx context.Context, req *connect.Request[RegisterPaymentRequest]) (*connect.Response[RegisterPaymentResponse], error) {
	return c.registerPayment.CallUnary(ctx, req)
}
