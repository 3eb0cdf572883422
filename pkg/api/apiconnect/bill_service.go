// Package apiconnect wires the api message types to Connect handlers and
// clients, in the shape protoc-gen-connect-go would produce.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/htn0810/Bill-Sharing/pkg/api"
)

// BillServiceName is the fully-qualified name of the BillService service.
const BillServiceName = "billsharing.v1.BillService"

// Procedure paths of BillService.
const (
	BillServiceCreateBillProcedure   = "/billsharing.v1.BillService/CreateBill"
	BillServiceListBillsProcedure    = "/billsharing.v1.BillService/ListBills"
	BillServiceGetBillProcedure      = "/billsharing.v1.BillService/GetBill"
	BillServiceCompleteBillProcedure = "/billsharing.v1.BillService/CompleteBill"
	BillServiceAddMemberProcedure    = "/billsharing.v1.BillService/AddMember"
	BillServiceRemoveMemberProcedure = "/billsharing.v1.BillService/RemoveMember"
	BillServiceGetSummaryProcedure   = "/billsharing.v1.BillService/GetSummary"
)

// BillServiceClient is a client for the billsharing.v1.BillService service.
type BillServiceClient interface {
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	CompleteBill(context.Context, *connect.Request[api.CompleteBillRequest]) (*connect.Response[api.CompleteBillResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
}

// NewBillServiceClient constructs a client for the billsharing.v1.BillService
// service. The JSON codec is always used.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &billServiceClient{
		createBill:   connect.NewClient[api.CreateBillRequest, api.CreateBillResponse](httpClient, baseURL+BillServiceCreateBillProcedure, opts...),
		listBills:    connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](httpClient, baseURL+BillServiceListBillsProcedure, opts...),
		getBill:      connect.NewClient[api.GetBillRequest, api.GetBillResponse](httpClient, baseURL+BillServiceGetBillProcedure, opts...),
		completeBill: connect.NewClient[api.CompleteBillRequest, api.CompleteBillResponse](httpClient, baseURL+BillServiceCompleteBillProcedure, opts...),
		addMember:    connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+BillServiceAddMemberProcedure, opts...),
		removeMember: connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL+BillServiceRemoveMemberProcedure, opts...),
		getSummary:   connect.NewClient[api.GetSummaryRequest, api.GetSummaryResponse](httpClient, baseURL+BillServiceGetSummaryProcedure, opts...),
	}
}

type billServiceClient struct {
	createBill   *connect.Client[api.CreateBillRequest, api.CreateBillResponse]
	listBills    *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
	getBill      *connect.Client[api.GetBillRequest, api.GetBillResponse]
	completeBill *connect.Client[api.CompleteBillRequest, api.CompleteBillResponse]
	addMember    *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	removeMember *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
	getSummary   *connect.Client[api.GetSummaryRequest, api.GetSummaryResponse]
}

func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *billServiceClient) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *billServiceClient) CompleteBill(ctx context.Context, req *connect.Request[api.CompleteBillRequest]) (*connect.Response[api.CompleteBillResponse], error) {
	return c.completeBill.CallUnary(ctx, req)
}

func (c *billServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *billServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *billServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

// BillServiceHandler is implemented by the server side of BillService.
type BillServiceHandler interface {
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	CompleteBill(context.Context, *connect.Request[api.CompleteBillRequest]) (*connect.Response[api.CompleteBillResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
}

// NewBillServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	handlers := map[string]http.Handler{
		BillServiceCreateBillProcedure:   connect.NewUnaryHandler(BillServiceCreateBillProcedure, svc.CreateBill, opts...),
		BillServiceListBillsProcedure:    connect.NewUnaryHandler(BillServiceListBillsProcedure, svc.ListBills, opts...),
		BillServiceGetBillProcedure:      connect.NewUnaryHandler(BillServiceGetBillProcedure, svc.GetBill, opts...),
		BillServiceCompleteBillProcedure: connect.NewUnaryHandler(BillServiceCompleteBillProcedure, svc.CompleteBill, opts...),
		BillServiceAddMemberProcedure:    connect.NewUnaryHandler(BillServiceAddMemberProcedure, svc.AddMember, opts...),
		BillServiceRemoveMemberProcedure: connect.NewUnaryHandler(BillServiceRemoveMemberProcedure, svc.RemoveMember, opts...),
		BillServiceGetSummaryProcedure:   connect.NewUnaryHandler(BillServiceGetSummaryProcedure, svc.GetSummary, opts...),
	}
	return "/" + BillServiceName + "/", routeTo(handlers)
}

// UnimplementedBillServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBillServiceHandler struct{}

func (UnimplementedBillServiceHandler) CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return nil, unimplemented(BillServiceCreateBillProcedure)
}

func (UnimplementedBillServiceHandler) ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return nil, unimplemented(BillServiceListBillsProcedure)
}

func (UnimplementedBillServiceHandler) GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return nil, unimplemented(BillServiceGetBillProcedure)
}

func (UnimplementedBillServiceHandler) CompleteBill(context.Context, *connect.Request[api.CompleteBillRequest]) (*connect.Response[api.CompleteBillResponse], error) {
	return nil, unimplemented(BillServiceCompleteBillProcedure)
}

func (UnimplementedBillServiceHandler) AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return nil, unimplemented(BillServiceAddMemberProcedure)
}

func (UnimplementedBillServiceHandler) RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return nil, unimplemented(BillServiceRemoveMemberProcedure)
}

func (UnimplementedBillServiceHandler) GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return nil, unimplemented(BillServiceGetSummaryProcedure)
}

func routeTo(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(procedure+" is not implemented"))
}
