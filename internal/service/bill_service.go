package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/htn0810/Bill-Sharing/internal/format"
	"github.com/htn0810/Bill-Sharing/internal/ledger"
	"github.com/htn0810/Bill-Sharing/pkg/api"
	"github.com/htn0810/Bill-Sharing/pkg/api/apiconnect"
)

var _ apiconnect.BillServiceHandler = (*BillService)(nil)

// BillService implements the Connect BillService
type BillService struct {
	ledger    *ledger.Ledger
	formatter *format.Formatter
}

// NewBillService creates a new BillService on top of the given ledger.
func NewBillService(l *ledger.Ledger, f *format.Formatter) *BillService {
	return &BillService{ledger: l, formatter: f}
}

// CreateBill opens a new bill.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	slog.Info("CreateBill request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	bill, err := s.ledger.CreateBill(ctx, ledger.BillInput{Name: req.Msg.Name, Members: req.Msg.Members})
	if err != nil {
		slog.Error("CreateBill failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Bill created", "bill_id", bill.ID)

	return connect.NewResponse(&api.CreateBillResponse{Bill: toAPIBill(s.formatter, bill)}), nil
}

// ListBills returns every bill, newest first.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	slog.Info("ListBills request received")

	bills, err := s.ledger.ListBills(ctx)
	if err != nil {
		slog.Error("ListBills failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Bill, len(bills))
	for i, b := range bills {
		out[i] = toAPIBill(s.formatter, b)
	}

	slog.Info("ListBills successful", "count", len(bills))

	return connect.NewResponse(&api.ListBillsResponse{Bills: out}), nil
}

// GetBill retrieves a bill by ID.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	slog.Info("GetBill request received", "bill_id", req.Msg.BillID)

	bill, err := s.ledger.GetBill(ctx, req.Msg.BillID)
	if err != nil {
		slog.Error("GetBill failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetBillResponse{Bill: toAPIBill(s.formatter, bill)}), nil
}

// CompleteBill closes an active bill.
func (s *BillService) CompleteBill(ctx context.Context, req *connect.Request[api.CompleteBillRequest]) (*connect.Response[api.CompleteBillResponse], error) {
	slog.Info("CompleteBill request received", "bill_id", req.Msg.BillID)

	bill, err := s.ledger.CompleteBill(ctx, req.Msg.BillID)
	if err != nil {
		slog.Error("CompleteBill failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Bill completed", "bill_id", bill.ID)

	return connect.NewResponse(&api.CompleteBillResponse{Bill: toAPIBill(s.formatter, bill)}), nil
}

// AddMember adds a member to an active bill.
func (s *BillService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	slog.Info("AddMember request received", "bill_id", req.Msg.BillID, "member", req.Msg.Name)

	bill, err := s.ledger.AddMember(ctx, req.Msg.BillID, req.Msg.Name)
	if err != nil {
		slog.Error("AddMember failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddMemberResponse{Bill: toAPIBill(s.formatter, bill)}), nil
}

// RemoveMember removes a member from an active bill.
func (s *BillService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	slog.Info("RemoveMember request received", "bill_id", req.Msg.BillID, "member", req.Msg.Name)

	bill, err := s.ledger.RemoveMember(ctx, req.Msg.BillID, req.Msg.Name)
	if err != nil {
		slog.Error("RemoveMember failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RemoveMemberResponse{Bill: toAPIBill(s.formatter, bill)}), nil
}

// GetSummary computes balances, settlement transfers and spending breakdowns.
func (s *BillService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	slog.Info("GetSummary request received", "bill_id", req.Msg.BillID)

	summary, err := s.ledger.Summary(ctx, req.Msg.BillID)
	if err != nil {
		slog.Error("GetSummary failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Debug("Summary computed",
		"bill_id", req.Msg.BillID,
		"expenses", len(summary.Expenses),
		"transfers", len(summary.Transfers),
		"grand_total", summary.GrandTotal.String(),
	)

	return connect.NewResponse(&api.GetSummaryResponse{Summary: toAPISummary(s.formatter, summary)}), nil
}
