package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/htn0810/Bill-Sharing/internal/calculator"
	"github.com/htn0810/Bill-Sharing/internal/ledger"
	"github.com/htn0810/Bill-Sharing/internal/storage"
)

// toConnectError maps ledger, calculator and storage errors onto Connect codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrMalformedRecord):
		return connect.NewError(connect.CodeDataLoss, err)
	case errors.Is(err, calculator.ErrInvalidState):
		// Covers ledger.ErrBillNotActive, ErrLastMember and ErrMemberHasExpenses.
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, ledger.ErrValidation),
		errors.Is(err, ledger.ErrDuplicateMember),
		errors.Is(err, ledger.ErrUnknownCategory),
		errors.Is(err, calculator.ErrInvalidReference),
		errors.Is(err, calculator.ErrInvalidAmount):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
