package service

import (
	"context"
	"strings"

	"github.com/flexprice/invoice-dashboard/internal/api/dto"
	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/flexprice/invoice-dashboard/internal/types"
)

// InvoiceService runs the invoice form mutations
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.InvoiceFormRequest) (*dto.MutationResponse, error)
	UpdateInvoice(ctx context.Context, id string, req dto.InvoiceFormRequest) (*dto.MutationResponse, error)
	DeleteInvoice(ctx context.Context, id string) (*dto.MutationResponse, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.InvoiceFormRequest) (*dto.MutationResponse, error) {
	amount, err := req.Validate()
	if err != nil {
		return nil, s.persistenceError(ctx, "create_invoice", "Failed to create invoice", err)
	}

	inv := req.ToInvoice(amount)
	inv.Date = types.FormatDate(s.Clock())

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, s.persistenceError(ctx, "create_invoice", "Failed to create invoice", err)
	}

	s.Logger.Infow("created invoice",
		"customer_id", inv.CustomerID,
		"amount", inv.Amount,
		"status", inv.Status,
		"date", inv.Date,
	)

	s.Views.InvalidateView(ctx, types.ViewInvoices)
	return &dto.MutationResponse{Redirect: types.ViewInvoices}, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req dto.InvoiceFormRequest) (*dto.MutationResponse, error) {
	id, err := requireID(id)
	if err != nil {
		return nil, err
	}

	amount, err := req.Validate()
	if err != nil {
		return nil, s.persistenceError(ctx, "update_invoice", "Failed to update invoice", err)
	}

	inv := req.ToInvoice(amount)
	inv.ID = id

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, s.persistenceError(ctx, "update_invoice", "Failed to update invoice", err)
	}

	s.Logger.Infow("updated invoice",
		"invoice_id", id,
		"customer_id", inv.CustomerID,
		"amount", inv.Amount,
		"status", inv.Status,
	)

	s.Views.InvalidateView(ctx, types.ViewInvoices)
	return &dto.MutationResponse{Redirect: types.ViewInvoices}, nil
}

// DeleteInvoice removes the invoice without checking it exists first.
// Deleting a missing invoice succeeds.
func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) (*dto.MutationResponse, error) {
	id, err := requireID(id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.InvoiceRepo.Delete(ctx, id)
	if err != nil {
		return nil, s.persistenceError(ctx, "delete_invoice", "Failed to delete invoice", err)
	}

	s.Logger.Infow("deleted invoice", "invoice_id", id, "rows", deleted)

	s.Views.InvalidateView(ctx, types.ViewInvoices)
	return &dto.MutationResponse{}, nil
}

func requireID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ierr.NewError("invoice id is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation)
	}
	return id, nil
}
