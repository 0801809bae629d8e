package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"aeroclub/flightdesk/internal/auth"
	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/logging"
	"aeroclub/flightdesk/internal/models/dtos"
)

// InvoiceStore is the persistence surface billing depends on. The write
// paths are stored procedures and transactional; the service never composes
// partial writes around them.
type InvoiceStore interface {
	CreateInvoiceWithItems(ctx context.Context, invoice map[string]interface{}, items []map[string]interface{}) (string, error)
	ProcessPayment(ctx context.Context, payment map[string]interface{}) (string, error)
	GetInvoiceDocument(ctx context.Context, invoiceID, orgID string) (json.RawMessage, error)
}

// LinkSigner mints and burns single-use download tokens.
type LinkSigner interface {
	GenerateInvoiceLink(invoiceID, organizationID string, ttl time.Duration) (string, time.Time, error)
	ValidateToken(ctx context.Context, tokenString string) (*common.SignedToken, error)
}

const invoiceLinkTTL = 24 * time.Hour

// BillingService fronts invoicing and payments.
type BillingService struct {
	store   InvoiceStore
	signer  LinkSigner
	baseURL string
}

func NewBillingService(store InvoiceStore, signer LinkSigner, baseURL string) *BillingService {
	return &BillingService{
		store:   store,
		signer:  signer,
		baseURL: baseURL,
	}
}

// CreateInvoice stamps the caller's organization onto the payload and hands
// it to create_invoice_with_items.
func (svc *BillingService) CreateInvoice(ctx context.Context, claims auth.UserClaims, req dtos.CreateInvoiceReq) (*dtos.ProcedureResult, error) {
	if len(req.Items) == 0 {
		return nil, NewValidationError("An invoice needs at least one line item")
	}

	invoice := req.Invoice
	if invoice == nil {
		invoice = map[string]interface{}{}
	}
	invoice["organization_id"] = claims.OrganizationID()
	invoice["created_by"] = claims.UserID()

	id, err := svc.store.CreateInvoiceWithItems(ctx, invoice, req.Items)
	if err != nil {
		return nil, err
	}

	logging.Info("Invoice created",
		"invoice_id", id,
		"organization_id", claims.OrganizationID(),
		"items", len(req.Items),
	)
	return &dtos.ProcedureResult{Message: "Invoice created", ID: id}, nil
}

// ProcessPayment records a payment against an invoice via process_payment.
func (svc *BillingService) ProcessPayment(ctx context.Context, claims auth.UserClaims, req dtos.ProcessPaymentReq) (*dtos.ProcedureResult, error) {
	if len(req.Payment) == 0 {
		return nil, NewValidationError("Payment details are required")
	}

	payment := req.Payment
	payment["organization_id"] = claims.OrganizationID()
	payment["processed_by"] = claims.UserID()

	id, err := svc.store.ProcessPayment(ctx, payment)
	if err != nil {
		return nil, err
	}

	logging.Info("Payment processed",
		"payment_id", id,
		"organization_id", claims.OrganizationID(),
	)
	return &dtos.ProcedureResult{Message: "Payment processed", ID: id}, nil
}

// InvoiceLink mints a single-use presigned download link for an invoice.
func (svc *BillingService) InvoiceLink(_ context.Context, claims auth.UserClaims, invoiceID string) (*dtos.SignedLink, error) {
	if svc.signer == nil {
		return nil, fmt.Errorf("url signing is not configured")
	}

	token, expiresAt, err := svc.signer.GenerateInvoiceLink(invoiceID, claims.OrganizationID(), invoiceLinkTTL)
	if err != nil {
		return nil, err
	}

	return &dtos.SignedLink{
		URL:       fmt.Sprintf("%s/api/v1/invoices/download?token=%s", svc.baseURL, token),
		ExpiresAt: expiresAt,
	}, nil
}

// DownloadInvoice redeems a presigned token and returns the invoice
// document. The token is the credential; validating it burns the jti, so a
// link serves exactly one download.
func (svc *BillingService) DownloadInvoice(ctx context.Context, token string) (json.RawMessage, error) {
	if svc.signer == nil {
		return nil, fmt.Errorf("url signing is not configured")
	}
	if token == "" {
		return nil, NewValidationError("A download token is required")
	}

	signed, err := svc.signer.ValidateToken(ctx, token)
	if err != nil {
		logging.Warn("Invoice download rejected", "error", err.Error())
		return nil, NewForbiddenError(constants.MsgLinkInvalid)
	}

	doc, err := svc.store.GetInvoiceDocument(ctx, signed.InvoiceID, signed.OrganizationID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, NewNotFoundError("Invoice not found")
	}

	logging.Info("Invoice downloaded",
		"invoice_id", signed.InvoiceID,
		"organization_id", signed.OrganizationID,
	)
	return doc, nil
}
