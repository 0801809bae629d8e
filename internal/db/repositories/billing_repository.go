package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"aeroclub/flightdesk/internal/constants"

	"github.com/jmoiron/sqlx"
)

// BillingRepository wraps the transactional stored procedures. The
// procedures own their atomicity; this layer just marshals arguments and
// scans the returned id.
type BillingRepository struct {
	db *sqlx.DB
}

func NewBillingRepository(db *sqlx.DB) *BillingRepository {
	return &BillingRepository{db}
}

// CreateInvoiceWithItems invokes create_invoice_with_items and returns the
// new invoice id.
func (r *BillingRepository) CreateInvoiceWithItems(ctx context.Context, invoice map[string]interface{}, items []map[string]interface{}) (string, error) {
	invoiceJSON, err := json.Marshal(invoice)
	if err != nil {
		return "", fmt.Errorf("failed to marshal invoice: %w", err)
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to marshal invoice items: %w", err)
	}

	var id string
	if err := r.db.QueryRowxContext(ctx, constants.CallCreateInvoiceWithItems, invoiceJSON, itemsJSON).Scan(&id); err != nil {
		return "", fmt.Errorf("create_invoice_with_items failed: %w", err)
	}
	return id, nil
}

// ProcessPayment invokes process_payment and returns the new payment id.
func (r *BillingRepository) ProcessPayment(ctx context.Context, payment map[string]interface{}) (string, error) {
	paymentJSON, err := json.Marshal(payment)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payment: %w", err)
	}

	var id string
	if err := r.db.QueryRowxContext(ctx, constants.CallProcessPayment, paymentJSON).Scan(&id); err != nil {
		return "", fmt.Errorf("process_payment failed: %w", err)
	}
	return id, nil
}

// GetInvoiceDocument returns the invoice with its line items as a single
// json document. Returns (nil, nil) when no such invoice exists in the
// organization.
func (r *BillingRepository) GetInvoiceDocument(ctx context.Context, invoiceID, orgID string) (json.RawMessage, error) {
	var doc json.RawMessage
	err := r.db.QueryRowxContext(ctx, constants.GetInvoiceDocument, invoiceID, orgID).Scan(&doc)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch invoice document: %w", err)
	}
	return doc, nil
}

// CreateTechLogEntry invokes create_tech_log_entry for a flight-times
// record and returns the tech log entry id.
func (r *BillingRepository) CreateTechLogEntry(ctx context.Context, bookingFlightTimesID string) (string, error) {
	var id string
	if err := r.db.QueryRowxContext(ctx, constants.CallCreateTechLogEntry, bookingFlightTimesID).Scan(&id); err != nil {
		return "", fmt.Errorf("create_tech_log_entry failed: %w", err)
	}
	return id, nil
}
