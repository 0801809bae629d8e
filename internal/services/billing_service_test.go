package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/models/dtos"
)

type fakeInvoiceStore struct {
	lastInvoice map[string]interface{}
	lastPayment map[string]interface{}

	doc           json.RawMessage
	fetchedID     string
	fetchedOrgID  string
	fetchedCalled int
}

func (f *fakeInvoiceStore) CreateInvoiceWithItems(_ context.Context, invoice map[string]interface{}, _ []map[string]interface{}) (string, error) {
	f.lastInvoice = invoice
	return "inv-1", nil
}

func (f *fakeInvoiceStore) ProcessPayment(_ context.Context, payment map[string]interface{}) (string, error) {
	f.lastPayment = payment
	return "pay-1", nil
}

func (f *fakeInvoiceStore) GetInvoiceDocument(_ context.Context, invoiceID, orgID string) (json.RawMessage, error) {
	f.fetchedCalled++
	f.fetchedID = invoiceID
	f.fetchedOrgID = orgID
	return f.doc, nil
}

type fakeSigner struct {
	signed    *common.SignedToken
	err       error
	validated string
}

func (f *fakeSigner) GenerateInvoiceLink(invoiceID, _ string, ttl time.Duration) (string, time.Time, error) {
	return "tok-" + invoiceID, time.Now().Add(ttl), nil
}

func (f *fakeSigner) ValidateToken(_ context.Context, token string) (*common.SignedToken, error) {
	f.validated = token
	if f.err != nil {
		return nil, f.err
	}
	return f.signed, nil
}

func TestCreateInvoiceStampsOrganization(t *testing.T) {
	store := &fakeInvoiceStore{}
	svc := NewBillingService(store, nil, "http://localhost:8080")
	orgID := "99999999-9999-9999-9999-999999999999"

	result, err := svc.CreateInvoice(context.Background(), testClaims(orgID), dtos.CreateInvoiceReq{
		Invoice: map[string]interface{}{"member_id": "m-1"},
		Items:   []map[string]interface{}{{"description": "Dual C172", "amount": 300.0}},
	})
	require.NoError(t, err)

	assert.Equal(t, "inv-1", result.ID)
	assert.Equal(t, orgID, store.lastInvoice["organization_id"], "callers cannot invoice into another organization")
}

func TestCreateInvoiceRequiresItems(t *testing.T) {
	svc := NewBillingService(&fakeInvoiceStore{}, nil, "")

	_, err := svc.CreateInvoice(context.Background(), testClaims("org-1"), dtos.CreateInvoiceReq{
		Invoice: map[string]interface{}{"member_id": "m-1"},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestInvoiceLinkPointsAtDownloadRoute(t *testing.T) {
	svc := NewBillingService(&fakeInvoiceStore{}, &fakeSigner{}, "http://localhost:8080")

	link, err := svc.InvoiceLink(context.Background(), testClaims("org-1"), "inv-1")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v1/invoices/download?token=tok-inv-1", link.URL)
	assert.True(t, link.ExpiresAt.After(time.Now()))
}

func TestDownloadInvoiceServesDocument(t *testing.T) {
	store := &fakeInvoiceStore{doc: json.RawMessage(`{"invoice":{"id":"inv-1"},"items":[]}`)}
	signer := &fakeSigner{signed: &common.SignedToken{
		InvoiceID:      "inv-1",
		OrganizationID: "org-1",
		TokenID:        "jti-1",
	}}
	svc := NewBillingService(store, signer, "")

	doc, err := svc.DownloadInvoice(context.Background(), "some-token")
	require.NoError(t, err)

	assert.JSONEq(t, `{"invoice":{"id":"inv-1"},"items":[]}`, string(doc))
	assert.Equal(t, "some-token", signer.validated)
	assert.Equal(t, "inv-1", store.fetchedID)
	assert.Equal(t, "org-1", store.fetchedOrgID, "the token's organization scopes the lookup")
}

func TestDownloadInvoiceRejectsBurnedToken(t *testing.T) {
	store := &fakeInvoiceStore{doc: json.RawMessage(`{}`)}
	signer := &fakeSigner{err: errors.New("token already used")}
	svc := NewBillingService(store, signer, "")

	_, err := svc.DownloadInvoice(context.Background(), "replayed-token")

	var ferr *ForbiddenError
	require.ErrorAs(t, err, &ferr)
	assert.Zero(t, store.fetchedCalled, "a rejected token must not reach the store")
}

func TestDownloadInvoiceUnknownInvoice(t *testing.T) {
	signer := &fakeSigner{signed: &common.SignedToken{
		InvoiceID:      "inv-gone",
		OrganizationID: "org-1",
		TokenID:        "jti-2",
	}}
	svc := NewBillingService(&fakeInvoiceStore{}, signer, "")

	_, err := svc.DownloadInvoice(context.Background(), "some-token")

	var nerr *NotFoundError
	require.ErrorAs(t, err, &nerr)
}

func TestProcessPaymentStampsCaller(t *testing.T) {
	store := &fakeInvoiceStore{}
	svc := NewBillingService(store, nil, "")

	result, err := svc.ProcessPayment(context.Background(), testClaims("org-1"), dtos.ProcessPaymentReq{
		Payment: map[string]interface{}{"invoice_id": "inv-1", "amount": 300.0},
	})
	require.NoError(t, err)

	assert.Equal(t, "pay-1", result.ID)
	assert.Equal(t, "org-1", store.lastPayment["organization_id"])
	assert.NotEmpty(t, store.lastPayment["processed_by"])
}
