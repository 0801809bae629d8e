package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"aeroclub/flightdesk/internal/auth"
	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/models/dtos"
)

// CreateInvoiceHandler handles POST /api/v1/invoices
func (h *Handlers) CreateInvoiceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.CreateInvoiceReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		result, err := h.deps.Services.Billing.CreateInvoice(r.Context(), claims, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, result.Message, result, http.StatusCreated)
	}
}

// ProcessPaymentHandler handles POST /api/v1/payments
func (h *Handlers) ProcessPaymentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.ProcessPaymentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		result, err := h.deps.Services.Billing.ProcessPayment(r.Context(), claims, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, result.Message, result)
	}
}

// DownloadInvoiceHandler handles GET /api/v1/invoices/download?token=...
// The presigned token is the only credential; the route carries no session.
func (h *Handlers) DownloadInvoiceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		doc, err := h.deps.Services.Billing.DownloadInvoice(r.Context(), r.URL.Query().Get("token"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="invoice.json"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc)
	}
}

// InvoiceLinkHandler handles GET /api/v1/invoices/{id}/link: mints a
// single-use presigned download link.
func (h *Handlers) InvoiceLinkHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		invoiceID := chi.URLParam(r, "id")

		link, err := h.deps.Services.Billing.InvoiceLink(r.Context(), claims, invoiceID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "", link)
	}
}
