package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/murithi/rentledger/internal/domain"
	"github.com/murithi/rentledger/internal/service"
	"github.com/murithi/rentledger/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	ledger    *service.LedgerService
	reports   *service.ReportService
	validator *validator.Validate
}

func NewPaymentHandler(ledger *service.LedgerService, reports *service.ReportService) *PaymentHandler {
	return &PaymentHandler{
		ledger:    ledger,
		reports:   reports,
		validator: validator.New(),
	}
}

// Record handles POST /payments
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var request domain.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	result, err := h.ledger.RecordPayment(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, result)
}

// List handles GET /payments
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.ledger.ListPayments(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, records)
}

// Receipt handles GET /payments/{id}/receipt and streams a PDF
func (h *PaymentHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid payment ID", err)
		return
	}

	pdf, err := h.reports.RenderReceipt(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", id))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		return
	}
}
