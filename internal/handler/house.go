package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/murithi/rentledger/internal/domain"
	"github.com/murithi/rentledger/internal/service"
	"github.com/murithi/rentledger/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type HouseHandler struct {
	registry  *service.RegistryService
	ledger    *service.LedgerService
	validator *validator.Validate
}

func NewHouseHandler(registry *service.RegistryService, ledger *service.LedgerService) *HouseHandler {
	return &HouseHandler{
		registry:  registry,
		ledger:    ledger,
		validator: validator.New(),
	}
}

// Create handles POST /houses
func (h *HouseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateHouseRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	house, err := h.registry.CreateHouse(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, house)
}

// List handles GET /houses
func (h *HouseHandler) List(w http.ResponseWriter, r *http.Request) {
	houses, err := h.registry.ListHouses(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, houses)
}

// Ledger handles GET /houses/{id}/ledger/{year}
func (h *HouseHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid house ID", err)
		return
	}

	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		response.BadRequest(w, "Invalid year", err)
		return
	}

	ledger, err := h.ledger.GetLedger(r.Context(), id, year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, ledger)
}

// AssignTenant handles POST /houses/{id}/tenants
func (h *HouseHandler) AssignTenant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	houseID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid house ID", err)
		return
	}

	var request domain.AssignTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	occupancy, err := h.registry.AssignTenant(r.Context(), houseID, request.TenantID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, occupancy)
}

// EndAssignment handles DELETE /houses/{id}/tenants/{tenantId}
func (h *HouseHandler) EndAssignment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	houseID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid house ID", err)
		return
	}

	tenantID, err := uuid.Parse(vars["tenantId"])
	if err != nil {
		response.BadRequest(w, "Invalid tenant ID", err)
		return
	}

	if err := h.registry.EndAssignment(r.Context(), houseID, tenantID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, map[string]string{"status": "ended"})
}
