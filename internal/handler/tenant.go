package handler

import (
	"encoding/json"
	"net/http"

	"github.com/murithi/rentledger/internal/domain"
	"github.com/murithi/rentledger/internal/service"
	"github.com/murithi/rentledger/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TenantHandler struct {
	registry  *service.RegistryService
	validator *validator.Validate
}

func NewTenantHandler(registry *service.RegistryService) *TenantHandler {
	return &TenantHandler{
		registry:  registry,
		validator: validator.New(),
	}
}

// Create handles POST /tenants
func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	tenant, err := h.registry.CreateTenant(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, tenant)
}

// List handles GET /tenants
func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.registry.ListTenants(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, listings)
}

// Remove handles DELETE /tenants/{id}
func (h *TenantHandler) Remove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid tenant ID", err)
		return
	}

	if err := h.registry.RemoveTenant(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, map[string]string{"status": "inactive"})
}
