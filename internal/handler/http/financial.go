package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrms-app/hrms-backend-go/internal/domain/financial"
	"github.com/hrms-app/hrms-backend-go/internal/handler/http/response"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/pagination"
)

type FinancialHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetByUser(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type FinancialHandlerImpl struct {
	financialService financial.FinancialService
}

func NewFinancialHandler(financialService financial.FinancialService) FinancialHandler {
	return &FinancialHandlerImpl{
		financialService: financialService,
	}
}

// Create implements FinancialHandler.
func (h *FinancialHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req financial.CreateFinancialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateFinancial decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.financialService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateFinancial service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Financial information created successfully", created)
}

// List implements FinancialHandler.
func (h *FinancialHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)

	records, total, err := h.financialService.List(r.Context(), p.Page, p.Limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, p.Meta(total))
}

// Get implements FinancialHandler.
func (h *FinancialHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.financialService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// GetByUser implements FinancialHandler.
func (h *FinancialHandlerImpl) GetByUser(w http.ResponseWriter, r *http.Request) {
	found, err := h.financialService.GetByUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Update implements FinancialHandler.
func (h *FinancialHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req financial.UpdateFinancialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateFinancial decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.financialService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Financial information updated successfully", updated)
}

// Delete implements FinancialHandler.
func (h *FinancialHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.financialService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Financial information deleted successfully", nil)
}
