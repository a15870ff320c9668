package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hrms-app/hrms-backend-go/internal/domain/leave"
	"github.com/hrms-app/hrms-backend-go/internal/handler/http/middleware"
	"github.com/hrms-app/hrms-backend-go/internal/handler/http/response"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/pagination"
)

type LeaveHandler interface {
	CreateApplication(w http.ResponseWriter, r *http.Request)
	UpdateApplication(w http.ResponseWriter, r *http.Request)
	GetApplication(w http.ResponseWriter, r *http.Request)
	ListApplications(w http.ResponseWriter, r *http.Request)
	ListUserApplications(w http.ResponseWriter, r *http.Request)
	DeleteApplication(w http.ResponseWriter, r *http.Request)

	GetUserBalance(w http.ResponseWriter, r *http.Request)
	InitializeBalance(w http.ResponseWriter, r *http.Request)
	ListBalances(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	PatchBalance(w http.ResponseWriter, r *http.Request)
	ResetBalances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	applicationService leave.ApplicationService
	balanceService     leave.BalanceService
}

func NewLeaveHandler(applicationService leave.ApplicationService, balanceService leave.BalanceService) LeaveHandler {
	return &LeaveHandlerImpl{
		applicationService: applicationService,
		balanceService:     balanceService,
	}
}

type updateApplicationResponse struct {
	Application        *leave.ApplicationResponse `json:"application,omitempty"`
	BalanceRestoration leave.RestorationResult    `json:"balanceRestoration"`
}

// CreateApplication implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateApplication decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	application, err := h.applicationService.Create(r.Context(), actor, req)
	if err != nil {
		slog.Error("CreateApplication service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Application created successfully", application)
}

// UpdateApplication implements LeaveHandler.
func (h *LeaveHandlerImpl) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	applicationID := chi.URLParam(r, "id")
	if applicationID == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	var req leave.UpdateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateApplication decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.applicationService.UpdateStatus(r.Context(), actor, applicationID, req)
	if err != nil {
		slog.Error("UpdateApplication service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if !result.Updated {
		response.SuccessWithMessage(w, "Application was not updated", nil)
		return
	}

	response.SuccessWithMessage(w, "Application updated successfully", updateApplicationResponse{
		Application:        result.Application,
		BalanceRestoration: result.Restoration,
	})
}

// GetApplication implements LeaveHandler.
func (h *LeaveHandlerImpl) GetApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	application, err := h.applicationService.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, application)
}

// ListApplications implements LeaveHandler.
func (h *LeaveHandlerImpl) ListApplications(w http.ResponseWriter, r *http.Request) {
	filter := applicationFilterFromRequest(r)
	if userID := r.URL.Query().Get("userId"); userID != "" {
		filter.UserID = &userID
	}

	result, err := h.applicationService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListUserApplications implements LeaveHandler.
func (h *LeaveHandlerImpl) ListUserApplications(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.applicationService.ListByUser(r.Context(), actor, chi.URLParam(r, "id"), applicationFilterFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteApplication implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	if err := h.applicationService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeleteApplication service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Application deleted successfully", nil)
}

// GetUserBalance implements LeaveHandler. A missing balance is created
// with the default allowance.
func (h *LeaveHandlerImpl) GetUserBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.balanceService.GetOrCreate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("GetUserBalance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// InitializeBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) InitializeBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.InitializeBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("InitializeBalance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balance, err := h.balanceService.Initialize(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave balance initialized successfully", balance)
}

// ListBalances implements LeaveHandler.
func (h *LeaveHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)

	balances, total, err := h.balanceService.List(r.Context(), p.Page, p.Limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, balances, p.Meta(total))
}

// GetBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.balanceService.GetByUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// PatchBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) PatchBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.PatchBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("PatchBalance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balance, err := h.balanceService.Patch(r.Context(), chi.URLParam(r, "userId"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balance updated successfully", balance)
}

// ResetBalances implements LeaveHandler.
func (h *LeaveHandlerImpl) ResetBalances(w http.ResponseWriter, r *http.Request) {
	// An empty body resets with the configured defaults.
	var req leave.ResetBalancesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("ResetBalances decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.balanceService.ResetAll(r.Context(), req)
	if err != nil {
		slog.Error("ResetBalances service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "All leave balances reset successfully", result)
}

// applicationFilterFromRequest reads status, type, startDate, endDate,
// page, limit and sort=field:asc|desc from the query string.
func applicationFilterFromRequest(r *http.Request) leave.ApplicationFilter {
	q := r.URL.Query()
	p := pagination.FromRequest(r)

	filter := leave.ApplicationFilter{
		Page:  p.Page,
		Limit: p.Limit,
	}

	if status := q.Get("status"); status != "" {
		filter.Status = &status
	}
	if leaveType := q.Get("type"); leaveType != "" {
		filter.Type = &leaveType
	}
	if startDate := q.Get("startDate"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := q.Get("endDate"); endDate != "" {
		filter.EndDate = &endDate
	}
	if sort := q.Get("sort"); sort != "" {
		field, order, _ := strings.Cut(sort, ":")
		filter.SortBy = field
		filter.SortOrder = strings.ToLower(order)
	}

	return filter
}
