package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrms-app/hrms-backend-go/internal/domain/job"
	"github.com/hrms-app/hrms-backend-go/internal/handler/http/response"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/pagination"
)

type JobHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListByUser(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type JobHandlerImpl struct {
	jobService job.JobService
}

func NewJobHandler(jobService job.JobService) JobHandler {
	return &JobHandlerImpl{
		jobService: jobService,
	}
}

// Create implements JobHandler.
func (h *JobHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req job.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateJob decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.jobService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateJob service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Job created successfully", created)
}

// List implements JobHandler.
func (h *JobHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)

	jobs, total, err := h.jobService.List(r.Context(), p.Page, p.Limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, jobs, p.Meta(total))
}

// Get implements JobHandler.
func (h *JobHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.jobService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// ListByUser implements JobHandler.
func (h *JobHandlerImpl) ListByUser(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobService.ListByUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, jobs)
}

// Update implements JobHandler.
func (h *JobHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req job.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateJob decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.jobService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job updated successfully", updated)
}

// Delete implements JobHandler.
func (h *JobHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.jobService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job deleted successfully", nil)
}
