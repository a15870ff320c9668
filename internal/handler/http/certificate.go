package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrms-app/hrms-backend-go/internal/domain/certificate"
	"github.com/hrms-app/hrms-backend-go/internal/handler/http/response"
)

type CertificateHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListByUser(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type CertificateHandlerImpl struct {
	certificateService certificate.CertificateService
}

func NewCertificateHandler(certificateService certificate.CertificateService) CertificateHandler {
	return &CertificateHandlerImpl{
		certificateService: certificateService,
	}
}

// Create implements CertificateHandler.
func (h *CertificateHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req certificate.CreateCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateCertificate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.certificateService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Certificate created successfully", created)
}

// ListByUser implements CertificateHandler.
func (h *CertificateHandlerImpl) ListByUser(w http.ResponseWriter, r *http.Request) {
	certificates, err := h.certificateService.ListByUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, certificates)
}

// Delete implements CertificateHandler.
func (h *CertificateHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.certificateService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Certificate deleted successfully", nil)
}
