package certificate

import (
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/pkg/validator"
)

type CreateCertificateRequest struct {
	UserID    string  `json:"user_id"`
	Title     string  `json:"title"`
	Issuer    string  `json:"issuer"`
	IssuedAt  string  `json:"issued_at"`
	ExpiresAt *string `json:"expires_at,omitempty"`
	FileURL   *string `json:"file_url,omitempty"`
}

func (r *CreateCertificateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	} else if !validator.IsValidUUID(r.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}
	if validator.IsEmpty(r.Title) {
		errs.Add("title", "title is required")
	}
	if validator.IsEmpty(r.Issuer) {
		errs.Add("issuer", "issuer is required")
	}

	issued, issuedOK := validator.IsValidDate(r.IssuedAt)
	if !issuedOK {
		errs.Add("issued_at", "issued_at must be in YYYY-MM-DD format")
	}
	if r.ExpiresAt != nil {
		expires, ok := validator.IsValidDate(*r.ExpiresAt)
		if !ok {
			errs.Add("expires_at", "expires_at must be in YYYY-MM-DD format")
		} else if issuedOK && expires.Before(issued) {
			errs.Add("expires_at", "expires_at must not be before issued_at")
		}
	}

	return errs.Err()
}

func (r *CreateCertificateRequest) ToEntity() Certificate {
	c := Certificate{
		UserID:  r.UserID,
		Title:   r.Title,
		Issuer:  r.Issuer,
		FileURL: r.FileURL,
	}
	c.IssuedAt, _ = validator.IsValidDate(r.IssuedAt)
	if r.ExpiresAt != nil {
		expires, _ := validator.IsValidDate(*r.ExpiresAt)
		c.ExpiresAt = &expires
	}
	return c
}

type CertificateResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Title     string  `json:"title"`
	Issuer    string  `json:"issuer"`
	IssuedAt  string  `json:"issued_at"`
	ExpiresAt *string `json:"expires_at,omitempty"`
	FileURL   *string `json:"file_url,omitempty"`
	Expired   bool    `json:"expired"`
}

func ToResponse(c Certificate, now time.Time) CertificateResponse {
	resp := CertificateResponse{
		ID:       c.ID,
		UserID:   c.UserID,
		Title:    c.Title,
		Issuer:   c.Issuer,
		IssuedAt: c.IssuedAt.Format(validator.DateLayout),
		FileURL:  c.FileURL,
		Expired:  c.IsExpired(now),
	}
	if c.ExpiresAt != nil {
		exp := c.ExpiresAt.Format(validator.DateLayout)
		resp.ExpiresAt = &exp
	}
	return resp
}
