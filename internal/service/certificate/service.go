package certificate

import (
	"context"
	"fmt"
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/domain/certificate"
)

type CertificateServiceImpl struct {
	certificate.CertificateRepository
	now func() time.Time
}

func NewCertificateService(certificateRepository certificate.CertificateRepository) certificate.CertificateService {
	return &CertificateServiceImpl{
		CertificateRepository: certificateRepository,
		now:                   time.Now,
	}
}

// Create implements certificate.CertificateService.
func (s *CertificateServiceImpl) Create(ctx context.Context, req certificate.CreateCertificateRequest) (certificate.CertificateResponse, error) {
	if err := req.Validate(); err != nil {
		return certificate.CertificateResponse{}, err
	}

	created, err := s.CertificateRepository.Create(ctx, req.ToEntity())
	if err != nil {
		return certificate.CertificateResponse{}, err
	}
	return certificate.ToResponse(created, s.now()), nil
}

// ListByUser implements certificate.CertificateService.
func (s *CertificateServiceImpl) ListByUser(ctx context.Context, userID string) ([]certificate.CertificateResponse, error) {
	certs, err := s.CertificateRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}

	now := s.now()
	responses := make([]certificate.CertificateResponse, 0, len(certs))
	for _, c := range certs {
		responses = append(responses, certificate.ToResponse(c, now))
	}
	return responses, nil
}

// Delete implements certificate.CertificateService.
func (s *CertificateServiceImpl) Delete(ctx context.Context, id string) error {
	return s.CertificateRepository.Delete(ctx, id)
}
