package certificate

import "context"

type CertificateService interface {
	Create(ctx context.Context, req CreateCertificateRequest) (CertificateResponse, error)
	ListByUser(ctx context.Context, userID string) ([]CertificateResponse, error)
	Delete(ctx context.Context, id string) error
}
