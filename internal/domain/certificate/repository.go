package certificate

import "context"

type CertificateRepository interface {
	Create(ctx context.Context, c Certificate) (Certificate, error)
	GetByID(ctx context.Context, id string) (Certificate, error)
	ListByUser(ctx context.Context, userID string) ([]Certificate, error)
	Delete(ctx context.Context, id string) error
}
