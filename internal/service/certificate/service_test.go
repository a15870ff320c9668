package certificate

import (
	"context"
	"testing"
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/domain/certificate"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userID = "0190a5d2-7c1e-7000-8000-000000000001"

type fakeCertificateRepo struct {
	certificate.CertificateRepository
	certs []certificate.Certificate
}

func (f *fakeCertificateRepo) Create(ctx context.Context, c certificate.Certificate) (certificate.Certificate, error) {
	c.ID = "cert-" + c.Title
	f.certs = append(f.certs, c)
	return c, nil
}

func (f *fakeCertificateRepo) ListByUser(ctx context.Context, userID string) ([]certificate.Certificate, error) {
	return f.certs, nil
}

func TestCreateAndList(t *testing.T) {
	repo := &fakeCertificateRepo{}
	svc := &CertificateServiceImpl{
		CertificateRepository: repo,
		now:                   func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) },
	}
	ctx := context.Background()

	expires := "2025-01-31"
	_, err := svc.Create(ctx, certificate.CreateCertificateRequest{
		UserID:    userID,
		Title:     "AWS Solutions Architect",
		Issuer:    "Amazon",
		IssuedAt:  "2022-01-31",
		ExpiresAt: &expires,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, certificate.CreateCertificateRequest{
		UserID:   userID,
		Title:    "CKA",
		Issuer:   "CNCF",
		IssuedAt: "2024-06-01",
	})
	require.NoError(t, err)

	list, err := svc.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Expired)
	assert.False(t, list[1].Expired)
}

func TestCreate_ExpiryBeforeIssue(t *testing.T) {
	svc := NewCertificateService(&fakeCertificateRepo{})

	expires := "2020-01-01"
	_, err := svc.Create(context.Background(), certificate.CreateCertificateRequest{
		UserID:    userID,
		Title:     "CKA",
		Issuer:    "CNCF",
		IssuedAt:  "2024-06-01",
		ExpiresAt: &expires,
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "expires_at")
}
