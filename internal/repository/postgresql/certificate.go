package postgresql

import (
	"context"
	"errors"

	"github.com/hrms-app/hrms-backend-go/internal/domain/certificate"
	"github.com/hrms-app/hrms-backend-go/internal/domain/user"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type certificateRepositoryImpl struct {
	db *database.DB
}

func NewCertificateRepository(db *database.DB) certificate.CertificateRepository {
	return &certificateRepositoryImpl{db: db}
}

const certificateColumns = `id, user_id, title, issuer, issued_at, expires_at, file_url, created_at, updated_at`

func scanCertificate(row pgx.Row) (certificate.Certificate, error) {
	var c certificate.Certificate
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Issuer, &c.IssuedAt, &c.ExpiresAt, &c.FileURL, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create implements certificate.CertificateRepository.
func (r *certificateRepositoryImpl) Create(ctx context.Context, c certificate.Certificate) (certificate.Certificate, error) {
	q := GetQuerier(ctx, r.db)

	c.ID = newID()
	err := q.QueryRow(ctx, `
		INSERT INTO certificates (id, user_id, title, issuer, issued_at, expires_at, file_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, c.ID, c.UserID, c.Title, c.Issuer, c.IssuedAt, c.ExpiresAt, c.FileURL).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return certificate.Certificate{}, user.ErrUserNotFound
		}
		return certificate.Certificate{}, err
	}

	return c, nil
}

// GetByID implements certificate.CertificateRepository.
func (r *certificateRepositoryImpl) GetByID(ctx context.Context, id string) (certificate.Certificate, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCertificate(q.QueryRow(ctx, `SELECT `+certificateColumns+` FROM certificates WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return certificate.Certificate{}, certificate.ErrCertificateNotFound
		}
		return certificate.Certificate{}, err
	}
	return c, nil
}

// ListByUser implements certificate.CertificateRepository.
func (r *certificateRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]certificate.Certificate, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+certificateColumns+`
		FROM certificates
		WHERE user_id = $1
		ORDER BY issued_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	certificates := make([]certificate.Certificate, 0)
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		certificates = append(certificates, c)
	}

	return certificates, rows.Err()
}

// Delete implements certificate.CertificateRepository.
func (r *certificateRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM certificates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return certificate.ErrCertificateNotFound
	}
	return nil
}
