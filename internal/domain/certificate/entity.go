package certificate

import "time"

type Certificate struct {
	ID        string
	UserID    string
	Title     string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt *time.Time
	FileURL   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired reports whether the certificate has lapsed as of now.
func (c Certificate) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
