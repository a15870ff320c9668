package leave

import (
	"context"
)

// BalanceRepository - interface for leave_balance table
type BalanceRepository interface {
	// EnsureExists inserts b unless the user already has a balance row.
	EnsureExists(ctx context.Context, b Balance) error
	Create(ctx context.Context, b Balance) (Balance, error)
	GetByUserID(ctx context.Context, userID string) (Balance, error)
	// GetByUserIDForUpdate locks the row until the surrounding transaction ends.
	GetByUserIDForUpdate(ctx context.Context, userID string) (Balance, error)
	List(ctx context.Context, limit, offset int) ([]Balance, int64, error)
	// DeductAnnual returns ErrInsufficientBalance when no row has enough remaining days.
	DeductAnnual(ctx context.Context, userID string, days int) (Balance, error)
	RestoreAnnual(ctx context.Context, userID string, days int) (Balance, error)
	Patch(ctx context.Context, userID string, req PatchBalanceRequest) (Balance, error)
	// Upsert overwrites every column of the user's balance, creating it if needed.
	Upsert(ctx context.Context, b Balance) error
}

// ApplicationRepository - interface for application table
type ApplicationRepository interface {
	Create(ctx context.Context, a Application) (Application, error)
	GetByID(ctx context.Context, id string) (Application, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]Application, int64, error)
	// Update applies the patch and reports the number of rows changed.
	Update(ctx context.Context, id string, req UpdateApplicationRequest) (int64, error)
	Delete(ctx context.Context, id string) error
}
