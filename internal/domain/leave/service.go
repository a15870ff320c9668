package leave

import (
	"context"

	"github.com/hrms-app/hrms-backend-go/internal/domain/user"
)

// Actor is the authenticated caller a request is made on behalf of.
type Actor struct {
	UserID string
	Role   user.Role
}

func (a Actor) Can(p user.Permission) bool {
	return user.HasPermission(a.Role, p)
}

// RestorationResult describes what happened to the balance when an
// application was moved into Rejected.
type RestorationResult string

const (
	RestorationNotApplicable RestorationResult = "not_applicable"
	RestorationRestored      RestorationResult = "restored"
	RestorationFailed        RestorationResult = "failed"
)

type UpdateResult struct {
	Updated     bool
	Restoration RestorationResult
	Application *ApplicationResponse
}

type BalanceService interface {
	GetOrCreate(ctx context.Context, userID string) (BalanceResponse, error)
	Deduct(ctx context.Context, userID string, days int) (BalanceResponse, error)
	Restore(ctx context.Context, userID string, days int) (BalanceResponse, error)
	Initialize(ctx context.Context, req InitializeBalanceRequest) (BalanceResponse, error)
	GetByUser(ctx context.Context, userID string) (BalanceResponse, error)
	List(ctx context.Context, page, limit int) ([]BalanceResponse, int64, error)
	Patch(ctx context.Context, userID string, req PatchBalanceRequest) (BalanceResponse, error)
	ResetAll(ctx context.Context, req ResetBalancesRequest) (ResetBalancesResponse, error)
}

type ApplicationService interface {
	Create(ctx context.Context, actor Actor, req CreateApplicationRequest) (ApplicationResponse, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, req UpdateApplicationRequest) (UpdateResult, error)
	Get(ctx context.Context, actor Actor, id string) (ApplicationResponse, error)
	List(ctx context.Context, filter ApplicationFilter) (ListApplicationResponse, error)
	ListByUser(ctx context.Context, actor Actor, userID string, filter ApplicationFilter) (ListApplicationResponse, error)
	Delete(ctx context.Context, id string) error
}
