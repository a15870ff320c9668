package leave

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/domain/job"
	"github.com/hrms-app/hrms-backend-go/internal/domain/leave"
	"github.com/hrms-app/hrms-backend-go/internal/domain/user"
)

// memStore backs the fake repositories. fakeTransactor snapshots it so a
// failed transaction leaves it untouched.
type memStore struct {
	mu       sync.Mutex
	balances map[string]leave.Balance
	apps     map[string]leave.Application
	seq      int
}

func newMemStore() *memStore {
	return &memStore{
		balances: make(map[string]leave.Balance),
		apps:     make(map[string]leave.Application),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

// fakeTransactor runs one transaction at a time, standing in for the row
// locks the services take. Transactions are never nested.
type fakeTransactor struct {
	mu    sync.Mutex
	store *memStore
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.store.mu.Lock()
	balances := make(map[string]leave.Balance, len(f.store.balances))
	for k, v := range f.store.balances {
		balances[k] = v
	}
	apps := make(map[string]leave.Application, len(f.store.apps))
	for k, v := range f.store.apps {
		apps[k] = v
	}
	f.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.store.mu.Lock()
		f.store.balances = balances
		f.store.apps = apps
		f.store.mu.Unlock()
		return err
	}
	return nil
}

type fakeBalanceRepo struct {
	store *memStore

	restoreErr error
	upsertErr  func(userID string) error
}

func (r *fakeBalanceRepo) EnsureExists(ctx context.Context, b leave.Balance) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.balances[b.UserID]; ok {
		return nil
	}
	b.ID = r.store.nextID("bal")
	r.store.balances[b.UserID] = b
	return nil
}

func (r *fakeBalanceRepo) Create(ctx context.Context, b leave.Balance) (leave.Balance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.balances[b.UserID]; ok {
		return leave.Balance{}, leave.ErrBalanceAlreadyExists
	}
	b.ID = r.store.nextID("bal")
	r.store.balances[b.UserID] = b
	return b, nil
}

func (r *fakeBalanceRepo) GetByUserID(ctx context.Context, userID string) (leave.Balance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.balances[userID]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (r *fakeBalanceRepo) GetByUserIDForUpdate(ctx context.Context, userID string) (leave.Balance, error) {
	return r.GetByUserID(ctx, userID)
}

func (r *fakeBalanceRepo) List(ctx context.Context, limit, offset int) ([]leave.Balance, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []leave.Balance
	for _, b := range r.store.balances {
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID < all[j].UserID })
	total := int64(len(all))
	if offset >= len(all) {
		return []leave.Balance{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeBalanceRepo) DeductAnnual(ctx context.Context, userID string, days int) (leave.Balance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.balances[userID]
	if !ok || b.AnnualLeaveRemaining < days {
		return leave.Balance{}, leave.ErrInsufficientBalance
	}
	b.AnnualLeaveUsed += days
	b.AnnualLeaveRemaining -= days
	r.store.balances[userID] = b
	return b, nil
}

func (r *fakeBalanceRepo) RestoreAnnual(ctx context.Context, userID string, days int) (leave.Balance, error) {
	if r.restoreErr != nil {
		return leave.Balance{}, r.restoreErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.balances[userID]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	b.AnnualLeaveUsed -= days
	b.AnnualLeaveRemaining += days
	r.store.balances[userID] = b
	return b, nil
}

func (r *fakeBalanceRepo) Patch(ctx context.Context, userID string, req leave.PatchBalanceRequest) (leave.Balance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.balances[userID]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	if req.AnnualLeaveTotal != nil {
		b.AnnualLeaveTotal = *req.AnnualLeaveTotal
	}
	if req.AnnualLeaveUsed != nil {
		b.AnnualLeaveUsed = *req.AnnualLeaveUsed
	}
	if req.AnnualLeaveRemaining != nil {
		b.AnnualLeaveRemaining = *req.AnnualLeaveRemaining
	}
	if req.SickLeaveDays != nil {
		b.SickLeaveDays = *req.SickLeaveDays
	}
	if req.Year != nil {
		b.Year = *req.Year
	}
	r.store.balances[userID] = b
	return b, nil
}

func (r *fakeBalanceRepo) Upsert(ctx context.Context, b leave.Balance) error {
	if r.upsertErr != nil {
		if err := r.upsertErr(b.UserID); err != nil {
			return err
		}
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if existing, ok := r.store.balances[b.UserID]; ok {
		b.ID = existing.ID
	} else {
		b.ID = r.store.nextID("bal")
	}
	r.store.balances[b.UserID] = b
	return nil
}

type fakeApplicationRepo struct {
	store *memStore

	createErr error
	// updateRows overrides the affected-row count when set
	updateRows *int64
	// onLockedRead runs after GetByIDForUpdate, while the transaction is open
	onLockedRead func()
}

func (r *fakeApplicationRepo) Create(ctx context.Context, a leave.Application) (leave.Application, error) {
	if r.createErr != nil {
		return leave.Application{}, r.createErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a.ID = r.store.nextID("app")
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.store.apps[a.ID] = a
	return a, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id string) (leave.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.apps[id]
	if !ok {
		return leave.Application{}, leave.ErrApplicationNotFound
	}
	return a, nil
}

func (r *fakeApplicationRepo) GetByIDForUpdate(ctx context.Context, id string) (leave.Application, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return leave.Application{}, err
	}
	if r.onLockedRead != nil {
		r.onLockedRead()
	}
	return a, nil
}

func (r *fakeApplicationRepo) List(ctx context.Context, filter leave.ApplicationFilter) ([]leave.Application, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := make([]leave.Application, 0)
	for _, a := range r.store.apps {
		if filter.UserID != nil && a.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && string(a.Status) != *filter.Status {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

func (r *fakeApplicationRepo) Update(ctx context.Context, id string, req leave.UpdateApplicationRequest) (int64, error) {
	if r.updateRows != nil {
		return *r.updateRows, nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.apps[id]
	if !ok {
		return 0, nil
	}
	if req.Status != nil {
		a.Status = leave.Status(*req.Status)
	}
	if req.Reason != nil {
		a.Reason = *req.Reason
	}
	if req.ApprovedBy != nil {
		a.ApprovedBy = req.ApprovedBy
	}
	r.store.apps[id] = a
	return 1, nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.apps[id]; !ok {
		return leave.ErrApplicationNotFound
	}
	delete(r.store.apps, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	return newUser, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) error { return nil }

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeJobRepo struct {
	latest map[string]job.Job
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (job.Job, error) { return j, nil }

func (r *fakeJobRepo) GetByID(ctx context.Context, id string) (job.Job, error) {
	return job.Job{}, job.ErrJobNotFound
}

func (r *fakeJobRepo) List(ctx context.Context, limit, offset int) ([]job.Job, int64, error) {
	return nil, 0, nil
}

func (r *fakeJobRepo) ListByUser(ctx context.Context, userID string) ([]job.Job, error) {
	return nil, nil
}

func (r *fakeJobRepo) LatestForUser(ctx context.Context, userID string) (job.Job, error) {
	j, ok := r.latest[userID]
	if !ok {
		return job.Job{}, job.ErrJobNotFound
	}
	return j, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, req job.UpdateJobRequest) error { return nil }

func (r *fakeJobRepo) Delete(ctx context.Context, id string) error { return nil }
