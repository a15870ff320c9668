package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hrms-app/hrms-backend-go/internal/domain/job"
	"github.com/hrms-app/hrms-backend-go/internal/domain/leave"
	"github.com/hrms-app/hrms-backend-go/internal/domain/user"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/database"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/metrics"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/pagination"
)

// errNotUpdated rolls back a re-deduction when the application row was
// not written.
var errNotUpdated = errors.New("application not updated")

type ApplicationServiceImpl struct {
	leave.ApplicationRepository
	balances   *BalanceServiceImpl
	users      user.UserRepository
	jobs       job.JobRepository
	transactor database.Transactor
}

func NewApplicationService(
	applicationRepository leave.ApplicationRepository,
	balances *BalanceServiceImpl,
	userRepository user.UserRepository,
	jobRepository job.JobRepository,
	transactor database.Transactor,
) *ApplicationServiceImpl {
	return &ApplicationServiceImpl{
		ApplicationRepository: applicationRepository,
		balances:              balances,
		users:                 userRepository,
		jobs:                  jobRepository,
		transactor:            transactor,
	}
}

// Create implements leave.ApplicationService.
func (s *ApplicationServiceImpl) Create(ctx context.Context, actor leave.Actor, req leave.CreateApplicationRequest) (leave.ApplicationResponse, error) {
	// Employees always apply for themselves
	if req.UserID == "" {
		req.UserID = actor.UserID
	}
	if req.UserID != actor.UserID && !actor.Can(user.PermissionLeaveApprove) {
		return leave.ApplicationResponse{}, leave.ErrForbidden
	}

	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	applicant, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return leave.ApplicationResponse{}, err
		}
		return leave.ApplicationResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	var positionTitle *string
	latestJob, err := s.jobs.LatestForUser(ctx, req.UserID)
	switch {
	case err == nil:
		positionTitle = &latestJob.JobTitle
	case errors.Is(err, job.ErrJobNotFound):
	default:
		return leave.ApplicationResponse{}, fmt.Errorf("failed to get latest job: %w", err)
	}

	if err := req.ValidateBusinessLeave(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	leaveType := leave.Type(req.Type)
	requiresDeduction := leaveType.RequiresDeduction()

	var created leave.Application
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if requiresDeduction {
			if err := s.balances.BalanceRepository.EnsureExists(ctx, s.balances.defaultBalance(req.UserID)); err != nil {
				return fmt.Errorf("failed to ensure leave balance: %w", err)
			}
			if _, err := s.balances.deductLocked(ctx, req.UserID, req.Days); err != nil {
				return err
			}
		}

		var err error
		created, err = s.ApplicationRepository.Create(ctx, leave.Application{
			UserID:                   req.UserID,
			Name:                     applicant.FullName,
			PositionTitle:            positionTitle,
			StartDate:                req.Start,
			EndDate:                  req.End,
			NumberOfDays:             req.Days,
			Status:                   leave.StatusPending,
			Type:                     leaveType,
			Reason:                   req.Reason,
			ApprovedBy:               req.ApprovedBy,
			BusinessLeavePurpose:     req.BusinessLeavePurpose,
			BusinessLeaveDestination: req.BusinessLeaveDestination,
			DeductedFromBalance:      requiresDeduction,
		})
		if err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	metrics.ApplicationsCreated.WithLabelValues(string(leaveType)).Inc()
	slog.Info("Leave application created",
		"application_id", created.ID,
		"user_id", created.UserID,
		"type", created.Type,
		"days", created.NumberOfDays,
		"deducted", created.DeductedFromBalance,
	)

	return leave.ToApplicationResponse(created), nil
}

// UpdateStatus implements leave.ApplicationService.
//
// Moving a deducted application into Rejected gives its days back after
// the update commits; a failed give-back is reported in the result and
// does not undo the update. Moving it out of Rejected takes the days again
// inside the update transaction.
func (s *ApplicationServiceImpl) UpdateStatus(ctx context.Context, actor leave.Actor, id string, req leave.UpdateApplicationRequest) (leave.UpdateResult, error) {
	result := leave.UpdateResult{Restoration: leave.RestorationNotApplicable}

	if err := req.Validate(); err != nil {
		return result, err
	}

	// The status read and the write share one row lock, so two concurrent
	// transitions see each other's committed status.
	var (
		existing             leave.Application
		oldStatus, newStatus leave.Status
		restore              bool
		rows                 int64
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		existing, err = s.ApplicationRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.IsEmpty() {
			return nil
		}

		oldStatus = existing.Status
		newStatus = req.NewStatus(oldStatus)
		rededuct := existing.DeductedFromBalance && oldStatus == leave.StatusRejected && newStatus != leave.StatusRejected
		restore = existing.DeductedFromBalance && oldStatus != leave.StatusRejected && newStatus == leave.StatusRejected

		if rededuct {
			if _, err := s.balances.deductLocked(ctx, existing.UserID, existing.NumberOfDays); err != nil {
				return err
			}
		}

		rows, err = s.ApplicationRepository.Update(ctx, id, req)
		if err != nil {
			return err
		}
		if rows == 0 && rededuct {
			return errNotUpdated
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errNotUpdated) {
			return result, nil
		}
		return result, err
	}
	if rows == 0 {
		return result, nil
	}
	result.Updated = true

	slog.Info("Leave application updated",
		"application_id", id,
		"actor_id", actor.UserID,
		"old_status", oldStatus,
		"new_status", newStatus,
	)

	if restore {
		result.Restoration = s.restoreAfterRejection(ctx, existing)
	}

	updated, err := s.ApplicationRepository.GetByID(ctx, id)
	if err != nil {
		slog.Warn("Failed to reload updated application", "application_id", id, "error", err)
		return result, nil
	}
	resp := leave.ToApplicationResponse(updated)
	result.Application = &resp

	return result, nil
}

// restoreAfterRejection returns the pre-update number of days to the
// owner's balance.
func (s *ApplicationServiceImpl) restoreAfterRejection(ctx context.Context, a leave.Application) leave.RestorationResult {
	if _, err := s.balances.BalanceRepository.RestoreAnnual(ctx, a.UserID, a.NumberOfDays); err != nil {
		metrics.BalanceRestorations.WithLabelValues(string(leave.RestorationFailed)).Inc()
		slog.Error("Failed to restore leave balance after rejection",
			"application_id", a.ID,
			"user_id", a.UserID,
			"days", a.NumberOfDays,
			"error", err,
		)
		return leave.RestorationFailed
	}

	metrics.BalanceRestorations.WithLabelValues(string(leave.RestorationRestored)).Inc()
	slog.Info("Leave balance restored after rejection",
		"application_id", a.ID,
		"user_id", a.UserID,
		"days", a.NumberOfDays,
	)
	return leave.RestorationRestored
}

// Get implements leave.ApplicationService.
func (s *ApplicationServiceImpl) Get(ctx context.Context, actor leave.Actor, id string) (leave.ApplicationResponse, error) {
	a, err := s.ApplicationRepository.GetByID(ctx, id)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	if a.UserID != actor.UserID && !actor.Can(user.PermissionLeaveViewAll) {
		return leave.ApplicationResponse{}, leave.ErrForbidden
	}

	return leave.ToApplicationResponse(a), nil
}

// List implements leave.ApplicationService.
func (s *ApplicationServiceImpl) List(ctx context.Context, filter leave.ApplicationFilter) (leave.ListApplicationResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListApplicationResponse{}, err
	}

	p := pagination.Normalize(filter.Page, filter.Limit)
	filter.Page, filter.Limit = p.Page, p.Limit

	applications, total, err := s.ApplicationRepository.List(ctx, filter)
	if err != nil {
		return leave.ListApplicationResponse{}, fmt.Errorf("failed to list applications: %w", err)
	}

	responses := make([]leave.ApplicationResponse, 0, len(applications))
	for _, a := range applications {
		responses = append(responses, leave.ToApplicationResponse(a))
	}

	return leave.ListApplicationResponse{
		TotalCount:   total,
		Page:         p.Page,
		Limit:        p.Limit,
		TotalPages:   pagination.TotalPages(total, p.Limit),
		Applications: responses,
	}, nil
}

// ListByUser implements leave.ApplicationService.
func (s *ApplicationServiceImpl) ListByUser(ctx context.Context, actor leave.Actor, userID string, filter leave.ApplicationFilter) (leave.ListApplicationResponse, error) {
	if userID != actor.UserID && !actor.Can(user.PermissionLeaveViewAll) {
		return leave.ListApplicationResponse{}, leave.ErrForbidden
	}
	if err := validateUserID(userID); err != nil {
		return leave.ListApplicationResponse{}, err
	}

	filter.UserID = &userID
	return s.List(ctx, filter)
}

// Delete implements leave.ApplicationService. Days still held by the
// application go back to the balance in the same transaction.
func (s *ApplicationServiceImpl) Delete(ctx context.Context, id string) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		a, err := s.ApplicationRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if a.HoldsBalance() {
			_, err := s.balances.BalanceRepository.RestoreAnnual(ctx, a.UserID, a.NumberOfDays)
			switch {
			case err == nil:
			case errors.Is(err, leave.ErrBalanceNotFound):
				slog.Warn("Deleted application had no balance to restore", "application_id", id, "user_id", a.UserID)
			default:
				return fmt.Errorf("failed to restore leave balance: %w", err)
			}
		}

		if err := s.ApplicationRepository.Delete(ctx, id); err != nil {
			return err
		}

		slog.Info("Leave application deleted", "application_id", id, "restored", a.HoldsBalance())
		return nil
	})
}
