package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/config"
	"github.com/hrms-app/hrms-backend-go/internal/domain/leave"
)

const JobLeaveBalanceYearlyReset = "leave_balance_yearly_reset"

// LeaveJobs contains leave balance cron jobs
type LeaveJobs struct {
	balanceService leave.BalanceService
	cfg            config.LeaveConfig
	now            func() time.Time
}

// NewLeaveJobs creates leave cron jobs
func NewLeaveJobs(balanceService leave.BalanceService, cfg config.LeaveConfig) *LeaveJobs {
	return &LeaveJobs{
		balanceService: balanceService,
		cfg:            cfg,
		now:            time.Now,
	}
}

// RegisterJobs registers the yearly reset when it is enabled
func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) error {
	if !j.cfg.ResetOnSchedule {
		slog.Info("Leave balance yearly reset disabled")
		return nil
	}
	return scheduler.AddJob(JobLeaveBalanceYearlyReset, j.cfg.ResetSchedule, j.YearlyReset)
}

// YearlyReset starts every user on a fresh allowance for the current year
func (j *LeaveJobs) YearlyReset(ctx context.Context) error {
	total := j.cfg.DefaultAnnualTotal
	sick := j.cfg.DefaultSickDays
	year := j.now().Year()

	result, err := j.balanceService.ResetAll(ctx, leave.ResetBalancesRequest{
		AnnualLeaveTotal: &total,
		SickLeaveDays:    &sick,
		Year:             &year,
	})
	if err != nil {
		return fmt.Errorf("yearly leave balance reset: %w", err)
	}

	slog.Info("Leave balances reset", "year", result.Year, "count", result.Reset)
	return nil
}
