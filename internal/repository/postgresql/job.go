package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/domain/job"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/database"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type jobRepositoryImpl struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) job.JobRepository {
	return &jobRepositoryImpl{db: db}
}

const jobSelect = `
	SELECT j.id, j.user_id, j.department_id, j.job_title, j.start_date, j.end_date,
		   j.employment_type, j.created_at, j.updated_at, d.name
	FROM jobs j
	LEFT JOIN departments d ON d.id = j.department_id
`

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.ID, &j.UserID, &j.DepartmentID, &j.JobTitle, &j.StartDate, &j.EndDate,
		&j.EmploymentType, &j.CreatedAt, &j.UpdatedAt, &j.DepartmentName,
	)
	return j, err
}

func mapJobWriteError(err error) error {
	if isForeignKeyViolation(err) {
		if strings.Contains(constraintName(err), "department") {
			return job.ErrInvalidDeptRef
		}
		return job.ErrInvalidUserRef
	}
	return err
}

// Create implements job.JobRepository.
func (r *jobRepositoryImpl) Create(ctx context.Context, j job.Job) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	j.ID = newID()
	err := q.QueryRow(ctx, `
		INSERT INTO jobs (id, user_id, department_id, job_title, start_date, end_date, employment_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, j.ID, j.UserID, j.DepartmentID, j.JobTitle, j.StartDate, j.EndDate, j.EmploymentType,
	).Scan(&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return job.Job{}, mapJobWriteError(err)
	}

	return j, nil
}

// GetByID implements job.JobRepository.
func (r *jobRepositoryImpl) GetByID(ctx context.Context, id string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	j, err := scanJob(q.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

// List implements job.JobRepository.
func (r *jobRepositoryImpl) List(ctx context.Context, limit, offset int) ([]job.Job, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	rows, err := q.Query(ctx, jobSelect+` ORDER BY j.start_date DESC, j.id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query jobs: %w", err)
	}

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListByUser implements job.JobRepository.
func (r *jobRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]job.Job, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, jobSelect+` WHERE j.user_id = $1 ORDER BY j.start_date DESC, j.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	return collectJobs(rows)
}

// LatestForUser implements job.JobRepository.
func (r *jobRepositoryImpl) LatestForUser(ctx context.Context, userID string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	j, err := scanJob(q.QueryRow(ctx,
		jobSelect+` WHERE j.user_id = $1 ORDER BY j.start_date DESC, j.created_at DESC LIMIT 1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

// Update implements job.JobRepository.
func (r *jobRepositoryImpl) Update(ctx context.Context, req job.UpdateJobRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})

	if req.DepartmentID != nil {
		updates["department_id"] = *req.DepartmentID
	}
	if req.JobTitle != nil {
		updates["job_title"] = *req.JobTitle
	}
	if req.StartDate != nil {
		d, _ := validator.IsValidDate(*req.StartDate)
		updates["start_date"] = d
	}
	if req.EndDate != nil {
		d, _ := validator.IsValidDate(*req.EndDate)
		updates["end_date"] = d
	}
	if req.EmploymentType != nil {
		updates["employment_type"] = *req.EmploymentType
	}

	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE jobs SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id = $%d", i)
	args = append(args, req.ID)

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return mapJobWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}
	return nil
}

// Delete implements job.JobRepository.
func (r *jobRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}
	return nil
}

func collectJobs(rows pgx.Rows) ([]job.Job, error) {
	defer rows.Close()

	jobs := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return jobs, nil
}
