package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/domain/leave"
	"github.com/hrms-app/hrms-backend-go/internal/domain/user"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type applicationRepositoryImpl struct {
	db *database.DB
}

func NewApplicationRepository(db *database.DB) leave.ApplicationRepository {
	return &applicationRepositoryImpl{db: db}
}

const applicationColumns = `
	id, user_id, name, position_title, start_date, end_date, number_of_days,
	status, type, reason, approved_by, business_leave_purpose, business_leave_destination,
	deducted_from_balance, created_at, updated_at
`

func scanApplication(row pgx.Row) (leave.Application, error) {
	var a leave.Application
	err := row.Scan(
		&a.ID, &a.UserID, &a.Name, &a.PositionTitle, &a.StartDate, &a.EndDate, &a.NumberOfDays,
		&a.Status, &a.Type, &a.Reason, &a.ApprovedBy, &a.BusinessLeavePurpose, &a.BusinessLeaveDestination,
		&a.DeductedFromBalance, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements leave.ApplicationRepository.
func (r *applicationRepositoryImpl) Create(ctx context.Context, a leave.Application) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO application (
			id, user_id, name, position_title, start_date, end_date, number_of_days,
			status, type, reason, approved_by, business_leave_purpose, business_leave_destination,
			deducted_from_balance
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13,
			$14
		) RETURNING created_at, updated_at
	`

	a.ID = newID()
	err := q.QueryRow(ctx, query,
		a.ID, a.UserID, a.Name, a.PositionTitle, a.StartDate, a.EndDate, a.NumberOfDays,
		a.Status, a.Type, a.Reason, a.ApprovedBy, a.BusinessLeavePurpose, a.BusinessLeaveDestination,
		a.DeductedFromBalance,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return leave.Application{}, user.ErrUserNotFound
		}
		return leave.Application{}, err
	}

	return a, nil
}

// GetByID implements leave.ApplicationRepository.
func (r *applicationRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + applicationColumns + ` FROM application WHERE id = $1`

	a, err := scanApplication(q.QueryRow(ctx, query, id))
	if err != nil {
		return leave.Application{}, applicationNotFound(err)
	}
	return a, nil
}

// GetByIDForUpdate implements leave.ApplicationRepository.
func (r *applicationRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + applicationColumns + ` FROM application WHERE id = $1 FOR UPDATE`

	a, err := scanApplication(q.QueryRow(ctx, query, id))
	if err != nil {
		return leave.Application{}, applicationNotFound(err)
	}
	return a, nil
}

// applicationNotFound maps a missing row, or an id that is not a UUID, to
// leave.ErrApplicationNotFound.
func applicationNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
		return leave.ErrApplicationNotFound
	}
	return err
}

// List implements leave.ApplicationRepository.
func (r *applicationRepositoryImpl) List(ctx context.Context, filter leave.ApplicationFilter) ([]leave.Application, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM application WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	whereClauses := []string{}

	if filter.UserID != nil && *filter.UserID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Type != nil && *filter.Type != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, *filter.Type)
		argIdx++
	}

	// Overlap with the requested range
	if filter.StartDate != nil {
		if d, ok := leave.ParseDate(*filter.StartDate); ok {
			whereClauses = append(whereClauses, fmt.Sprintf("end_date >= $%d", argIdx))
			args = append(args, d)
			argIdx++
		}
	}

	if filter.EndDate != nil {
		if d, ok := leave.ParseDate(*filter.EndDate); ok {
			whereClauses = append(whereClauses, fmt.Sprintf("start_date <= $%d", argIdx))
			args = append(args, d)
			argIdx++
		}
	}

	if len(whereClauses) > 0 {
		baseQuery += " AND " + strings.Join(whereClauses, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	// SortBy is validated against a fixed column list before it gets here
	orderBy := "created_at"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}
	if strings.ToLower(filter.SortOrder) == "asc" {
		orderBy += " ASC"
	} else {
		orderBy += " DESC"
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	selectQuery := "SELECT " + applicationColumns + baseQuery +
		" ORDER BY " + orderBy + ", id" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	applications := make([]leave.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return applications, total, nil
}

// Update implements leave.ApplicationRepository.
func (r *applicationRepositoryImpl) Update(ctx context.Context, id string, req leave.UpdateApplicationRequest) (int64, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})

	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Reason != nil {
		updates["reason"] = *req.Reason
	}
	if req.ApprovedBy != nil {
		updates["approved_by"] = *req.ApprovedBy
	}
	if req.BusinessLeavePurpose != nil {
		updates["business_leave_purpose"] = *req.BusinessLeavePurpose
	}
	if req.BusinessLeaveDestination != nil {
		updates["business_leave_destination"] = *req.BusinessLeaveDestination
	}

	if len(updates) == 0 {
		return 0, nil
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

	sql := "UPDATE application SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id = $%d", i)
	args = append(args, id)

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update application %s: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// Delete implements leave.ApplicationRepository.
func (r *applicationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM application WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrApplicationNotFound
	}
	return nil
}
