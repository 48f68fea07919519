package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/aduvernay/staffing-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgRaiseException is the SQLSTATE of an unqualified RAISE EXCEPTION — how
// the stored procedures signal a business rule violation.
const pgRaiseException = "P0001"

type StaffingRepository struct {
	pool *pgxpool.Pool
}

func NewStaffingRepository(pool *pgxpool.Pool) *StaffingRepository {
	return &StaffingRepository{pool: pool}
}

// TaskDetails returns the detailed task view rows verbatim.
func (r *StaffingRepository) TaskDetails(ctx context.Context) ([]map[string]any, error) {
	return r.viewRows(ctx, `SELECT * FROM v_task_details`)
}

// PersonSkills returns the person/skill view rows verbatim.
func (r *StaffingRepository) PersonSkills(ctx context.Context) ([]map[string]any, error) {
	return r.viewRows(ctx, `SELECT * FROM v_person_skills`)
}

func (r *StaffingRepository) viewRows(ctx context.Context, query string) ([]map[string]any, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query view: %w", err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("collect view rows: %w", err)
	}
	return result, nil
}

func (r *StaffingRepository) AssignTask(ctx context.Context, personID, taskID int64) error {
	_, err := r.pool.Exec(ctx, `CALL assign_task($1, $2)`, personID, taskID)
	if err != nil {
		return procError("assign task", err)
	}
	return nil
}

func (r *StaffingRepository) UpdateTimeSpent(ctx context.Context, personID, taskID int64, hours float64) error {
	_, err := r.pool.Exec(ctx, `CALL update_time_spent($1, $2, $3)`, personID, taskID, hours)
	if err != nil {
		return procError("update time spent", err)
	}
	return nil
}

// procError surfaces procedure-raised rule violations as domain.RuleError;
// everything else stays an opaque internal error.
func procError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgRaiseException {
		return &domain.RuleError{Msg: pgErr.Message}
	}
	return fmt.Errorf("%s: %w", op, err)
}
