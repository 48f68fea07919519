package repository

import "context"

// StaffingRepository exposes the read views and the two stored procedures.
// View rows are returned verbatim; their columns belong to the schema, not
// to this layer.
type StaffingRepository interface {
	TaskDetails(ctx context.Context) ([]map[string]any, error)
	PersonSkills(ctx context.Context) ([]map[string]any, error)
	AssignTask(ctx context.Context, personID, taskID int64) error
	UpdateTimeSpent(ctx context.Context, personID, taskID int64, hours float64) error
}
