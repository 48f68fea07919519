package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aduvernay/staffing-api/internal/domain"
	"github.com/gin-gonic/gin"
)

type staffingUsecaser interface {
	TaskDetails(ctx context.Context) ([]map[string]any, error)
	PersonSkills(ctx context.Context) ([]map[string]any, error)
	AssignTask(ctx context.Context, personID, taskID int64) error
	UpdateTimeSpent(ctx context.Context, personID, taskID int64, hours float64) error
}

type StaffingHandler struct {
	staffing staffingUsecaser
	logger   *slog.Logger
}

func NewStaffingHandler(staffing staffingUsecaser, logger *slog.Logger) *StaffingHandler {
	return &StaffingHandler{
		staffing: staffing,
		logger:   logger.With("component", "staffing_handler"),
	}
}

// GET /api/tasks
func (h *StaffingHandler) Tasks(c *gin.Context) {
	rows, err := h.staffing.TaskDetails(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /api/persons
func (h *StaffingHandler) Persons(c *gin.Context) {
	rows, err := h.staffing.PersonSkills(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list persons", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Pointer fields so that zero ids and a zero timeSpent pass the presence
// check and are rejected (or accepted) on their own merits.
type assignTaskRequest struct {
	PersonID *int64 `json:"personId" binding:"required"`
	TaskID   *int64 `json:"taskId"   binding:"required"`
}

// POST /api/assign-task
func (h *StaffingHandler) AssignTask(c *gin.Context) {
	var req assignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.staffing.AssignTask(c.Request.Context(), *req.PersonID, *req.TaskID); err != nil {
		h.respondStaffingError(c, "assign task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task assigned"})
}

type updateTimeRequest struct {
	PersonID  *int64   `json:"personId"  binding:"required"`
	TaskID    *int64   `json:"taskId"    binding:"required"`
	TimeSpent *float64 `json:"timeSpent" binding:"required,gte=0"`
}

// POST /api/update-time
func (h *StaffingHandler) UpdateTime(c *gin.Context) {
	var req updateTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.staffing.UpdateTimeSpent(c.Request.Context(), *req.PersonID, *req.TaskID, *req.TimeSpent); err != nil {
		h.respondStaffingError(c, "update time", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Time updated"})
}

// respondStaffingError surfaces procedure rule violations with their own
// message; anything else is logged and answered with a generic 500.
func (h *StaffingHandler) respondStaffingError(c *gin.Context, op string, err error) {
	var rule *domain.RuleError
	if errors.As(err, &rule) {
		c.JSON(http.StatusBadRequest, gin.H{"error": rule.Msg})
		return
	}
	h.logger.ErrorContext(c.Request.Context(), op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
}
