package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aduvernay/staffing-api/internal/domain"
	"github.com/aduvernay/staffing-api/internal/metrics"
	"github.com/aduvernay/staffing-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*domain.Person, error)
	Login(ctx context.Context, email, password string) (string, *domain.Person, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Nom      string `json:"nom"      binding:"required,min=3"`
	Prenom   string `json:"prenom"   binding:"required,min=3"`
}

type userResponse struct {
	ID     int64  `json:"id"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Email  string `json:"email"`
}

// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	person, err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Nom,
		FirstName: req.Prenom,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errEmailTaken})
			return
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created",
		"user": userResponse{
			ID:     person.ID,
			Nom:    person.Name,
			Prenom: person.FirstName,
			Email:  person.Email,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/login
// A failed login never reveals whether the email or the password was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, person, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrBadCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errBadCredentials})
			return
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": userResponse{
			ID:     person.ID,
			Nom:    person.Name,
			Prenom: person.FirstName,
			Email:  person.Email,
		},
	})
}

// respondBindError turns a binding failure into 400 with the full list of
// failing fields, or a generic body error when the JSON itself is broken.
func respondBindError(c *gin.Context, err error) {
	if fes := fieldErrors(err); fes != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fes})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
}
