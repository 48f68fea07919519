package repository

import (
	"context"

	"github.com/aduvernay/staffing-api/internal/domain"
)

type PersonRepository interface {
	Create(ctx context.Context, p *domain.Person) (*domain.Person, error)
	FindByEmail(ctx context.Context, email string) (*domain.Person, error)
	FindByID(ctx context.Context, id int64) (*domain.Person, error)
}
