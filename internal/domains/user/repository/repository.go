package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/user/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/lib/pq"
)

// ErrDuplicate is returned when the username is already taken.
var ErrDuplicate = errors.New("user already exists")

// ErrNotFound is returned when no user matches.
var ErrNotFound = gRepo.ErrNotFound

type User interface {
	Insert(ctx context.Context, user model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// Insert stores user. A unique violation surfaces as ErrDuplicate so a
// concurrent registration of the same name is reported like a known one.
func (r *repositoryImpl) Insert(ctx context.Context, user model.User) error {
	err := r.Repository.Insert(ctx, user)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
		return ErrDuplicate
	}

	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}
