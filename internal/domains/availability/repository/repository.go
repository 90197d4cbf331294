package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"bookingdesk/infras/otel"
	"bookingdesk/infras/postgres"
	"bookingdesk/internal/domains/availability/model"
	gDto "bookingdesk/shared/dto"
	gRepo "bookingdesk/shared/repository"
)

type Evaluation interface {
	Insert(ctx context.Context, model model.Evaluation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Evaluation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Evaluation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Evaluation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Evaluation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Evaluation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
