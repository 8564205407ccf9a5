package repository

import (
	"context"

	"github.com/Astemirdum/driver-rating/pkg/storage"
	"github.com/Astemirdum/driver-rating/rating/internal/errs"
	"github.com/Astemirdum/driver-rating/rating/internal/model"
	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type Repository interface {
	CreateRating(ctx context.Context, req model.CreateRating) (model.Rating, error)
	ListByPlate(ctx context.Context, plate string) ([]model.Rating, error)
	ListAll(ctx context.Context) ([]model.Rating, error)
}

type repository struct {
	db  *storage.DB
	qb  sq.StatementBuilderType
	log *zap.Logger
}

func NewRepository(db *storage.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		qb:  db.StatementBuilder(),
		log: log.Named("repo"),
	}, nil
}

const (
	ratingTableName = `rating`
)

var ratingColumns = []string{"id", "plate", "score", "comment"}

func (r *repository) insertQuery(req model.CreateRating) (string, []any, error) {
	return r.qb.Insert(ratingTableName).
		Columns("plate", "score", "comment").
		Values(req.Plate, req.Score, req.Comment).
		Suffix("RETURNING id").
		ToSql()
}

func (r *repository) CreateRating(ctx context.Context, req model.CreateRating) (model.Rating, error) {
	q, args, err := r.insertQuery(req)
	if err != nil {
		return model.Rating{}, &errs.StorageError{Op: "build insert", Err: err}
	}

	rating := model.Rating{Plate: req.Plate, Score: req.Score, Comment: req.Comment}
	if err := r.db.QueryRowxContext(ctx, q, args...).Scan(&rating.ID); err != nil {
		if verr := constraintError(err); verr != nil {
			return model.Rating{}, verr
		}
		r.log.Error("CreateRating", zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return model.Rating{}, &errs.StorageError{Op: "create rating", Err: err}
	}
	return rating, nil
}

func (r *repository) ListByPlate(ctx context.Context, plate string) ([]model.Rating, error) {
	return r.list(ctx, "list ratings by plate", sq.Eq{"plate": plate})
}

func (r *repository) ListAll(ctx context.Context) ([]model.Rating, error) {
	return r.list(ctx, "list ratings", nil)
}

func (r *repository) list(ctx context.Context, op string, where sq.Sqlizer) ([]model.Rating, error) {
	qs := r.qb.Select(ratingColumns...).
		From(ratingTableName).
		OrderBy("id")
	if where != nil {
		qs = qs.Where(where)
	}
	q, args, err := qs.ToSql()
	if err != nil {
		return nil, &errs.StorageError{Op: op, Err: err}
	}
	r.log.Debug(op, zap.String("query", q), zap.Any("args", args))

	items := make([]model.Rating, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		r.log.Error(op, zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return nil, &errs.StorageError{Op: op, Err: err}
	}
	return items, nil
}
