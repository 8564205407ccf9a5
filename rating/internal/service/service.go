package service

import (
	"context"

	"github.com/Astemirdum/driver-rating/pkg/validate"
	"github.com/Astemirdum/driver-rating/rating/internal/errs"
	ratingModel "github.com/Astemirdum/driver-rating/rating/internal/model"
	ratingRepo "github.com/Astemirdum/driver-rating/rating/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Publisher is notified about every stored rating. Publishing is best effort.
type Publisher interface {
	PublishRating(ctx context.Context, rating ratingModel.Rating)
}

type Service struct {
	log       *zap.Logger
	repo      ratingRepo.Repository
	validator *validate.CustomValidator
	publisher Publisher
}

type Option func(*Service)

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func NewService(repo ratingRepo.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:       log.Named("service"),
		repo:      repo,
		validator: validate.NewCustomValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateRating(ctx context.Context, req ratingModel.CreateRating) (ratingModel.Rating, error) {
	if err := s.validate(req); err != nil {
		return ratingModel.Rating{}, err
	}
	rating, err := s.repo.CreateRating(ctx, req)
	if err != nil {
		return ratingModel.Rating{}, err
	}
	s.log.Debug("rating created", zap.Int("id", rating.ID), zap.String("plate", rating.Plate))
	if s.publisher != nil {
		s.publisher.PublishRating(ctx, rating)
	}
	return rating, nil
}

func (s *Service) SearchRatings(ctx context.Context, plate string) ([]ratingModel.Rating, error) {
	ratings, err := s.repo.ListByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if ratings == nil {
		ratings = []ratingModel.Rating{}
	}
	return ratings, nil
}

func (s *Service) ListRatings(ctx context.Context) ([]ratingModel.Rating, error) {
	ratings, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if ratings == nil {
		ratings = []ratingModel.Rating{}
	}
	return ratings, nil
}

func (s *Service) validate(req ratingModel.CreateRating) error {
	err := s.validator.Validate(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &errs.ValidationError{Field: verrs[0].Field(), Reason: validate.Describe(verrs[0])}
	}
	return &errs.ValidationError{Field: "rating", Reason: err.Error()}
}
