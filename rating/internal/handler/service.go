package handler

import (
	"context"

	ratingModel "github.com/Astemirdum/driver-rating/rating/internal/model"
	"github.com/Astemirdum/driver-rating/rating/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type RatingService interface {
	CreateRating(ctx context.Context, req ratingModel.CreateRating) (ratingModel.Rating, error)
	SearchRatings(ctx context.Context, plate string) ([]ratingModel.Rating, error)
	ListRatings(ctx context.Context) ([]ratingModel.Rating, error)
}

var _ RatingService = (*service.Service)(nil)
