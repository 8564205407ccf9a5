package handler

import (
	"net/http"

	md "github.com/Astemirdum/driver-rating/pkg/middleware"
	"github.com/Astemirdum/driver-rating/rating/internal/errs"
	"github.com/Astemirdum/driver-rating/rating/internal/model"
	_ "github.com/Astemirdum/driver-rating/swagger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Handler struct {
	ratingSvc RatingService
	log       *zap.Logger
	apiRPS    float64
}

type Option func(*Handler)

// WithAPIRateLimit limits /search, /add and /all per client IP.
// Zero leaves them unlimited.
func WithAPIRateLimit(rps float64) Option {
	return func(h *Handler) {
		h.apiRPS = rps
	}
}

func New(ratingSvc RatingService, log *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		ratingSvc: ratingSvc,
		log:       log.Named("handler"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	const baseRPS = 10
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(md.CORSHeaders)

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestIDWithConfig(md.RequestIDConfig()),
	)
	if h.apiRPS > 0 {
		api.Use(md.NewRateLimiter(rate.Limit(h.apiRPS)))
	}
	api.GET("/search", h.Search)
	api.POST("/add", h.Add)
	api.GET("/all", h.List)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Search returns every rating of a plate. A missing plate is searched as "".
//
//	@Summary	Search ratings by plate
//	@Tags		rating
//	@Produce	json
//	@Param		plate	query		string	false	"license plate"
//	@Success	200		{object}	model.SearchResponse
//	@Failure	500		{object}	echo.HTTPError
//	@Router		/search [get]
func (h *Handler) Search(c echo.Context) error {
	plate := c.QueryParam("plate")
	ratings, err := h.ratingSvc.SearchRatings(c.Request().Context(), plate)
	if err != nil {
		return h.httpError(err)
	}
	if ratings == nil {
		ratings = []model.Rating{}
	}
	return c.JSON(http.StatusOK, model.SearchResponse{
		Plate:   plate,
		Ratings: ratings,
	})
}

//	@Summary	Add a rating
//	@Tags		rating
//	@Accept		x-www-form-urlencoded,json
//	@Produce	json
//	@Param		plate	formData	string	true	"license plate, at most 8 characters"
//	@Param		score	formData	integer	true	"score from 1 to 5"
//	@Param		comment	formData	string	true	"comment, at most 255 characters"
//	@Success	201		{object}	model.AddResponse
//	@Failure	400		{object}	echo.HTTPError
//	@Failure	500		{object}	echo.HTTPError
//	@Router		/add [post]
func (h *Handler) Add(c echo.Context) error {
	req, err := bindCreateRating(c)
	if err != nil {
		return h.httpError(err)
	}
	if _, err := h.ratingSvc.CreateRating(c.Request().Context(), req); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, model.AddResponse{
		Plate:   req.Plate,
		Score:   req.Score,
		Comment: req.Comment,
	})
}

//	@Summary	List all ratings
//	@Tags		rating
//	@Produce	json
//	@Success	200	{array}		model.Rating
//	@Failure	500	{object}	echo.HTTPError
//	@Router		/all [get]
func (h *Handler) List(c echo.Context) error {
	ratings, err := h.ratingSvc.ListRatings(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	if ratings == nil {
		ratings = []model.Rating{}
	}
	return c.JSON(http.StatusOK, ratings)
}

func (h *Handler) httpError(err error) error {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrParse):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		h.log.Error("storage", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, errs.ErrStorage.Error())
	}
}
