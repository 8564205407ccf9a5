package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Astemirdum/driver-rating/rating/internal/errs"
	"github.com/Astemirdum/driver-rating/rating/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// addRequest is the JSON body of POST /add. Score accepts 5 and "5".
type addRequest struct {
	Plate   string          `json:"plate"`
	Score   json.RawMessage `json:"score"`
	Comment string          `json:"comment"`
}

func (r addRequest) score() string {
	raw := strings.TrimSpace(string(r.Score))
	if raw == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Score, &s); err == nil {
		return s
	}
	return raw
}

// bindCreateRating reads plate, score and comment from a JSON body, or from
// the form body and URL query for every other content type.
func bindCreateRating(c echo.Context) (model.CreateRating, error) {
	var plate, score, comment string

	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		var req addRequest
		if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
			return model.CreateRating{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		plate, score, comment = req.Plate, req.score(), req.Comment
	} else {
		plate, score, comment = c.FormValue("plate"), c.FormValue("score"), c.FormValue("comment")
	}

	score = strings.TrimSpace(score)
	if score == "" {
		return model.CreateRating{}, &errs.ValidationError{Field: "score", Reason: "is required"}
	}
	n, err := strconv.Atoi(score)
	switch {
	case errors.Is(err, strconv.ErrRange):
		// an integer, just too large; the range check reports it
		n = math.MaxInt
		if strings.HasPrefix(score, "-") {
			n = math.MinInt
		}
	case err != nil:
		return model.CreateRating{}, &errs.ParseError{Field: "score", Value: score, Err: err}
	}

	return model.CreateRating{
		Plate:   plate,
		Score:   n,
		Comment: comment,
	}, nil
}
