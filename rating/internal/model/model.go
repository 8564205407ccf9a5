package model

type Rating struct {
	ID      int    `json:"id" db:"id"`
	Plate   string `json:"plate" db:"plate"`
	Score   int    `json:"score" db:"score"`
	Comment string `json:"comment" db:"comment"`
}

type CreateRating struct {
	Plate   string `json:"plate" validate:"required,max=8"`
	Score   int    `json:"score" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=255"`
}

type SearchResponse struct {
	Plate   string   `json:"plate"`
	Ratings []Rating `json:"ratings"`
}

type AddResponse struct {
	Plate   string `json:"plate"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// RatingMsg is published to the rating topic after a rating is stored.
type RatingMsg struct {
	ID      int    `json:"id"`
	Plate   string `json:"plate"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}
