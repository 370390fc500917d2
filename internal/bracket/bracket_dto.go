package bracket

import "github.com/shopspring/decimal"

type CreateBracketRequest struct {
	Label      string          `json:"label" binding:"max=120"`
	MinBound   int             `json:"min_bound" binding:"min=0"`
	MaxBound   *int            `json:"max_bound"`
	Percentage decimal.Decimal `json:"percentage"`
}

type UpdateBracketRequest struct {
	Label      string          `json:"label" binding:"max=120"`
	MinBound   int             `json:"min_bound" binding:"min=0"`
	MaxBound   *int            `json:"max_bound"`
	Percentage decimal.Decimal `json:"percentage"`
	Active     *bool           `json:"active"`
}

type MatchQuery struct {
	Input *int `form:"input" binding:"required"`
}

type OverlapQuery struct {
	MinBound  *int    `form:"min" binding:"required"`
	MaxBound  *int    `form:"max"`
	ExcludeID *string `form:"exclude_id" binding:"omitempty,uuid"`
}

type BracketResponse struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	Label      string          `json:"label"`
	MinBound   int             `json:"min_bound"`
	MaxBound   *int            `json:"max_bound"`
	Percentage decimal.Decimal `json:"percentage"`
	Active     bool            `json:"active"`
}

type MatchResponse struct {
	Input      int              `json:"input"`
	Matched    bool             `json:"matched"`
	Percentage decimal.Decimal  `json:"percentage"`
	Bracket    *BracketResponse `json:"bracket,omitempty"`
}

type OverlapResponse struct {
	Valid bool `json:"valid"`
}
