package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   pgtype.Timestamptz
}

type Drawing struct {
	ID        string
	OwnerID   string
	Name      string
	Width     float64
	Height    float64
	Script    []byte
	Svg       string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// DrawingSummary is a drawings row without its script and SVG.
type DrawingSummary struct {
	ID        string
	OwnerID   string
	Name      string
	Width     float64
	Height    float64
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}
