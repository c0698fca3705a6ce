package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is one catalog entry. The (filterType, length, width, depth,
// unitOfMeasure) tuple is uniquely indexed.
type Item struct {
	ID              primitive.ObjectID `bson:"_id" json:"-"`
	Item_id         string             `json:"itemId"`
	Filter_type     *string            `json:"filterType" validate:"required"`
	Length          *float64           `json:"length" validate:"required,gt=0"`
	Width           *float64           `json:"width" validate:"required,gt=0"`
	Depth           *float64           `json:"depth" validate:"required,gt=0"`
	Unit_of_measure *string            `json:"unitOfMeasure" validate:"required,eq=mm|eq=cm|eq=inch"`
	Description     *string            `json:"description"`
	Unit_price      *float64           `json:"unitPrice"`
	Is_active       *bool              `json:"isActive"`
	Created_at      time.Time          `json:"createdAt"`
	Updated_at      time.Time          `json:"updatedAt"`
}

type ItemUpdate struct {
	Filter_type     *string  `json:"filterType"`
	Length          *float64 `json:"length"`
	Width           *float64 `json:"width"`
	Depth           *float64 `json:"depth"`
	Unit_of_measure *string  `json:"unitOfMeasure"`
	Description     *string  `json:"description"`
	Unit_price      *float64 `json:"unitPrice"`
	Is_active       *bool    `json:"isActive"`
}
