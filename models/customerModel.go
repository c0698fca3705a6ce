package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CustomerStatusActive     = "active"
	CustomerStatusOnVacation = "on_vacation"
	CustomerStatusInactive   = "inactive"
)

type Customer struct {
	ID              primitive.ObjectID `bson:"_id" json:"-"`
	Customer_id     string             `json:"customerId"`
	Customer_number *string            `json:"customerNumber" validate:"required"`
	First_name      *string            `json:"firstName" validate:"required,min=1,max=100"`
	Last_name       *string            `json:"lastName" validate:"required,min=1,max=100"`
	Company         *string            `json:"company"`
	Street          *string            `json:"street" validate:"required"`
	Zip_code        *string            `json:"zipCode" validate:"required"`
	City            *string            `json:"city" validate:"required"`
	Phone           *string            `json:"phone"`
	Email           *string            `json:"email" validate:"omitempty,email"`
	Status          string             `json:"status" validate:"omitempty,eq=active|eq=on_vacation|eq=inactive"`
	// Deleted is a tombstone, kept apart from Status so "deleted" never
	// collides with a genuine lifecycle state in queries.
	Deleted         bool       `json:"deleted"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	Visit_time_from *string    `json:"visitTimeFrom"`
	Visit_time_to   *string    `json:"visitTimeTo"`
	Notes           *string    `json:"notes"`
	Created_at      time.Time  `json:"createdAt"`
	Updated_at      time.Time  `json:"updatedAt"`
}

type CustomerUpdate struct {
	Customer_number *string  `json:"customerNumber"`
	First_name      *string  `json:"firstName"`
	Last_name       *string  `json:"lastName"`
	Company         *string  `json:"company"`
	Street          *string  `json:"street"`
	Zip_code        *string  `json:"zipCode"`
	City            *string  `json:"city"`
	Phone           *string  `json:"phone"`
	Email           *string  `json:"email"`
	Status          *string  `json:"status"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Visit_time_from *string  `json:"visitTimeFrom"`
	Visit_time_to   *string  `json:"visitTimeTo"`
	Notes           *string  `json:"notes"`
}
