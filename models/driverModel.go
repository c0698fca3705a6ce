package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DriverStatusActive     = "active"
	DriverStatusOnVacation = "on_vacation"
	DriverStatusInactive   = "inactive"
)

type Driver struct {
	ID            primitive.ObjectID `bson:"_id" json:"-"`
	Driver_id     string             `json:"driverId"`
	Driver_number *string            `json:"driverNumber" validate:"required"`
	First_name    *string            `json:"firstName" validate:"required,min=1,max=100"`
	Last_name     *string            `json:"lastName" validate:"required,min=1,max=100"`
	Street        *string            `json:"street"`
	Zip_code      *string            `json:"zipCode"`
	City          *string            `json:"city"`
	Phone         *string            `json:"phone" validate:"required"`
	Email         *string            `json:"email" validate:"omitempty,email"`
	License_class *string            `json:"licenseClass"`
	Status        string             `json:"status" validate:"omitempty,eq=active|eq=on_vacation|eq=inactive"`
	Deleted       bool               `json:"deleted"`
	Created_at    time.Time          `json:"createdAt"`
	Updated_at    time.Time          `json:"updatedAt"`
}

type DriverUpdate struct {
	Driver_number *string `json:"driverNumber"`
	First_name    *string `json:"firstName"`
	Last_name     *string `json:"lastName"`
	Street        *string `json:"street"`
	Zip_code      *string `json:"zipCode"`
	City          *string `json:"city"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	License_class *string `json:"licenseClass"`
	Status        *string `json:"status"`
}
