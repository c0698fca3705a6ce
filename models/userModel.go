package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin        = "admin"
	RoleBackOffice   = "back_office"
	RoleFieldService = "field_service"
	RoleWarehouse    = "warehouse"
)

// PagePermission is one per-page grant on a user. Modelled as a typed
// struct rather than free-form strings so the permission matrix is
// checkable at compile time.
type PagePermission struct {
	Page      string `json:"page" validate:"required"`
	CanView   bool   `json:"canView"`
	CanAdd    bool   `json:"canAdd"`
	CanEdit   bool   `json:"canEdit"`
	CanDelete bool   `json:"canDelete"`
}

type User struct {
	ID          primitive.ObjectID `bson:"_id" json:"-"`
	User_id     string             `json:"userId"`
	Name        *string            `json:"name" validate:"required,min=2,max=100"`
	Email       *string            `json:"email" validate:"required,email"`
	Password    *string            `json:"password,omitempty" validate:"required,min=6"`
	Role        *string            `json:"role" validate:"required,eq=admin|eq=back_office|eq=field_service|eq=warehouse"`
	Permissions []PagePermission   `json:"permissions"`
	Active      *bool              `json:"active"`

	Token         *string   `json:"token,omitempty"`
	Refresh_token *string   `json:"refreshToken,omitempty"`
	Created_at    time.Time `json:"createdAt"`
	Updated_at    time.Time `json:"updatedAt"`
}

// UserUpdate is the allowed patch surface for PATCH /users/:user_id.
// Unknown keys in the request body reject the whole update.
type UserUpdate struct {
	Name        *string           `json:"name"`
	Email       *string           `json:"email"`
	Password    *string           `json:"password"`
	Role        *string           `json:"role"`
	Permissions *[]PagePermission `json:"permissions"`
	Active      *bool             `json:"active"`
}

// AuthUser is the authenticated identity carried through the gin context,
// set once by the auth middleware.
type AuthUser struct {
	User_id string
	Name    string
	Email   string
	Role    string
}
