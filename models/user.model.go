package models

import "time"

// User roles. Product mutations and the reporting endpoints require RoleAdmin.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// CartItem is one line of a user's in-progress order: a product snapshot plus
// a quantity. A cart holds at most one line per product id and Count is
// always >= 1; a count that would reach zero removes the line instead.
type CartItem struct {
	Product `bson:",inline"`
	Count   int `json:"count" bson:"count"`
}

// PurchaseGroup is an immutable snapshot of the cart taken at checkout.
type PurchaseGroup struct {
	PurchaseID  string     `json:"purchase_id" bson:"purchase_id"`
	PurchasedAt time.Time  `json:"purchased_at" bson:"purchased_at"`
	Items       []CartItem `json:"items" bson:"items"`
}

// User is the account record. Orders is the current cart; PurchasedItems is
// the append-only checkout history. Version backs optimistic concurrency on
// user writes: every replace must present the version it read.
type User struct {
	ID             string          `json:"id" bson:"_id"`
	Email          string          `json:"email" bson:"email"`
	Name           string          `json:"name" bson:"name"`
	Password       string          `json:"-" bson:"password"`
	Role           string          `json:"role" bson:"role"`
	CreatedAt      time.Time       `json:"created_at" bson:"created_at"`
	Orders         []CartItem      `json:"orders" bson:"orders"`
	PurchasedItems []PurchaseGroup `json:"purchased_items" bson:"purchased_items"`
	Version        int64           `json:"-" bson:"version"`
}

// LoginRequest is the credentials payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the signup payload for POST /register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserUpdate is the PUT/PATCH body for /users/:id. Pointer fields distinguish
// "absent" from "set to zero value" so PATCH can merge selectively.
type UserUpdate struct {
	Email          *string          `json:"email"`
	Name           *string          `json:"name"`
	Orders         *[]CartItem      `json:"orders"`
	PurchasedItems *[]PurchaseGroup `json:"purchased_items"`
}

// SyncOrdersRequest carries a client's locally-held cart for reconciliation
// against the stored one.
type SyncOrdersRequest struct {
	Orders []CartItem `json:"orders"`
}
