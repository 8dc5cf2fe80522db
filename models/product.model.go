package models

import "time"

// Product is the canonical catalog record. IDs are integers issued from the
// counters collection; only the admin endpoints mutate products.
type Product struct {
	ID          int       `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Category    string    `json:"category" bson:"category"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	Rating      float64   `json:"rating" bson:"rating"`
	Description string    `json:"description" bson:"description"`
	Image       string    `json:"image" bson:"image"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
	ImageBase64 string    `json:"image_base64,omitempty" bson:"-"`
}

// ProductInput carries the admin create/update payload.
type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" binding:"required"`
	Stock       int     `json:"stock"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	ImageBase64 string  `json:"image_base64"`
}

// Stats mirrors the admin dashboard counters.
type Stats struct {
	TotalProducts  int64   `json:"total_products"`
	TotalUsers     int64   `json:"total_users"`
	InventoryValue float64 `json:"inventory_value"`
	TotalSales     float64 `json:"total_sales"`
}
