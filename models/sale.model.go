package models

import "time"

// SoldProduct is one denormalized line of the sales ledger, written once at
// checkout and never mutated. Reporting aggregates these at read time.
type SoldProduct struct {
	ProductID   int       `json:"product_id" bson:"product_id"`
	ProductName string    `json:"product_name" bson:"product_name"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	TotalAmount float64   `json:"total_amount" bson:"total_amount"`
	SoldAt      time.Time `json:"sold_at" bson:"sold_at"`
	UserID      string    `json:"user_id" bson:"user_id"`
	UserName    string    `json:"user_name" bson:"user_name"`
	PurchaseID  string    `json:"purchase_id" bson:"purchase_id"`
}

// OrderSummary is the checkout price breakdown: 10% tax, flat $10 shipping
// waived on subtotals over $100.
type OrderSummary struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}
