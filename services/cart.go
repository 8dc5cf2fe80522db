package services

import (
	"errors"

	"shoplet-backend/models"
)

var (
	ErrOutOfStock = errors.New("out of stock")
	ErrNotInCart  = errors.New("product is not in the cart")
)

// MergeOrders reconciles a client's locally-held cart against the stored one.
// The stored cart is the base; a local line whose product id already exists
// adds its count to the stored count, anything else is appended. Counts sum
// deliberately (not max, not replace) so offline additions are never lost:
// local count 2 + stored count 3 yields 5.
func MergeOrders(local, db []models.CartItem) []models.CartItem {
	merged := append([]models.CartItem{}, db...)

	for _, line := range local {
		found := false
		for i := range merged {
			if merged[i].ID == line.ID {
				merged[i].Count += line.Count
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, line)
		}
	}
	return merged
}

// AddItem puts one more unit of product into the cart: a new line with count 1
// if the product is absent, otherwise count+1. The product record must be
// fetched fresh by the caller; when stock is exhausted or the increment would
// exceed it, ErrOutOfStock is returned and the cart is left untouched.
func AddItem(orders []models.CartItem, product models.Product) ([]models.CartItem, error) {
	current := 0
	for _, line := range orders {
		if line.ID == product.ID {
			current = line.Count
			break
		}
	}

	if product.Stock <= 0 || current+1 > product.Stock {
		return orders, ErrOutOfStock
	}

	updated := append([]models.CartItem{}, orders...)
	if current == 0 {
		updated = append(updated, models.CartItem{Product: product, Count: 1})
		return updated, nil
	}
	for i := range updated {
		if updated[i].ID == product.ID {
			updated[i].Count++
			break
		}
	}
	return updated, nil
}

// DecreaseItem removes one unit: a line at count 1 disappears entirely,
// anything higher just loses one.
func DecreaseItem(orders []models.CartItem, productID int) ([]models.CartItem, error) {
	for _, line := range orders {
		if line.ID == productID {
			if line.Count == 1 {
				return RemoveItem(orders, productID), nil
			}
			updated := append([]models.CartItem{}, orders...)
			for i := range updated {
				if updated[i].ID == productID {
					updated[i].Count--
					break
				}
			}
			return updated, nil
		}
	}
	return orders, ErrNotInCart
}

// RemoveItem drops the line for productID regardless of its count.
func RemoveItem(orders []models.CartItem, productID int) []models.CartItem {
	updated := []models.CartItem{}
	for _, line := range orders {
		if line.ID != productID {
			updated = append(updated, line)
		}
	}
	return updated
}

// Summarize prices a cart: 10% tax, flat $10 shipping waived over $100.
func Summarize(items []models.CartItem) models.OrderSummary {
	summary := models.OrderSummary{}
	for _, line := range items {
		summary.Subtotal += line.Price * float64(line.Count)
	}
	summary.Tax = summary.Subtotal * 0.1
	if summary.Subtotal <= 100 {
		summary.Shipping = 10
	}
	summary.Total = summary.Subtotal + summary.Tax + summary.Shipping
	return summary
}
