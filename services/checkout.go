package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"shoplet-backend/models"
	"shoplet-backend/store"
)

var ErrNoOrders = errors.New("no orders to complete")

// PurchasePublisher emits a purchase.completed event after checkout. Failures
// are never fatal to the purchase.
type PurchasePublisher interface {
	PublishPurchaseCompleted(ctx context.Context, user *models.User, group models.PurchaseGroup, total float64) error
}

// CheckoutService runs the purchase completion transition: cart → purchased.
type CheckoutService struct {
	store     store.Store
	publisher PurchasePublisher
}

// NewCheckoutService wires the checkout path. publisher may be nil when no
// event broker is configured.
func NewCheckoutService(s store.Store, publisher PurchasePublisher) *CheckoutService {
	return &CheckoutService{store: s, publisher: publisher}
}

// CheckoutResult is what a completed purchase hands back to the client.
type CheckoutResult struct {
	User     *models.User         `json:"user"`
	Purchase models.PurchaseGroup `json:"purchase"`
	Sold     []models.SoldProduct `json:"sold_products"`
	Summary  models.OrderSummary  `json:"summary"`
}

// CompletePurchase snapshots the user's cart into a new immutable purchase
// group, empties the cart in a single version-checked user write, then appends
// one sold-product record per line to the sales ledger. An empty cart fails
// with ErrNoOrders before anything is touched. A ledger failure after the user
// write succeeded is logged and not rolled back; the purchase stands.
func (cs *CheckoutService) CompletePurchase(ctx context.Context, userID string) (*CheckoutResult, error) {
	user, err := cs.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Orders) == 0 {
		return nil, ErrNoOrders
	}

	now := time.Now().UTC()
	purchaseID := fmt.Sprintf("purchase_%d", now.UnixMilli())
	items := append([]models.CartItem{}, user.Orders...)

	sold := make([]models.SoldProduct, 0, len(items))
	for _, line := range items {
		sold = append(sold, models.SoldProduct{
			ProductID:   line.ID,
			ProductName: line.Name,
			Quantity:    line.Count,
			TotalAmount: line.Price * float64(line.Count),
			SoldAt:      now,
			UserID:      user.ID,
			UserName:    user.Name,
			PurchaseID:  purchaseID,
		})
	}

	group := models.PurchaseGroup{
		PurchaseID:  purchaseID,
		PurchasedAt: now,
		Items:       items,
	}
	summary := Summarize(items)

	user.PurchasedItems = append(user.PurchasedItems, group)
	user.Orders = []models.CartItem{}
	if err := cs.store.ReplaceUser(ctx, user); err != nil {
		return nil, err
	}

	if err := cs.store.InsertSoldProducts(ctx, sold); err != nil {
		log.Printf("sold ledger write failed for %s: %v", purchaseID, err)
	}

	if cs.publisher != nil {
		if err := cs.publisher.PublishPurchaseCompleted(ctx, user, group, summary.Total); err != nil {
			log.Printf("purchase event publish failed for %s: %v", purchaseID, err)
		}
	}

	return &CheckoutResult{
		User:     user,
		Purchase: group,
		Sold:     sold,
		Summary:  summary,
	}, nil
}
