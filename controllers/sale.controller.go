package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shoplet-backend/models"
	"shoplet-backend/services"
)

// CompletePurchase checks out the user's cart: the current lines become a new
// immutable purchase group, the cart empties, and one sold-product record per
// line lands in the sales ledger. An empty cart fails without touching state.
func (ctrl *Controller) CompletePurchase(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := c.Param("id")
	var result *services.CheckoutResult
	err := ctrl.SaveQueue.Do(id, func() error {
		var err error
		result, err = ctrl.Checkout.CompletePurchase(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, services.ErrNoOrders) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(storeStatus(err), gin.H{"error": "Failed to complete purchase: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetSoldProducts returns the full sales ledger. Admin only.
func (ctrl *Controller) GetSoldProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := ctrl.Store.ListSoldProducts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sold_products": records})
}

// CreateSoldProducts appends ledger records directly. Admin only; the normal
// write path is checkout.
func (ctrl *Controller) CreateSoldProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var records []models.SoldProduct
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctrl.Store.InsertSoldProducts(ctx, records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sold_products": records})
}
