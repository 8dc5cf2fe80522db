package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shoplet-backend/models"
	"shoplet-backend/services"
)

type addOrderRequest struct {
	ProductID int `json:"product_id" binding:"required"`
}

// SyncOrders reconciles a client's locally-held cart with the stored one and
// persists the merged result: stored lines win their position, shared product
// ids sum their counts, local-only lines are appended.
func (ctrl *Controller) SyncOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.SyncOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	var merged []models.CartItem
	err := ctrl.SaveQueue.Do(id, func() error {
		user, err := ctrl.Store.GetUser(ctx, id)
		if err != nil {
			return err
		}
		merged = services.MergeOrders(req.Orders, user.Orders)
		user.Orders = merged
		return ctrl.Store.ReplaceUser(ctx, user)
	})
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "Failed to update user: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": merged})
}

// AddOrderItem puts one unit of a product into the cart. The stock ceiling is
// read fresh from the product record; an exhausted product or an increment
// past its stock rejects the call and leaves the cart as it was.
func (ctrl *Controller) AddOrderItem(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req addOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := ctrl.Store.GetProduct(ctx, req.ProductID)
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	var orders []models.CartItem
	err = ctrl.SaveQueue.Do(id, func() error {
		user, err := ctrl.Store.GetUser(ctx, id)
		if err != nil {
			return err
		}
		orders, err = services.AddItem(user.Orders, *product)
		if err != nil {
			return err
		}
		user.Orders = orders
		return ctrl.Store.ReplaceUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, services.ErrOutOfStock) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "out of stock"})
			return
		}
		c.JSON(storeStatus(err), gin.H{"error": "Failed to update user: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// RemoveOrderItem takes one unit out of the cart, or the whole line with
// ?mode=remove. A line that reaches count zero disappears either way.
func (ctrl *Controller) RemoveOrderItem(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}
	removeAll := c.Query("mode") == "remove"

	id := c.Param("id")
	var orders []models.CartItem
	err = ctrl.SaveQueue.Do(id, func() error {
		user, err := ctrl.Store.GetUser(ctx, id)
		if err != nil {
			return err
		}
		if removeAll {
			orders = services.RemoveItem(user.Orders, productID)
		} else {
			orders, err = services.DecreaseItem(user.Orders, productID)
			if err != nil {
				return err
			}
		}
		user.Orders = orders
		return ctrl.Store.ReplaceUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, services.ErrNotInCart) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(storeStatus(err), gin.H{"error": "Failed to update user: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
