package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shoplet-backend/models"
)

// GetUsers lists accounts, optionally filtered by ?email=. Admin only.
func (ctrl *Controller) GetUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users, err := ctrl.Store.ListUsers(ctx, c.Query("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser returns one account. Self or admin.
func (ctrl *Controller) GetUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := ctrl.Store.GetUser(ctx, c.Param("id"))
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// applyUpdate merges the fields present in the body over the stored record.
// The id, role, password and version never change through this path.
func applyUpdate(user *models.User, update *models.UserUpdate) {
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Orders != nil {
		user.Orders = *update.Orders
	}
	if update.PurchasedItems != nil {
		user.PurchasedItems = *update.PurchasedItems
	}
}

// UpdateUser handles PUT and PATCH on /users/:id. Both merge only the fields
// present in the body, which is what the storefront client relies on when it
// saves the cart by writing the user record. Writes for one user are applied
// in submission order through the save queue.
func (ctrl *Controller) UpdateUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var update models.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	var user *models.User
	err := ctrl.SaveQueue.Do(id, func() error {
		var err error
		user, err = ctrl.Store.GetUser(ctx, id)
		if err != nil {
			return err
		}
		applyUpdate(user, &update)
		return ctrl.Store.ReplaceUser(ctx, user)
	})
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "Failed to update user: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes an account. Admin only.
func (ctrl *Controller) DeleteUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := ctrl.Store.DeleteUser(ctx, c.Param("id")); err != nil {
		c.JSON(storeStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
