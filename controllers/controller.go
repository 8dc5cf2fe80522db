package controllers

import (
	"errors"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"

	"shoplet-backend/middleware"
	"shoplet-backend/services"
	"shoplet-backend/store"
)

// Controller holds the dependencies shared by all handlers.
type Controller struct {
	Store     store.Store
	Cld       *cloudinary.Cloudinary
	Auth      *middleware.Auth
	Checkout  *services.CheckoutService
	SaveQueue *services.SaveQueue
}

// storeStatus maps store errors onto HTTP statuses.
func storeStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrProductNotFound), errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict), errors.Is(err, store.ErrEmailTaken):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
