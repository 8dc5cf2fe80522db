package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shoplet-backend/controllers"
)

// Setup configures and returns the Gin engine.
func Setup(ctrl *controllers.Controller, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	auth := ctrl.Auth

	api := r.Group("/api")
	{
		api.GET("/health", ctrl.HealthCheck)

		api.POST("/login", ctrl.Login)
		api.POST("/register", ctrl.Register)

		api.GET("/products", ctrl.GetProducts)
		api.GET("/products/:id", ctrl.GetProduct)

		admin := api.Group("", auth.Authenticate(), auth.RequireAdmin())
		{
			admin.POST("/products", ctrl.CreateProduct)
			admin.PUT("/products/:id", ctrl.UpdateProduct)
			admin.DELETE("/products/:id", ctrl.DeleteProduct)

			admin.GET("/users", ctrl.GetUsers)
			admin.DELETE("/users/:id", ctrl.DeleteUser)

			admin.GET("/soldProducts", ctrl.GetSoldProducts)
			admin.POST("/soldProducts", ctrl.CreateSoldProducts)

			admin.GET("/stats", ctrl.GetStats)
		}

		users := api.Group("/users/:id", auth.Authenticate(), auth.RequireSelfOrAdmin())
		{
			users.GET("", ctrl.GetUser)
			users.PUT("", ctrl.UpdateUser)
			users.PATCH("", ctrl.UpdateUser)

			users.POST("/orders/sync", ctrl.SyncOrders)
			users.POST("/orders", ctrl.AddOrderItem)
			users.DELETE("/orders/:productId", ctrl.RemoveOrderItem)

			users.POST("/checkout", ctrl.CompletePurchase)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
	return r
}
