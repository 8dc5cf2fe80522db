package main

import (
	"fmt"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"

	"shoplet-backend/config"
	"shoplet-backend/controllers"
	"shoplet-backend/events"
	"shoplet-backend/middleware"
	"shoplet-backend/routes"
	"shoplet-backend/services"
	"shoplet-backend/store"
)

func main() {
	cfg := config.Load()

	client, err := config.ConnectDB(cfg.MongoURI, cfg.MongoMode)
	if err != nil {
		log.Fatal(err)
	}
	db := store.NewMongoStore(client.Database("shoplet"))

	var cld *cloudinary.Cloudinary
	if cfg.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal("Failed to initialize Cloudinary:", err)
		}
	} else {
		log.Println("CLOUDINARY_URL not set, image upload disabled")
	}

	// checkout keeps working without a broker, events are just skipped
	var publisher services.PurchasePublisher
	if cfg.NatsURL != "" {
		natsPub, err := events.Connect(cfg.NatsURL)
		if err != nil {
			log.Println("NATS unavailable, purchase events disabled:", err)
		} else {
			defer natsPub.Close()
			publisher = natsPub
		}
	}

	auth := middleware.NewAuth(cfg.PasetoSecretKey)
	ctrl := &controllers.Controller{
		Store:     db,
		Cld:       cld,
		Auth:      auth,
		Checkout:  services.NewCheckoutService(db, publisher),
		SaveQueue: services.NewSaveQueue(),
	}

	r := routes.Setup(ctrl, cfg.Env)

	fmt.Printf("🚀 Server running on http://localhost:%s\n", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
