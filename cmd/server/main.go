package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"importony_back_end/internal/catalog"
	"importony_back_end/internal/config"
	"importony_back_end/internal/database"
	"importony_back_end/internal/handlers/admin"
	"importony_back_end/internal/routes"
	"importony_back_end/internal/services"
)

func main() {
	config.Load()

	// Registre de pools par tenant : les connexions MySQL sont ouvertes
	// paresseusement au premier accès de chaque boutique.
	database.Connect()
	defer database.Pools.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := services.ConnectMinio(ctx); err != nil {
		cancel()
		log.Fatalf("❌ Échec initialisation MinIO: %v", err)
	}
	cancel()

	store := catalog.NewSQLStore(database.Pools)
	svc := catalog.NewService(
		store,
		catalog.NewPhotoReconciler(store, services.Images),
		catalog.NewPackSync(store),
	)

	r := gin.Default()
	routes.RegisterRoutes(r, admin.NewHandler(svc))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur catalogue lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Serveur arrêté: %v", err)
	}
}
