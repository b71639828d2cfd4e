package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/hwllojeena/bucket-list/internal/database"
	"github.com/hwllojeena/bucket-list/internal/repositories"
	"github.com/hwllojeena/bucket-list/internal/routes"
	"github.com/hwllojeena/bucket-list/internal/services"
	"github.com/hwllojeena/bucket-list/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	deps := routes.Deps{
		TokenService:    services.NewTokenService(),
		DefaultPasscode: getenvDefault("DEFAULT_PASSCODE", "1234"),
	}

	// STORE_DRIVER でローカル版(sqlite)とリモート版(mysql)を切り替える
	switch os.Getenv("STORE_DRIVER") {
	case "mysql":
		db := database.InitDB()
		store := repositories.NewRemoteStore(db)
		if err := store.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Fatal: Failed to ensure schema: %v", err)
		}

		objectStore, err := storage.NewS3Store(storage.S3Config{
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			Bucket:        os.Getenv("S3_BUCKET"),
			UseSSL:        os.Getenv("S3_USE_SSL") == "true",
			PublicBaseURL: os.Getenv("S3_PUBLIC_URL"),
		})
		if err != nil {
			log.Fatalf("Fatal: Failed to create object storage client: %v", err)
		}

		deps.DB = db
		deps.ListService = services.NewListService(store)
		deps.PhotoService = services.NewRemotePhotoService(objectStore)

	default:
		store, err := repositories.OpenLocalStore(getenvDefault("SQLITE_PATH", "bucketlist.db"))
		if err != nil {
			log.Fatalf("Fatal: Failed to open local store: %v", err)
		}
		deps.DB = store.DB
		deps.ListService = services.NewListService(store)
		deps.PhotoService = services.NewPhotoService()
	}

	r := routes.SetupRouter(deps)

	port := getenvDefault("PORT", "8080")
	log.Printf("Server listening on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
