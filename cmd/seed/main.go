// cmd/seedはリモート版のテナントを帯域外に作成するCLIです。
// テナント1行と既定の50タスク行をMySQLへ投入します。
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/hwllojeena/bucket-list/internal/database"
	"github.com/hwllojeena/bucket-list/internal/models"
	"github.com/hwllojeena/bucket-list/internal/repositories"
)

func main() {
	slug := flag.String("slug", "", "URL slug for the new tenant (required)")
	passcode := flag.String("passcode", "", "4-digit passcode (required)")
	heading := flag.String("heading", "Our Bucket List", "heading text")
	subheading := flag.String("subheading", "50 adventures waiting for us.", "subheading text")
	progressText := flag.String("progress", "adventures completed", "progress label")
	lockText := flag.String("lock", "Enter the magic numbers", "lock screen label")
	hint := flag.String("hint", "", "passcode hint (defaults to MM/DD wording)")
	color := flag.String("color", "#ef4444", "theme color")
	flag.Parse()

	if *slug == "" || *passcode == "" {
		flag.Usage()
		log.Fatal("Fatal: -slug and -passcode are required")
	}
	if len(*passcode) != 4 {
		log.Fatal("Fatal: passcode must be 4 digits")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx := context.Background()
	db := database.InitDB()
	defer db.Close()

	store := repositories.NewRemoteStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Fatal: Failed to ensure schema: %v", err)
	}

	tenant := &models.Tenant{
		ID:             uuid.NewString(),
		Slug:           *slug,
		Passcode:       *passcode,
		HeadingText:    *heading,
		SubheadingText: *subheading,
		ProgressText:   *progressText,
		LockText:       *lockText,
		Hint:           *hint,
		ColorTheme:     *color,
	}
	if err := store.CreateTenant(ctx, tenant); err != nil {
		if errors.Is(err, repositories.ErrDuplicateSlug) {
			log.Fatalf("Fatal: slug %q is already taken", *slug)
		}
		log.Fatalf("Fatal: Failed to create tenant: %v", err)
	}

	if err := store.SaveAll(ctx, *slug, repositories.DefaultTasks(), nil); err != nil {
		log.Fatalf("Fatal: Failed to seed tasks: %v", err)
	}

	log.Printf("Created tenant %s (%s) with %d tasks", tenant.Slug, tenant.ID, len(repositories.DefaultTasks()))
}
