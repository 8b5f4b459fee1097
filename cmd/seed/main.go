package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/streamvault/streamvault/config"
	"github.com/streamvault/streamvault/pkg/helpers"
)

// Seeds a demo channel with one published video so a fresh environment has
// something to browse.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var ownerID string
	err = db.QueryRow(`
		INSERT INTO users (user_name, email, password_hash, full_name, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING id
	`, "demochannel", "demo@streamvault.dev", hash, "Demo Channel", "https://storage.googleapis.com/streamvault-dev/avatars/demo.png").Scan(&ownerID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=demo@streamvault.dev password=%s\n", ownerID, password)

	var viewerID string
	err = db.QueryRow(`
		INSERT INTO users (user_name, email, password_hash, full_name, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING id
	`, "demoviewer", "viewer@streamvault.dev", hash, "Demo Viewer", "").Scan(&viewerID)
	if err != nil {
		log.Fatalf("failed to seed viewer: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=viewer@streamvault.dev password=%s\n", viewerID, password)

	// videos has no natural unique key, so guard on (owner, title) to keep
	// reruns from stacking up demo videos.
	var videoID string
	err = db.QueryRow(`
		INSERT INTO videos (owner_id, video_url, thumbnail_url, title, description, duration, is_published)
		SELECT $1, $2, $3, $4, $5, $6, true
		WHERE NOT EXISTS (SELECT 1 FROM videos WHERE owner_id = $1 AND title = $4)
		RETURNING id
	`, ownerID,
		"https://storage.googleapis.com/streamvault-dev/videos/welcome.mp4",
		"https://storage.googleapis.com/streamvault-dev/thumbnails/welcome.jpg",
		"Welcome to StreamVault",
		"A short tour of the platform.",
		42.0).Scan(&videoID)
	if err != nil && err != sql.ErrNoRows {
		log.Fatalf("failed to seed video: %v", err)
	}
	if videoID != "" {
		fmt.Printf("seeded video: id=%s\n", videoID)
	}

	if _, err := db.Exec(`
		INSERT INTO subscriptions (subscriber_id, channel_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, viewerID, ownerID); err != nil {
		log.Fatalf("failed to seed subscription: %v", err)
	}
	fmt.Println("seeded subscription: demoviewer -> demochannel")
}
