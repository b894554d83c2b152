// Command seed populates the configured database with generated users and
// posts for local development.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/credentials"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	users := flag.Int("users", 5, "number of users to create")
	posts := flag.Int("posts", 20, "number of posts to create")
	clean := flag.Bool("clean", false, "wipe existing users and posts first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	scheme, err := credentials.ForName(cfg.PasswordScheme)
	if err != nil {
		log.Fatalf("Invalid password scheme: %v", err)
	}

	if err := seed.Run(db, scheme, seed.Options{
		Users: *users,
		Posts: *posts,
		Clean: *clean,
	}); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	log.Printf("Seeded %d users and %d posts (default password %q)", *users, *posts, seed.DefaultPassword)
}
