// Command main runs the database seeder for Darkroom.
package main

import (
	"flag"
	"log"

	"darkroom/internal/config"
	"darkroom/internal/database"
	"darkroom/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numPhotos := flag.Int("photos", 100, "Number of photos to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d photos, clean=%v", *numUsers, *numPhotos, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	photos, err := s.SeedPhotos(users, *numPhotos)
	if err != nil {
		log.Fatalf("Photo seeding failed: %v", err)
	}
	if err := s.SeedEngagement(users, photos); err != nil {
		log.Fatalf("Engagement seeding failed: %v", err)
	}

	log.Println("All done. Test users have the password: password123")
}
