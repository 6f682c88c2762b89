// Command main runs the database seeder for Quill.
package main

import (
	"flag"
	"log"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	presetPath := flag.String("preset", "", "Path to a YAML seeding preset (overrides count flags)")
	flag.Parse()

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

	if *presetPath != "" {
		preset, err := seed.LoadPreset(*presetPath)
		if err != nil {
			log.Fatalf("Preset load failed: %v", err)
		}
		if err := s.ApplyPreset(preset); err != nil {
			log.Fatalf("Preset seeding failed: %v", err)
		}
	} else {
		if err := s.Run(*numUsers, *numPosts); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}

	log.Println("Done. All test users have the password: password123")
}
