// seed inserts sample persons, skills, and tasks into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aduvernay/staffing-api/config"
	"github.com/aduvernay/staffing-api/internal/auth"
	"github.com/aduvernay/staffing-api/internal/infrastructure/postgres"
)

const seedPassword = "secret42"

type personSpec struct {
	nom    string
	prenom string
	email  string
	skills []string
}

var persons = []personSpec{
	{"Martin", "Alice", "alice.martin@test.local", []string{"go", "postgres"}},
	{"Dubois", "Bruno", "bruno.dubois@test.local", []string{"frontend"}},
	{"Lefevre", "Chloe", "chloe.lefevre@test.local", []string{"go", "devops"}},
}

type taskSpec struct {
	title       string
	description string
	planned     float64
}

var tasks = []taskSpec{
	{"Refactor billing module", "Split the invoice generator out of the monolith", 16},
	{"Write onboarding docs", "Document the local dev setup", 4},
	{"Harden API rate limits", "Tune the per-client window for production traffic", 8},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := postgres.Migrate(ctx, cfg.DatabaseURL()); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	var inserted, skipped int
	for _, spec := range persons {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO persons (nom, prenom, email, password_hash)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO NOTHING
			RETURNING id`,
			spec.nom, spec.prenom, spec.email, hash,
		).Scan(&id)
		if err != nil {
			// no row returned means the person already exists
			skipped++
			continue
		}
		inserted++

		for _, skill := range spec.skills {
			var skillID int64
			if err := pool.QueryRow(ctx, `
				INSERT INTO skills (name) VALUES ($1)
				ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
				RETURNING id`,
				skill,
			).Scan(&skillID); err != nil {
				log.Fatalf("upsert skill %s: %v", skill, err)
			}
			if _, err := pool.Exec(ctx, `
				INSERT INTO person_skills (person_id, skill_id)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING`,
				id, skillID,
			); err != nil {
				log.Fatalf("link skill %s: %v", skill, err)
			}
		}
	}

	for _, spec := range tasks {
		if _, err := pool.Exec(ctx, `
			INSERT INTO tasks (title, description, time_planned, time_remaining)
			SELECT $1, $2, $3, $3
			WHERE NOT EXISTS (SELECT 1 FROM tasks WHERE title = $1)`,
			spec.title, spec.description, spec.planned,
		); err != nil {
			log.Fatalf("insert task %s: %v", spec.title, err)
		}
	}

	fmt.Println("Seed complete")
	fmt.Printf("  Persons inserted: %d (skipped %d already existing)\n", inserted, skipped)
	fmt.Printf("  Password for all seed accounts: %s\n", seedPassword)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  curl -s -X POST http://localhost:5000/api/login \\")
	fmt.Println("    -H 'Content-Type: application/json' \\")
	fmt.Printf("    -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", persons[0].email, seedPassword)
	fmt.Println()
	fmt.Println("  export JWT=eyJ...")
	fmt.Println("  curl -s http://localhost:5000/api/tasks -H \"Authorization: Bearer $JWT\"")
}
