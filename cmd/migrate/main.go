package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var (
		databaseURL string
		source      string
		up          bool
		down        bool
	)

	flag.StringVar(&databaseURL, "database", os.Getenv("DATABASE_URL"), "Postgres connection URL (defaults to DATABASE_URL)")
	flag.StringVar(&source, "source", "db/migrations", "Migrations directory")
	flag.BoolVar(&up, "up", false, "Apply pending migrations")
	flag.BoolVar(&down, "down", false, "Roll all migrations back")
	flag.Parse()

	if databaseURL == "" {
		log.Fatal("-database flag (or DATABASE_URL) is required")
	}
	if up == down {
		log.Fatal("exactly one of -up or -down is required")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatalf("failed to create database driver: %v", err)
	}
	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", source),
		"postgres",
		driver,
	)
	if err != nil {
		log.Fatalf("failed to create migrate instance: %v", err)
	}

	apply, direction := m.Up, "up"
	if down {
		apply, direction = m.Down, "down"
	}

	log.Printf("applying %s migrations from %s", direction, source)
	if err := apply(); err != nil {
		if err == migrate.ErrNoChange {
			log.Println("schema already current")
			os.Exit(0)
		}
		log.Fatalf("migration failed: %v", err)
	}
	log.Printf("%s migrations completed", direction)
}
