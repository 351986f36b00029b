package main

import (
	"context"
	"crypto/sha256"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
)

// Migration represents a single migration file
type Migration struct {
	Version  int
	Name     string
	Filename string
	SQL      string
	Checksum string
}

// AppliedMigration represents a migration that has already been applied
type AppliedMigration struct {
	Version   int
	Name      string
	AppliedAt time.Time
	Checksum  string
	AppliedBy string
}

var (
	databaseURL   = flag.String("database-url", os.Getenv("DATABASE_URL"), "Postgres connection string (or set DATABASE_URL env)")
	appliedBy     = flag.String("applied-by", "migrate-cli", "Name of the tool applying migrations")
	migrationsDir = flag.String("migrations", "migrations", "Path to migrations directory")
)

var migrationFilePattern = regexp.MustCompile(`^(\d{4})_(.+)\.sql$`)

func main() {
	flag.Parse()

	ctx := context.Background()

	if *databaseURL == "" {
		log.Fatal("Error: set DATABASE_URL or pass -database-url")
	}

	conn, err := pgx.Connect(ctx, *databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	log.Printf("Connected to database")

	// Ensure schema_migrations table exists
	if err := ensureSchemaMigrationsTable(ctx, conn); err != nil {
		log.Fatalf("Failed to ensure schema_migrations table: %v", err)
	}

	// Read migration files
	migrations, err := readMigrations(*migrationsDir)
	if err != nil {
		log.Fatalf("Failed to read migrations: %v", err)
	}

	log.Printf("Found %d migration files", len(migrations))

	// Get applied migrations
	applied, err := getAppliedMigrations(ctx, conn)
	if err != nil {
		log.Fatalf("Failed to get applied migrations: %v", err)
	}

	// Apply pending migrations in version order
	pending := 0
	for _, m := range migrations {
		prev, ok := applied[m.Version]
		if ok {
			if prev.Checksum != m.Checksum {
				log.Fatalf("Checksum mismatch for migration %04d_%s: file changed after being applied", m.Version, m.Name)
			}
			continue
		}

		log.Printf("Applying migration %04d_%s", m.Version, m.Name)
		if err := applyMigration(ctx, conn, m); err != nil {
			log.Fatalf("Failed to apply migration %04d_%s: %v", m.Version, m.Name, err)
		}
		pending++
	}

	if pending == 0 {
		log.Printf("Database is up to date")
	} else {
		log.Printf("Applied %d migrations", pending)
	}
}

func ensureSchemaMigrationsTable(ctx context.Context, conn *pgx.Conn) error {
	_, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			checksum   TEXT NOT NULL,
			applied_by TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}
	return nil
}

// readMigrations loads all NNNN_name.sql files from dir, sorted by version.
func readMigrations(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations dir %s: %w", dir, err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		m, ok := parseMigrationFilename(entry.Name())
		if !ok {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		m.SQL = string(content)
		m.Checksum = checksum(content)
		migrations = append(migrations, m)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// parseMigrationFilename matches NNNN_name.sql and extracts version and name.
func parseMigrationFilename(filename string) (Migration, bool) {
	matches := migrationFilePattern.FindStringSubmatch(filename)
	if matches == nil {
		return Migration{}, false
	}

	version, err := strconv.Atoi(matches[1])
	if err != nil {
		return Migration{}, false
	}

	return Migration{
		Version:  version,
		Name:     matches[2],
		Filename: filename,
	}, true
}

func checksum(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

func getAppliedMigrations(ctx context.Context, conn *pgx.Conn) (map[int]AppliedMigration, error) {
	rows, err := conn.Query(ctx,
		`SELECT version, name, applied_at, checksum, applied_by FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("querying schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]AppliedMigration)
	for rows.Next() {
		var m AppliedMigration
		if err := rows.Scan(&m.Version, &m.Name, &m.AppliedAt, &m.Checksum, &m.AppliedBy); err != nil {
			return nil, fmt.Errorf("scanning schema_migrations: %w", err)
		}
		applied[m.Version] = m
	}
	return applied, rows.Err()
}

// applyMigration runs the migration SQL and records it, atomically.
func applyMigration(ctx context.Context, conn *pgx.Conn, m Migration) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return fmt.Errorf("executing migration SQL: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (version, name, checksum, applied_by)
		 VALUES ($1, $2, $3, $4)`,
		m.Version, m.Name, m.Checksum, *appliedBy,
	); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}

	return tx.Commit(ctx)
}
