package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/dangtrinh58/goshop/internal/config"
)

const versionTimeFormat = "20060102150405"

func main() {
	rootCmd := &cobra.Command{Use: "goshop"}
	rootCmd.AddCommand(
		migrateCommand(),
		createMigrationCommand(),
		seedCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "apply pending schema migrations",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Load()
			m, err := migrate.New(
				"file://"+cfg.MigrationDir,
				"mysql://"+cfg.MySQLDSN,
			)
			if err != nil {
				log.Fatalf("open migrations: %v", err)
			}

			err = m.Up()
			if errors.Is(err, migrate.ErrNoChange) {
				log.Println("schema already up to date")
				return
			}
			if err != nil {
				log.Fatalf("migrate: %v", err)
			}
			log.Println("migrations applied")
		},
	}
}

func createMigrationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-create [name]",
		Short: "create an empty pair of migration files",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Load()
			version := time.Now().Format(versionTimeFormat)
			up := fmt.Sprintf("%s/%s_%s.up.sql", cfg.MigrationDir, version, args[0])
			down := fmt.Sprintf("%s/%s_%s.down.sql", cfg.MigrationDir, version, args[0])

			for _, path := range []string{up, down} {
				if err := os.WriteFile(path, nil, 0o644); err != nil {
					log.Fatalf("create %s: %v", path, err)
				}
				log.Printf("created %s", path)
			}
		},
	}
}

func seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "load initial categories, products and an admin account",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Load()
			db, err := sqlx.Connect("mysql", cfg.MySQLDSN)
			if err != nil {
				log.Fatalf("connect mysql: %v", err)
			}
			defer db.Close()

			if err := seed(context.Background(), db); err != nil {
				log.Fatalf("seed: %v", err)
			}
			log.Println("seed data loaded")
		},
	}
}

func seed(ctx context.Context, db *sqlx.DB) error {
	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT IGNORE INTO users (email, password, name, role)
		VALUES (?, ?, 'Administrator', 'admin')`,
		"admin@goshop.local", string(adminHash),
	)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	categories := []string{"Electronics", "Clothing", "Books", "Home & Garden"}
	for _, name := range categories {
		if _, err := db.ExecContext(ctx,
			`INSERT IGNORE INTO categories (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
	}

	products := []struct {
		name     string
		category string
		price    string
		stock    int
	}{
		{"Wireless Mouse", "Electronics", "24.99", 120},
		{"Mechanical Keyboard", "Electronics", "89.90", 45},
		{"Cotton T-Shirt", "Clothing", "12.50", 300},
		{"The Go Programming Language", "Books", "39.99", 60},
		{"Ceramic Plant Pot", "Home & Garden", "15.00", 80},
	}
	for _, p := range products {
		_, err := db.ExecContext(ctx, `
			INSERT IGNORE INTO products (name, category_id, price, stock)
			VALUES (?, (SELECT id FROM categories WHERE name = ?), ?, ?)`,
			p.name, p.category, p.price, p.stock,
		)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.name, err)
		}
	}
	return nil
}
