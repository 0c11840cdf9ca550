// Command migrate applies the database migrations for the postgres history
// backend. The connection string comes from the -db flag, the DATABASE_URL
// environment variable, or the tracker's own database configuration, in
// that order.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/jjf3/heated-rivalry-tracker/internal/config"
)

func main() {
	var (
		dbURL          string
		migrationsPath string
		direction      string
		steps          int
	)

	flag.StringVar(&dbURL, "db", "", "Database URL (overrides DATABASE_URL and config)")
	flag.StringVar(&migrationsPath, "path", "./migrations", "Path to migrations directory")
	flag.StringVar(&direction, "direction", "up", "Migration direction: up or down")
	flag.IntVar(&steps, "steps", 0, "Number of steps to migrate (0 means all)")
	flag.Parse()

	if err := run(dbURL, migrationsPath, direction, steps); err != nil {
		log.Fatal(err)
	}
}

func run(dbURL, migrationsPath, direction string, steps int) error {
	dsn, err := resolveDSN(dbURL)
	if err != nil {
		return err
	}

	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), dsn)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch direction {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	default:
		return fmt.Errorf("invalid direction %q (must be 'up' or 'down')", direction)
	}

	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, err := m.Version()
	switch err {
	case nil:
		log.Printf("migration complete (version: %d, dirty: %t)", version, dirty)
	case migrate.ErrNilVersion:
		log.Println("migration complete (no version)")
	default:
		return fmt.Errorf("read migration version: %w", err)
	}
	return nil
}

// resolveDSN picks the connection string: explicit flag, then environment,
// then the tracker config's database section.
func resolveDSN(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv("DATABASE_URL"); env != "" {
		return env, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	return dsnFromConfig(cfg.Database), nil
}

func dsnFromConfig(dc config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dc.User, dc.Password),
		Host:     fmt.Sprintf("%s:%d", dc.Host, dc.Port),
		Path:     dc.Name,
		RawQuery: "sslmode=" + dc.SSLMode,
	}
	return u.String()
}
