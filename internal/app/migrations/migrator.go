package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/yigit/internhub/internal/db"
)

// Store is what the migrator needs from the database.
type Store interface {
	db.Querier
	db.Beginner
}

// Migration is one SQL file of the migrations directory.
type Migration struct {
	Version string
	Path    string
}

// Migrator manages database migrations
type Migrator struct {
	db     Store
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(store Store, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     store,
		logger: logger,
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := m.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// Apply runs one migration and records it in the same transaction, so a
// failed file leaves no trace in schema_migrations.
func (m *Migrator) Apply(ctx context.Context, mig Migration) error {
	applied, err := m.isMigrationApplied(ctx, mig.Version)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug().Str("version", mig.Version).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := os.ReadFile(mig.Path)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	err = db.WithTransaction(ctx, m.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("migration %s failed: %w", mig.Version, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", mig.Version, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info().Str("version", mig.Version).Str("file", filepath.Base(mig.Path)).Msg("Migration applied")
	return nil
}

// MigrateFromDirectory applies every pending SQL file of dirPath in order.
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dirPath string) error {
	migrations, err := Discover(dirPath)
	if err != nil {
		return err
	}

	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	for _, mig := range migrations {
		if err := m.Apply(ctx, mig); err != nil {
			return err
		}
	}
	return nil
}

// Discover lists the .sql files of dirPath sorted by name. The version is
// the file name prefix before the first underscore ("001_init.sql" is "001").
func Discover(dirPath string) ([]Migration, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, name := range names {
		version := strings.SplitN(strings.TrimSuffix(name, ".sql"), "_", 2)[0]
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %s", prev, name, version)
		}
		seen[version] = name
		migrations = append(migrations, Migration{Version: version, Path: filepath.Join(dirPath, name)})
	}
	return migrations, nil
}
