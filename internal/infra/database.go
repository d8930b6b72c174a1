package infra

import (
	"fmt"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies any idempotent SQL patches that GORM
// cannot express (partial indexes, backfills on existing DBs).
//
// TranslateError is required: the attendance uniqueness guard relies on
// unique-violation errors surfacing as gorm.ErrDuplicatedKey.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates / updates all tables and applies the SQL patches.
// Also used by test setups that provision a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Employee{},
		&model.Company{},
		&model.Area{},
		&model.Location{},
		&model.Place{},
		&model.Evaluation{},
		&model.Attendance{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// fully handle on its own. Each statement uses IF NOT EXISTS / existence-guard
// semantics so re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Partial index for the low-score alert follow-up query: only a small
		// fraction of evaluations score below threshold.
		{"partial index on low-score evaluations", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_evaluations_low_score') THEN
    CREATE INDEX idx_evaluations_low_score
        ON evaluations (date)
        WHERE overall_score < 2.5;
  END IF;
END $$`},
		// Dashboard date-range scans hit evaluations(date) constantly.
		{"index on evaluations date", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_evaluations_date') THEN
    CREATE INDEX idx_evaluations_date ON evaluations (date);
  END IF;
END $$`},
		// Monthly report scans hit attendances(date).
		{"index on attendances date", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_attendances_date') THEN
    CREATE INDEX idx_attendances_date ON attendances (date);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
