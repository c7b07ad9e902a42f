package record

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/elgoog577215-beep/skyfall/component"
	"github.com/elgoog577215-beep/skyfall/event"
)

// Run is one finished run in the final-score ledger
type Run struct {
	ID         string `gorm:"primaryKey;size:36"`
	Seed       uint64
	Score      int64 `gorm:"index"`
	Light      int
	Medium     int
	Heavy      int
	Hazard     int
	Collisions int
	ShotsFired int
	DurationMs int64
	EndedAt    time.Time `gorm:"index"`
}

// Destroyed returns the total obstacles destroyed during the run
func (r Run) Destroyed() int {
	return r.Light + r.Medium + r.Heavy + r.Hazard
}

// FromSummary converts the terminal-state summary into a ledger row
func FromSummary(s event.RunSummary, seed uint64) Run {
	return Run{
		ID:         s.ID.String(),
		Seed:       seed,
		Score:      s.Score,
		Light:      s.Destroyed[component.KindLight],
		Medium:     s.Destroyed[component.KindMedium],
		Heavy:      s.Destroyed[component.KindHeavy],
		Hazard:     s.Destroyed[component.KindHazard],
		Collisions: s.Collisions,
		ShotsFired: s.ShotsFired,
		DurationMs: s.Duration.Milliseconds(),
		EndedAt:    s.EndedAt.UTC(),
	}
}

// Store is the sqlite-backed ledger
type Store struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	logger zerolog.Logger
}

// Open opens or creates the ledger at path and migrates the schema
// An empty path opens a private in-memory database
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open ledger %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql interface: %w", err)
	}
	// Single connection keeps an in-memory database alive and serializes sqlite writers
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Run{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}

	s := &Store{db: db, sqlDB: sqlDB, logger: log.With().Str("component", "record").Logger()}
	if path == "" {
		s.logger.Debug().Msg("using in-memory ledger")
	} else {
		s.logger.Info().Str("path", path).Msg("ledger opened")
	}
	return s, nil
}

// Save inserts run, a duplicate ID is an error
func (s *Store) Save(ctx context.Context, run Run) error {
	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

// Best returns the highest-scoring run, earliest first on ties
func (s *Store) Best(ctx context.Context) (Run, bool, error) {
	var runs []Run
	err := s.db.WithContext(ctx).
		Order("score DESC").
		Order("ended_at ASC").
		Limit(1).
		Find(&runs).Error
	if err != nil {
		return Run{}, false, fmt.Errorf("best run: %w", err)
	}
	if len(runs) == 0 {
		return Run{}, false, nil
	}
	return runs[0], true, nil
}

// Recent returns up to n runs, newest first
func (s *Store) Recent(ctx context.Context, n int) ([]Run, error) {
	if n <= 0 {
		return nil, nil
	}
	var runs []Run
	err := s.db.WithContext(ctx).
		Order("ended_at DESC").
		Limit(n).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	return runs, nil
}

// Count returns the number of stored runs
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Run{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.sqlDB.Close()
}
