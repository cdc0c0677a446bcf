package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const migrationsTable = "schema_migrations"

// Migration is one schema step. IDs sort lexically in application order.
type Migration struct {
	ID   string
	Name string
	Up   func(tx *gorm.DB) error
	Down func(tx *gorm.DB) error
}

type appliedMigration struct {
	ID        string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (appliedMigration) TableName() string {
	return migrationsTable
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]Migration)
)

// RegisterMigration is called from the init of every migration file.
func RegisterMigration(m Migration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[m.ID]; exists {
		panic(fmt.Sprintf("migration %s registered twice", m.ID))
	}
	registry[m.ID] = m
}

// RegisteredMigrations returns every known migration sorted by ID.
func RegisteredMigrations() []Migration {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]Migration, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type MigrationsManager struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewMigrationsManager(db *gorm.DB, logger *logrus.Logger) *MigrationsManager {
	return &MigrationsManager{db: db, logger: logger}
}

// ApplyPending runs, in ID order, every registered migration not yet recorded.
// Each migration and its bookkeeping row share one transaction.
func (m *MigrationsManager) ApplyPending(ctx context.Context) ([]string, error) {
	db := m.db.WithContext(ctx)
	if err := db.AutoMigrate(&appliedMigration{}); err != nil {
		return nil, fmt.Errorf("ensure %s table: %w", migrationsTable, err)
	}

	var rows []appliedMigration
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	applied := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		applied[r.ID] = struct{}{}
	}

	var done []string
	for _, mig := range RegisteredMigrations() {
		if _, ok := applied[mig.ID]; ok {
			continue
		}
		if mig.Up == nil {
			return done, fmt.Errorf("migration %s has no Up step", mig.ID)
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}
			return tx.Create(&appliedMigration{ID: mig.ID, Name: mig.Name, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return done, fmt.Errorf("apply migration %s (%s): %w", mig.ID, mig.Name, err)
		}
		m.logger.WithFields(logrus.Fields{
			"id":   mig.ID,
			"name": mig.Name,
		}).Info("migration applied")
		done = append(done, mig.ID)
	}
	return done, nil
}

// RollbackLast reverts the most recently applied migration, if any.
func (m *MigrationsManager) RollbackLast(ctx context.Context) (string, error) {
	db := m.db.WithContext(ctx)
	var last appliedMigration
	res := db.Order("id DESC").Limit(1).Find(&last)
	if res.Error != nil {
		return "", fmt.Errorf("load last migration: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return "", nil
	}

	registryMu.Lock()
	mig, ok := registry[last.ID]
	registryMu.Unlock()
	if !ok || mig.Down == nil {
		return "", fmt.Errorf("migration %s cannot be rolled back", last.ID)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := mig.Down(tx); err != nil {
			return err
		}
		return tx.Delete(&appliedMigration{ID: last.ID}).Error
	})
	if err != nil {
		return "", fmt.Errorf("rollback migration %s: %w", last.ID, err)
	}
	m.logger.WithField("id", last.ID).Info("migration rolled back")
	return last.ID, nil
}
