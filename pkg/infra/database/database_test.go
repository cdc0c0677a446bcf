package database_test

import (
	"testing"

	"github.com/NeuralTrust/Gatekeeper/pkg/config"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/database"
	_ "github.com/NeuralTrust/Gatekeeper/pkg/infra/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := database.DSN(&config.DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "gatekeeper",
		Password: "secret",
		DBName:   "gatekeeper",
		SSLMode:  "disable",
	})
	assert.Equal(t, "host=db port=5432 user=gatekeeper password=secret dbname=gatekeeper sslmode=disable", dsn)
}

func TestRegisteredMigrations_SortedByID(t *testing.T) {
	migrations := database.RegisteredMigrations()
	require.GreaterOrEqual(t, len(migrations), 2)

	ids := make([]string, 0, len(migrations))
	for _, m := range migrations {
		assert.NotNil(t, m.Up, m.ID)
		assert.NotNil(t, m.Down, m.ID)
		ids = append(ids, m.ID)
	}
	assert.IsIncreasing(t, ids)
	assert.Contains(t, ids, "20250301_create_users_table")
	assert.Contains(t, ids, "20250302_create_password_resets_table")
}

func TestRegisterMigration_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		database.RegisterMigration(database.Migration{ID: "20250301_create_users_table"})
	})
}
