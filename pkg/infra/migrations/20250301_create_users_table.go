package migrations

import (
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250301_create_users_table",
		Name: "Create users table",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS users (
					id          UUID PRIMARY KEY,
					lastname    TEXT NOT NULL,
					firstname   TEXT NOT NULL,
					username    TEXT NOT NULL,
					password    TEXT NOT NULL,
					roles       TEXT[] NOT NULL DEFAULT '{}',
					rate_limit  BIGINT NOT NULL DEFAULT -1,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					deleted_at  TIMESTAMPTZ
				);
			`).Error; err != nil {
				return err
			}

			// Usernames only need to be unique among live users
			if err := db.Exec(`
				CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username
				ON users (username) WHERE deleted_at IS NULL;
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_users_deleted_at
				ON users (deleted_at);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS users;`).Error
		},
	})
}
