package migrations

import (
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250302_create_password_resets_table",
		Name: "Create password_resets table",

		Up: func(db *gorm.DB) error {
			return db.Exec(`
				CREATE TABLE IF NOT EXISTS password_resets (
					user_id     UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
					token       UUID NOT NULL UNIQUE,
					expired_at  TIMESTAMPTZ NOT NULL
				);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS password_resets;`).Error
		},
	})
}
