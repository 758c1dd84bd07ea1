package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates the lending schema. The partial index keeps at most one
// open checkout per item even if an administrative status edit lets a
// second reservation through.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&actorModel{}, &equipmentModel{}, &reservationModel{}, &checkoutModel{}); err != nil {
		return err
	}

	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS ux_%[1]s_open_equipment
	  ON %[1]s (equipment_id)
	  WHERE checked_in_at IS NULL
	`, checkoutModel{}.TableName())).Error; err != nil {
		return err
	}

	return nil
}
