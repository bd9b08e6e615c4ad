package author

import "github.com/kailas-cloud/crudex/internal/db"

// Schema returns the DDL creating the author table for driver.
func Schema(driver string) []string {
	if driver == db.DriverSQLite {
		return []string{`CREATE TABLE IF NOT EXISTS author (
	id_author INTEGER PRIMARY KEY AUTOINCREMENT,
	name      TEXT    NOT NULL,
	locked    BOOLEAN NOT NULL DEFAULT FALSE
)`}
	}
	return []string{`CREATE TABLE IF NOT EXISTS author (
	id_author BIGSERIAL PRIMARY KEY,
	name      TEXT    NOT NULL,
	locked    BOOLEAN NOT NULL DEFAULT FALSE
)`}
}
