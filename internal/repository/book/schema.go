package book

import "github.com/kailas-cloud/crudex/internal/db"

// Schema returns the DDL creating the book table for driver.
// The author table must exist first.
func Schema(driver string) []string {
	if driver == db.DriverSQLite {
		return []string{
			`CREATE TABLE IF NOT EXISTS book (
	id_book   INTEGER PRIMARY KEY AUTOINCREMENT,
	title     TEXT    NOT NULL,
	pages     INTEGER NOT NULL DEFAULT 0,
	price     REAL    NOT NULL DEFAULT 0,
	id_author INTEGER NOT NULL REFERENCES author (id_author)
)`,
			`CREATE INDEX IF NOT EXISTS book_id_author ON book (id_author)`,
		}
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS book (
	id_book   BIGSERIAL        PRIMARY KEY,
	title     TEXT             NOT NULL,
	pages     BIGINT           NOT NULL DEFAULT 0,
	price     DOUBLE PRECISION NOT NULL DEFAULT 0,
	id_author BIGINT           NOT NULL REFERENCES author (id_author)
)`,
		`CREATE INDEX IF NOT EXISTS book_id_author ON book (id_author)`,
	}
}
