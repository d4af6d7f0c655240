package catalog

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
)

// readSQLite reads the dataset from a songs(title, artist, lyrics) table.
// The database is only touched at startup; the connection is closed before
// the engine accepts traffic.
func readSQLite(path string) ([]Row, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open sqlite db: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("catalog: ping sqlite db: %w", err)
	}

	dbRows, err := db.Query("SELECT title, artist, lyrics FROM songs")
	if err != nil {
		return nil, fmt.Errorf("catalog: query songs: %w", err)
	}
	defer dbRows.Close()

	var rows []Row
	for dbRows.Next() {
		var row Row
		var lyrics sql.NullString
		if err := dbRows.Scan(&row.Title, &row.Artist, &lyrics); err != nil {
			return nil, fmt.Errorf("catalog: scan song row: %w", err)
		}
		if lyrics.Valid {
			row.Lyrics = lyrics.String
		}
		rows = append(rows, row)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate song rows: %w", err)
	}

	return rows, nil
}
