package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

const Schema = `
CREATE TABLE IF NOT EXISTS operations (
	id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	op TEXT NOT NULL,
	username TEXT NOT NULL,
	counterparty TEXT NOT NULL,
	amount REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_operations_username ON operations(username);
`

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) Record(r Record) error {
	_, err := j.db.Exec(`
		INSERT INTO operations
		(id, time, op, username, counterparty, amount)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Time, r.Op, r.Username, r.Counterparty, r.Amount,
	)
	return err
}

// ListByUsername returns an account's operations ordered by record ID, which
// ULIDs make chronological.
func (j *SQLiteJournal) ListByUsername(username string) ([]Record, error) {
	rows, err := j.db.Query(`
		SELECT id, time, op, username, counterparty, amount
		FROM operations
		WHERE username = ?
		ORDER BY id ASC`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.ID,
			&r.Time,
			&r.Op,
			&r.Username,
			&r.Counterparty,
			&r.Amount,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
