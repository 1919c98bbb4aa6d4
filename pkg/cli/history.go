package cli

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// History stores REPL inputs in a SQLite database, grouped by session so
// `:history` can show where one sitting ended and the next began.
type History struct {
	db        *sql.DB
	sessionID string
}

const historySchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL REFERENCES sessions(id),
	input      TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// OpenHistory opens (or creates) the history database at path and starts a
// new session in it.
func OpenHistory(path string) (*History, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, err
	}

	h := &History{db: db, sessionID: uuid.NewString()}
	if _, err := db.Exec(
		"INSERT INTO sessions (id, started_at) VALUES (?, ?)",
		h.sessionID, time.Now().UTC(),
	); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) SessionID() string { return h.sessionID }

func (h *History) Append(input string) error {
	_, err := h.db.Exec(
		"INSERT INTO entries (session_id, input, created_at) VALUES (?, ?, ?)",
		h.sessionID, input, time.Now().UTC(),
	)
	return err
}

// Recent returns up to n inputs across all sessions, oldest first.
func (h *History) Recent(n int) ([]string, error) {
	rows, err := h.db.Query(
		"SELECT input FROM (SELECT id, input FROM entries ORDER BY id DESC LIMIT ?) ORDER BY id ASC", n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inputs []string
	for rows.Next() {
		var input string
		if err := rows.Scan(&input); err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}
	return inputs, rows.Err()
}

func (h *History) Close() error {
	return h.db.Close()
}
