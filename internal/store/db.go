// Package store persists user preferences in a small SQLite database. The
// tree itself is never stored.
package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/justyntemme/fstree/internal/debug"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// KeyLastSelection holds the path selected when the previous session ended.
const KeyLastSelection = "last_selection"

type EventType int

const (
	FetchSettings EventType = iota
	SaveSetting
)

type Request struct {
	Op    EventType
	Key   string
	Value string
}

type Response struct {
	Op       EventType
	Settings map[string]string // Key-value settings
	Err      error
}

type DB struct {
	conn         *sql.DB
	RequestChan  chan Request
	ResponseChan chan Response
}

func NewDB() *DB {
	return &DB{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
	}
}

// Open initializes the database connection and schema
func (d *DB) Open(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return err
	}

	query := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return fmt.Errorf("create settings table: %w", err)
	}

	debug.Log(debug.STORE, "opened %s", dbPath)
	d.conn = db
	return nil
}

// Start serves requests until RequestChan is closed. Saves are
// fire-and-forget; fetches answer on ResponseChan.
func (d *DB) Start() {
	for req := range d.RequestChan {
		switch req.Op {
		case FetchSettings:
			settings, err := d.Settings()
			d.ResponseChan <- Response{Op: FetchSettings, Settings: settings, Err: err}
		case SaveSetting:
			if err := d.SaveSetting(req.Key, req.Value); err != nil {
				log.Printf("Store Error saving setting: %v", err)
			}
		}
	}
}

// Settings returns every stored setting.
func (d *DB) Settings() (map[string]string, error) {
	rows, err := d.conn.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err == nil {
			settings[key] = value
		}
	}
	return settings, rows.Err()
}

// SaveSetting upserts a setting.
func (d *DB) SaveSetting(key, value string) error {
	_, err := d.conn.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	if err == nil {
		debug.Log(debug.STORE, "saved %s=%q", key, value)
	}
	return err
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}
