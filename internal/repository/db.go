package repository

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database owns the single SQLite handle. The handle is opened lazily and
// reopened transparently after Close; all access goes through the mutex.
type Database struct {
	mu   sync.Mutex
	path string
	db   *gorm.DB
}

// NewDatabase prepares a connection manager for the given SQLite path. No
// connection is opened until the first Conn or InitSchema call.
func NewDatabase(path string) *Database {
	if path == "" {
		path = "data/taskmanager.db"
	}
	return &Database{path: path}
}

// Conn returns the live handle, opening or reopening it as needed.
// Referential integrity is enabled on every successful open.
func (d *Database) Conn() (*gorm.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connLocked()
}

func (d *Database) connLocked() (*gorm.DB, error) {
	if d.db != nil {
		return d.db, nil
	}

	if err := ensureDirForSQLite(d.path); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(d.path), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Keep the pool at one connection so the pragma below covers every
	// statement and the store behaves as a single shared handle.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	d.db = db
	return d.db, nil
}

// Close shuts the handle down. Calling it again, or before any open, is a
// no-op.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		d.db = nil
		return nil
	}
	d.db = nil
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

// schemaDDL creates the seven tables. Table and column names are an
// external contract shared with other front ends, so the schema is plain
// DDL rather than AutoMigrate.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS Users (
		username TEXT PRIMARY KEY,
		password TEXT NOT NULL,
		email TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS Categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS Tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		category_id INTEGER,
		deadline TEXT,
		priority INTEGER DEFAULT 1,
		completed INTEGER DEFAULT 0,
		creation_date TEXT NOT NULL,
		FOREIGN KEY(username) REFERENCES Users(username) ON DELETE CASCADE,
		FOREIGN KEY(category_id) REFERENCES Categories(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS Reminders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id INTEGER NOT NULL,
		reminder_time TEXT,
		triggered INTEGER DEFAULT 0,
		message TEXT,
		FOREIGN KEY(task_id) REFERENCES Tasks(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS Projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		start_date TEXT,
		end_date TEXT,
		creation_date TEXT NOT NULL,
		completed INTEGER DEFAULT 0,
		FOREIGN KEY(username) REFERENCES Users(username) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS Project_Tasks (
		project_id INTEGER NOT NULL,
		task_id INTEGER NOT NULL,
		PRIMARY KEY(project_id, task_id),
		FOREIGN KEY(project_id) REFERENCES Projects(id) ON DELETE CASCADE,
		FOREIGN KEY(task_id) REFERENCES Tasks(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS Settings (
		username TEXT PRIMARY KEY,
		email_enabled INTEGER DEFAULT 1,
		app_notifications_enabled INTEGER DEFAULT 1,
		default_reminder_minutes INTEGER DEFAULT 30,
		FOREIGN KEY(username) REFERENCES Users(username) ON DELETE CASCADE
	)`,
}

// InitSchema creates all tables if absent. Safe to call repeatedly.
func (d *Database) InitSchema() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	db, err := d.connLocked()
	if err != nil {
		return err
	}
	for _, ddl := range schemaDDL {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// ensureDirForSQLite creates the parent dir for the SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	// Ignore DSNs with explicit mode=memory or network.
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	// Strip file: prefix if present.
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
