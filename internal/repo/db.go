package repo

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		university TEXT NOT NULL DEFAULT '',
		program TEXT NOT NULL DEFAULT '',
		language TEXT NOT NULL DEFAULT 'sl',
		citation_style TEXT NOT NULL DEFAULT 'APA',
		voice_id TEXT NOT NULL DEFAULT '',
		ctime INTEGER NOT NULL,
		mtime INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		blocks TEXT NOT NULL DEFAULT '[]',
		cover TEXT NOT NULL DEFAULT '',
		state INTEGER NOT NULL DEFAULT 1,
		ctime INTEGER NOT NULL,
		mtime INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_user ON documents(user_id, state, mtime)`,
	`CREATE TABLE IF NOT EXISTS assist_results (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		document_id TEXT NOT NULL,
		block_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		payload TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		ctime INTEGER NOT NULL,
		UNIQUE(document_id, block_id, kind)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assist_results_doc ON assist_results(document_id)`,
}

func ApplyMigrations(db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
