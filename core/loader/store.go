package loader

import (
	"context"
	"database/sql"
	"time"

	"github.com/FocuswithJustin/ReqIF/core/errors"
	"github.com/FocuswithJustin/ReqIF/core/sqlite"
)

const storeSchema = `
CREATE TABLE IF NOT EXISTS payloads (
	digest     TEXT NOT NULL,
	uri        TEXT NOT NULL,
	mime_type  TEXT NOT NULL,
	data_uri   TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (digest, uri, mime_type)
);
`

// StoreKey addresses one payload of one source revision.
type StoreKey struct {
	Digest   string
	URI      string
	MimeType string
}

// PayloadStore persists computed data URIs across processes. Rows are never
// updated once written.
type PayloadStore struct {
	db *sql.DB
}

// OpenPayloadStore opens (creating if needed) a payload store at dsn.
func OpenPayloadStore(dsn string) (*PayloadStore, error) {
	db, err := sqlite.Open(dsn)
	if err != nil {
		return nil, errors.NewIO("open payload store", dsn, err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, errors.NewIO("initialize payload store", dsn, err)
	}
	return &PayloadStore{db: db}, nil
}

// Get returns the stored data URI for key.
func (s *PayloadStore) Get(ctx context.Context, key StoreKey) (string, bool, error) {
	var uri string
	err := s.db.QueryRowContext(ctx,
		`SELECT data_uri FROM payloads WHERE digest = ? AND uri = ? AND mime_type = ?`,
		key.Digest, key.URI, key.MimeType).Scan(&uri)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewIO("query payload store", key.URI, err)
	}
	return uri, true, nil
}

// Put stores dataURI under key unless a row already exists.
func (s *PayloadStore) Put(ctx context.Context, key StoreKey, dataURI string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO payloads (digest, uri, mime_type, data_uri, created_at) VALUES (?, ?, ?, ?, ?)`,
		key.Digest, key.URI, key.MimeType, dataURI, time.Now().Unix())
	if err != nil {
		return errors.NewIO("write payload store", key.URI, err)
	}
	return nil
}

// Count returns the number of stored payloads.
func (s *PayloadStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payloads`).Scan(&n); err != nil {
		return 0, errors.NewIO("query payload store", "", err)
	}
	return n, nil
}

// Close releases the database handle.
func (s *PayloadStore) Close() error {
	return s.db.Close()
}
