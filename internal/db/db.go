// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Estimate is one persisted fee estimation result.
type Estimate struct {
	ID             int64     `json:"id"`
	TxID           string    `json:"tx_id"`
	Network        string    `json:"network"`
	BandwidthBytes int64     `json:"bandwidth_bytes"`
	EnergyUnits    int64     `json:"energy_units"`
	NativeTotalSun string    `json:"native_total_sun"`
	Breakdown      []string  `json:"breakdown"`
	Timestamp      time.Time `json:"timestamp"`
}

// Store handles database operations
type Store struct {
	db *sql.DB
}

// InitDB opens the default estimate history database under ~/.tronfee.
func InitDB() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home dir: %w", err)
	}
	dir := filepath.Join(home, ".tronfee")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return Open(filepath.Join(dir, "estimates.db"))
}

// Open opens (and if needed initializes) the estimate store at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS estimates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tx_id TEXT,
		network TEXT NOT NULL,
		bandwidth_bytes INTEGER NOT NULL,
		energy_units INTEGER NOT NULL,
		native_total_sun TEXT NOT NULL,
		breakdown TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_estimates_tx_id ON estimates(tx_id);
	CREATE INDEX IF NOT EXISTS idx_estimates_network ON estimates(network);
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

// SaveEstimate persists one estimation result
func (s *Store) SaveEstimate(e *Estimate) error {
	breakdownJSON, _ := json.Marshal(e.Breakdown)

	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	query := `
	INSERT INTO estimates (tx_id, network, bandwidth_bytes, energy_units, native_total_sun, breakdown, timestamp)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	res, err := s.db.Exec(query,
		e.TxID, e.Network, e.BandwidthBytes, e.EnergyUnits, e.NativeTotalSun,
		string(breakdownJSON), e.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to save estimate: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		e.ID = id
	}
	return nil
}

// ListEstimates returns the most recent estimates, newest first
func (s *Store) ListEstimates(limit int) ([]Estimate, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
	SELECT id, tx_id, network, bandwidth_bytes, energy_units, native_total_sun, breakdown, timestamp
	FROM estimates ORDER BY timestamp DESC, id DESC LIMIT ?
	`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimates: %w", err)
	}
	defer rows.Close()

	var estimates []Estimate
	for rows.Next() {
		var (
			e             Estimate
			breakdownJSON string
		)
		if err := rows.Scan(&e.ID, &e.TxID, &e.Network, &e.BandwidthBytes,
			&e.EnergyUnits, &e.NativeTotalSun, &breakdownJSON, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan estimate: %w", err)
		}
		if breakdownJSON != "" {
			_ = json.Unmarshal([]byte(breakdownJSON), &e.Breakdown)
		}
		estimates = append(estimates, e)
	}

	return estimates, rows.Err()
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
