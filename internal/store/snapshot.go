package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Snapshot is an encoded canvas copy. Index is its zero-based position in capture order.
type Snapshot struct {
	ID        string
	Index     int
	Width     int
	Height    int
	Format    string
	Data      []byte
	CreatedAt time.Time
}

// SnapshotRepository appends and reads snapshots.
type SnapshotRepository struct {
	db *sql.DB
}

// Snapshots returns the snapshot repository for this store.
func (s *Store) Snapshots() *SnapshotRepository {
	return &SnapshotRepository{db: s.db}
}

// Append stores snap as the next snapshot and returns its index. ID, Index and CreatedAt
// are assigned here.
func (r *SnapshotRepository) Append(snap *Snapshot) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(seq) + 1, 0) FROM snapshots`).Scan(&next); err != nil {
		return 0, err
	}

	if snap.Format == "" {
		snap.Format = "png"
	}
	snap.ID = uuid.New().String()
	snap.Index = next
	snap.CreatedAt = time.Now()

	_, err = tx.Exec(
		`INSERT INTO snapshots (seq, id, width, height, format, data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.Index, snap.ID, snap.Width, snap.Height, snap.Format, snap.Data, snap.CreatedAt,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return next, nil
}

// Get retrieves the snapshot at index, including its pixel data.
func (r *SnapshotRepository) Get(index int) (*Snapshot, error) {
	snap := &Snapshot{}

	err := r.db.QueryRow(
		`SELECT seq, id, width, height, format, data, created_at
		 FROM snapshots WHERE seq = ?`,
		index,
	).Scan(&snap.Index, &snap.ID, &snap.Width, &snap.Height, &snap.Format, &snap.Data, &snap.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return snap, nil
}

// List returns snapshot metadata in capture order. Data is left empty.
func (r *SnapshotRepository) List() ([]Snapshot, error) {
	rows, err := r.db.Query(
		`SELECT seq, id, width, height, format, created_at
		 FROM snapshots ORDER BY seq`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.Index, &s.ID, &s.Width, &s.Height, &s.Format, &s.CreatedAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snaps, nil
}

// Count returns the number of stored snapshots.
func (r *SnapshotRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&n)
	return n, err
}
