package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Snapshots table - immutable canvas copies in capture order
		`CREATE TABLE IF NOT EXISTS snapshots (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			format TEXT NOT NULL DEFAULT 'png',
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Snapshots are append-only
		`CREATE TRIGGER IF NOT EXISTS snapshots_immutable
			BEFORE UPDATE ON snapshots
			BEGIN
				SELECT RAISE(ABORT, 'snapshots are immutable');
			END`,

		`CREATE TRIGGER IF NOT EXISTS snapshots_append_only
			BEFORE DELETE ON snapshots
			BEGIN
				SELECT RAISE(ABORT, 'snapshots cannot be deleted');
			END`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
