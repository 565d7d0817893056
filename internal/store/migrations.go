package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// One row per command handed to the player
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			command TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			handedness TEXT NOT NULL DEFAULT '',
			fingers TEXT NOT NULL DEFAULT '',
			x INTEGER NOT NULL DEFAULT 0,
			region TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_events_created_at ON events(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_events_command ON events(command)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
