package shared

import (
	"testing"
	"time"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) < 2 {
			t.Fatalf("expected at least two migrations, got %d", len(migrations))
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.SQL == "" {
				t.Errorf("migration version %d missing SQL", m.Version)
			}
		}
	})

	t.Run("RunMigrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		for _, table := range []string{"songs", "playlists", "playlist_songs", "songs_sequence", "playlists_sequence"} {
			var name string
			err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
			if err != nil {
				t.Errorf("expected table %s to exist: %v", table, err)
			}
		}

		version, err := SchemaVersion(db)
		if err != nil {
			t.Fatalf("failed to get schema version: %v", err)
		}
		if version < 2 {
			t.Errorf("expected schema version >= 2, got %d", version)
		}
	})

	t.Run("RunMigrations is idempotent", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}
	})

	t.Run("additive upgrade preserves existing data", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		// Simulate a database created before the playlists collection
		// existed: apply only the first migration, insert a song, then open
		// at the newer schema version.
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}
		if err := createMigrationsTable(db); err != nil {
			t.Fatalf("failed to create migrations table: %v", err)
		}
		if err := applyMigration(db, migrations[0]); err != nil {
			t.Fatalf("failed to apply first migration: %v", err)
		}

		_, err = db.Exec(
			"INSERT INTO songs (id, title, mime_type, content, date_added) VALUES (?, ?, ?, ?, ?)",
			1, "legacy", "audio/mpeg", []byte{0x01}, time.Now(),
		)
		if err != nil {
			t.Fatalf("failed to insert legacy song: %v", err)
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("upgrade failed: %v", err)
		}

		var title string
		if err := db.QueryRow("SELECT title FROM songs WHERE id = 1").Scan(&title); err != nil {
			t.Fatalf("legacy song lost during upgrade: %v", err)
		}
		if title != "legacy" {
			t.Errorf("expected title 'legacy', got %q", title)
		}

		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'playlists'").Scan(&name)
		if err != nil {
			t.Errorf("expected playlists table after upgrade: %v", err)
		}
	})
}
