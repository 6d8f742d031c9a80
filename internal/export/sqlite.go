package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/gurisko/envswitch/internal/registry"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE environments (
	name         TEXT PRIMARY KEY,
	project_path TEXT NOT NULL,
	python_env   TEXT NOT NULL,
	node_version TEXT NOT NULL,
	description  TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	updated_at   TEXT NOT NULL,
	use_count    INTEGER NOT NULL,
	last_used_at TEXT
);
CREATE TABLE env_vars (
	environment TEXT NOT NULL REFERENCES environments(name),
	position    INTEGER NOT NULL,
	key         TEXT NOT NULL,
	value       TEXT NOT NULL,
	PRIMARY KEY (environment, position)
);
CREATE TABLE commands (
	environment TEXT NOT NULL REFERENCES environments(name),
	position    INTEGER NOT NULL,
	command     TEXT NOT NULL,
	PRIMARY KEY (environment, position)
);
CREATE TABLE history (
	seq           INTEGER PRIMARY KEY,
	id            TEXT NOT NULL,
	environment   TEXT NOT NULL,
	timestamp     TEXT NOT NULL,
	command_count INTEGER NOT NULL
);
CREATE TABLE meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// WriteSQLite writes doc into a new SQLite database at path, replacing any
// file already there.
func WriteSQLite(ctx context.Context, path string, doc *registry.Document) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := insertDocument(ctx, tx, doc); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertDocument(ctx context.Context, tx *sql.Tx, doc *registry.Document) error {
	if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES ('schema_version', ?), ('exported_at', ?)`,
		fmt.Sprint(doc.Version), formatTime(time.Now().UTC())); err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	names := make([]string, 0, len(doc.Environments))
	for name := range doc.Environments {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		env := doc.Environments[name]
		var lastUsed any
		if env.LastUsedAt != nil {
			lastUsed = formatTime(*env.LastUsedAt)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO environments (name, project_path, python_env, node_version, description, created_at, updated_at, use_count, last_used_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			env.Name, env.ProjectPath, env.PythonEnv, env.NodeVersion, env.Description,
			formatTime(env.CreatedAt), formatTime(env.UpdatedAt), env.UseCount, lastUsed,
		); err != nil {
			return fmt.Errorf("insert environment %s: %w", env.Name, err)
		}
		for i, ev := range env.EnvVars {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO env_vars (environment, position, key, value) VALUES (?, ?, ?, ?)`,
				env.Name, i, ev.Key, ev.Value,
			); err != nil {
				return fmt.Errorf("insert env var %s.%s: %w", env.Name, ev.Key, err)
			}
		}
		for i, c := range env.Commands {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO commands (environment, position, command) VALUES (?, ?, ?)`,
				env.Name, i, c,
			); err != nil {
				return fmt.Errorf("insert command %s[%d]: %w", env.Name, i, err)
			}
		}
	}

	for i, h := range doc.History {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO history (seq, id, environment, timestamp, command_count) VALUES (?, ?, ?, ?, ?)`,
			i, h.ID, h.Environment, formatTime(h.Timestamp), h.CommandCount,
		); err != nil {
			return fmt.Errorf("insert history %s: %w", h.ID, err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
