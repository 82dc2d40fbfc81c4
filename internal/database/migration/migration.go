package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id                 UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  filename           TEXT        NOT NULL,
  storage_path       TEXT        NOT NULL UNIQUE,
  size               BIGINT      NOT NULL CHECK (size >= 0),
  content_type       TEXT        NOT NULL,
  status             TEXT        NOT NULL DEFAULT 'uploaded',
  source_document_id UUID        REFERENCES documents (id) ON DELETE SET NULL,
  created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
  remediated_at      TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_documents_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at);`,
	},
	{
		Name: "create_index_documents_source",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_source ON documents (source_document_id);`,
	},
	{
		Name: "create_table_issues",
		SQL: `CREATE TABLE IF NOT EXISTS issues (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_id   UUID        NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  clause        TEXT        NOT NULL,
  description   TEXT        NOT NULL,
  status        TEXT        NOT NULL DEFAULT 'active',
  wcag_level    TEXT        NOT NULL,
  details       JSONB       NOT NULL DEFAULT '{}'::jsonb,
  element_xpath TEXT        NOT NULL,
  is_fixed      BOOLEAN     NOT NULL DEFAULT FALSE,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_issues_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_issues_document_id ON issues (document_id);`,
	},
	{
		Name: "create_table_staged_changes",
		SQL: `CREATE TABLE IF NOT EXISTS staged_changes (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  issue_id         UUID        NOT NULL REFERENCES issues (id) ON DELETE CASCADE,
  document_id      UUID        NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  original_content TEXT        NOT NULL DEFAULT '',
  new_content      TEXT        NOT NULL,
  change_type      TEXT        NOT NULL DEFAULT 'manual',
  fix_type         TEXT        NOT NULL DEFAULT '',
  new_value        TEXT        NOT NULL DEFAULT '',
  status           TEXT        NOT NULL DEFAULT 'staged',
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  applied_at       TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_staged_changes_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_staged_changes_document_id ON staged_changes (document_id);`,
	},
	{
		Name: "create_index_staged_changes_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_staged_changes_status ON staged_changes (status);`,
	},
}

// EnsureMigrated checks if the 'staged_changes' table exists and runs migrations if it doesn't.
// staged_changes is created last, so its presence implies the whole schema.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.staged_changes') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
