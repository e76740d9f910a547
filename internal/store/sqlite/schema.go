package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS entities (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		name      TEXT NOT NULL,
		kind      TEXT NOT NULL,
		anchor    TEXT NOT NULL,
		in_degree INTEGER NOT NULL DEFAULT 0,
		root      INTEGER NOT NULL DEFAULT 0,
		pinned    INTEGER NOT NULL DEFAULT 0,
		synthetic INTEGER NOT NULL DEFAULT 0,
		body      TEXT DEFAULT '',
		indexed   TEXT DEFAULT (datetime('now')),
		CONSTRAINT uq_entity_kind_name UNIQUE (kind, name)
	);

	CREATE TABLE IF NOT EXISTS edges (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		src_kind  TEXT NOT NULL,
		src_name  TEXT NOT NULL,
		dst_kind  TEXT NOT NULL,
		dst_name  TEXT NOT NULL,
		edge_type TEXT NOT NULL,
		weight    INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities (kind);
	CREATE INDEX IF NOT EXISTS idx_entities_name ON entities (name);
	CREATE INDEX IF NOT EXISTS idx_edges_src ON edges (src_kind, src_name);
	CREATE INDEX IF NOT EXISTS idx_edges_dst ON edges (dst_kind, dst_name);
	CREATE INDEX IF NOT EXISTS idx_edges_type ON edges (edge_type);

	CREATE VIRTUAL TABLE IF NOT EXISTS entities_fts USING fts5(
		name,
		body,
		content=entities,
		content_rowid=id
	);

	CREATE TRIGGER IF NOT EXISTS entities_ai AFTER INSERT ON entities BEGIN
		INSERT INTO entities_fts(rowid, name, body)
		VALUES (new.id, new.name, new.body);
	END;

	CREATE TRIGGER IF NOT EXISTS entities_ad AFTER DELETE ON entities BEGIN
		INSERT INTO entities_fts(entities_fts, rowid, name, body)
		VALUES ('delete', old.id, old.name, old.body);
	END;

	CREATE TRIGGER IF NOT EXISTS entities_au AFTER UPDATE ON entities BEGIN
		INSERT INTO entities_fts(entities_fts, rowid, name, body)
		VALUES ('delete', old.id, old.name, old.body);
		INSERT INTO entities_fts(rowid, name, body)
		VALUES (new.id, new.name, new.body);
	END;
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

// Reset clears the index so a run can rebuild it from scratch.
func (c *Client) Reset(ctx context.Context) error {
	for _, stmt := range []string{"DELETE FROM edges", "DELETE FROM entities"} {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("resetting index: %w", err)
		}
	}
	return nil
}

// splitStatements breaks a DDL block into single statements; triggers keep
// their internal semicolons because each statement ends at a line whose
// trimmed suffix is ";" and trigger bodies end with "END;".
func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder
	inTrigger := false

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		if strings.HasPrefix(stripped, "CREATE TRIGGER") {
			inTrigger = true
		}
		current.WriteString(line)
		current.WriteString("\n")

		if inTrigger {
			if strings.HasSuffix(stripped, "END;") {
				statements = append(statements, current.String())
				current.Reset()
				inTrigger = false
			}
			continue
		}
		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}

	return statements
}
