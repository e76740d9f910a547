package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// All DDL runs in a single call, which PostgreSQL executes inside an
	// implicit transaction. "IF NOT EXISTS" keeps this idempotent; the
	// index is rebuilt from scratch on every run, so there is no
	// migration story beyond this.
	ddl := `
CREATE TABLE IF NOT EXISTS entities (
    id        BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    name      TEXT NOT NULL,
    kind      TEXT NOT NULL,
    anchor    TEXT NOT NULL,
    in_degree INTEGER NOT NULL DEFAULT 0,
    root      BOOLEAN NOT NULL DEFAULT FALSE,
    pinned    BOOLEAN NOT NULL DEFAULT FALSE,
    synthetic BOOLEAN NOT NULL DEFAULT FALSE,
    body      TEXT DEFAULT '',
    indexed   TIMESTAMPTZ DEFAULT now(),
    CONSTRAINT uq_entity_kind_name UNIQUE (kind, name)
);

ALTER TABLE entities ADD COLUMN IF NOT EXISTS search_vector TSVECTOR
    GENERATED ALWAYS AS (
        setweight(to_tsvector('english', name), 'A') ||
        setweight(to_tsvector('english', coalesce(body, '')), 'B')
    ) STORED;

CREATE TABLE IF NOT EXISTS edges (
    id        BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    src_kind  TEXT NOT NULL,
    src_name  TEXT NOT NULL,
    dst_kind  TEXT NOT NULL,
    dst_name  TEXT NOT NULL,
    edge_type TEXT NOT NULL,
    weight    INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_entities_search ON entities USING GIN (search_vector);
CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities (kind);
CREATE INDEX IF NOT EXISTS idx_entities_name ON entities (name);
CREATE INDEX IF NOT EXISTS idx_edges_src ON edges (src_kind, src_name);
CREATE INDEX IF NOT EXISTS idx_edges_dst ON edges (dst_kind, dst_name);
CREATE INDEX IF NOT EXISTS idx_edges_type ON edges (edge_type);
`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}

// Reset clears the index so a run can rebuild it from scratch.
func (c *Client) Reset(ctx context.Context) error {
	if _, err := c.pool.Exec(ctx, `TRUNCATE edges, entities RESTART IDENTITY`); err != nil {
		return fmt.Errorf("resetting index: %w", err)
	}
	return nil
}
