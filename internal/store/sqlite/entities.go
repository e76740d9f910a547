package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"starsheet/internal/store"
)

func (c *Client) UpsertEntity(ctx context.Context, e store.Entity) error {
	query := `
	INSERT INTO entities (name, kind, anchor, in_degree, root, pinned, synthetic, body, indexed)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
	ON CONFLICT (kind, name) DO UPDATE SET
		anchor = excluded.anchor,
		in_degree = excluded.in_degree,
		root = excluded.root,
		pinned = excluded.pinned,
		synthetic = excluded.synthetic,
		body = excluded.body,
		indexed = datetime('now')
	`

	_, err := c.db.ExecContext(ctx, query,
		e.Name, e.Kind, e.Anchor, e.InDegree,
		boolInt(e.Root), boolInt(e.Pinned), boolInt(e.Synthetic), e.Body)
	if err != nil {
		return fmt.Errorf("upserting entity: %w", err)
	}
	return nil
}

func (c *Client) GetEntity(ctx context.Context, name, kind string) (*store.Entity, error) {
	query := `
	SELECT name, kind, anchor, in_degree, root, pinned, synthetic, body
	FROM entities
	WHERE name = ?
	  AND (? = '' OR kind = ?)
	ORDER BY kind
	LIMIT 1
	`

	row := c.db.QueryRowContext(ctx, query, name, kind, kind)

	var e store.Entity
	var root, pinned, synthetic int
	err := row.Scan(&e.Name, &e.Kind, &e.Anchor, &e.InDegree, &root, &pinned, &synthetic, &e.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting entity: %w", err)
	}
	e.Root = root != 0
	e.Pinned = pinned != 0
	e.Synthetic = synthetic != 0
	return &e, nil
}

func (c *Client) ListEntities(ctx context.Context, kind string) ([]store.Summary, error) {
	query := `
	SELECT name, kind, in_degree
	FROM entities
	WHERE (? = '' OR kind = ?)
	ORDER BY name, kind
	`

	rows, err := c.db.QueryContext(ctx, query, kind, kind)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	var summaries []store.Summary
	for rows.Next() {
		var s store.Summary
		if err := rows.Scan(&s.Name, &s.Kind, &s.InDegree); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %w", err)
	}
	return summaries, nil
}

func (c *Client) GetStats(ctx context.Context) (*store.Stats, error) {
	stats := &store.Stats{}

	rows, err := c.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM entities GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("counting entities: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scanning stats: %w", err)
		}
		switch kind {
		case "event":
			stats.Events = count
		case "group":
			stats.Groups = count
		case "ship":
			stats.Ships = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stats: %w", err)
	}

	row := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM edges`)
	if err := row.Scan(&stats.Edges); err != nil {
		return nil, fmt.Errorf("counting edges: %w", err)
	}

	return stats, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
