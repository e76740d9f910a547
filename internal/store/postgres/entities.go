package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"starsheet/internal/store"
)

func (c *Client) UpsertEntity(ctx context.Context, e store.Entity) error {
	query := `
	INSERT INTO entities (name, kind, anchor, in_degree, root, pinned, synthetic, body, indexed)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	ON CONFLICT (kind, name) DO UPDATE SET
		anchor = EXCLUDED.anchor,
		in_degree = EXCLUDED.in_degree,
		root = EXCLUDED.root,
		pinned = EXCLUDED.pinned,
		synthetic = EXCLUDED.synthetic,
		body = EXCLUDED.body,
		indexed = now()
	`

	_, err := c.pool.Exec(ctx, query,
		e.Name, e.Kind, e.Anchor, e.InDegree, e.Root, e.Pinned, e.Synthetic, e.Body)
	if err != nil {
		return fmt.Errorf("upserting entity: %w", err)
	}
	return nil
}

func (c *Client) GetEntity(ctx context.Context, name, kind string) (*store.Entity, error) {
	query := `
	SELECT name, kind, anchor, in_degree, root, pinned, synthetic, body
	FROM entities
	WHERE name = $1
	  AND ($2 = '' OR kind = $2)
	ORDER BY kind
	LIMIT 1
	`

	row := c.pool.QueryRow(ctx, query, name, kind)

	var e store.Entity
	err := row.Scan(&e.Name, &e.Kind, &e.Anchor, &e.InDegree, &e.Root, &e.Pinned, &e.Synthetic, &e.Body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting entity: %w", err)
	}
	return &e, nil
}

func (c *Client) ListEntities(ctx context.Context, kind string) ([]store.Summary, error) {
	query := `
	SELECT name, kind, in_degree
	FROM entities
	WHERE ($1 = '' OR kind = $1)
	ORDER BY name, kind
	`

	rows, err := c.pool.Query(ctx, query, kind)
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

	rows, err := c.pool.Query(ctx, `SELECT kind, COUNT(*) FROM entities GROUP BY kind`)
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

	row := c.pool.QueryRow(ctx, `SELECT COUNT(*) FROM edges`)
	if err := row.Scan(&stats.Edges); err != nil {
		return nil, fmt.Errorf("counting edges: %w", err)
	}

	return stats, nil
}
