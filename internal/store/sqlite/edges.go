package sqlite

import (
	"context"
	"fmt"

	"starsheet/internal/store"
)

func (c *Client) InsertEdge(ctx context.Context, e store.Edge) error {
	query := `
	INSERT INTO edges (src_kind, src_name, dst_kind, dst_name, edge_type, weight)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := c.db.ExecContext(ctx, query,
		e.SrcKind, e.SrcName, e.DstKind, e.DstName, e.EdgeType, e.Weight)
	if err != nil {
		return fmt.Errorf("inserting edge: %w", err)
	}
	return nil
}

func (c *Client) ListEdges(ctx context.Context, name, direction string) ([]store.Edge, error) {
	var query string
	switch direction {
	case "out":
		query = `
		SELECT src_kind, src_name, dst_kind, dst_name, edge_type, weight
		FROM edges
		WHERE src_name = ?
		ORDER BY dst_name, edge_type
		`
	case "in":
		query = `
		SELECT src_kind, src_name, dst_kind, dst_name, edge_type, weight
		FROM edges
		WHERE dst_name = ?
		ORDER BY src_name, edge_type
		`
	default:
		return nil, fmt.Errorf("invalid edge direction %q, expected \"in\" or \"out\"", direction)
	}

	rows, err := c.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("listing edges: %w", err)
	}
	defer rows.Close()

	var edges []store.Edge
	for rows.Next() {
		var e store.Edge
		if err := rows.Scan(&e.SrcKind, &e.SrcName, &e.DstKind, &e.DstName, &e.EdgeType, &e.Weight); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating edges: %w", err)
	}
	return edges, nil
}
