// Package store defines the persistent index of the built entity graph.
// The index is a queryable artifact derived from one generator run; it is
// rebuilt from scratch every time, never migrated.
package store

import "context"

type Entity struct {
	Name      string
	Kind      string
	Anchor    string
	InDegree  int
	Root      bool
	Pinned    bool
	Synthetic bool
	Body      string
}

type Edge struct {
	SrcKind  string
	SrcName  string
	DstKind  string
	DstName  string
	EdgeType string
	Weight   int
}

type Summary struct {
	Name     string
	Kind     string
	InDegree int
}

type SearchResult struct {
	Name  string
	Kind  string
	Score float64
}

type Stats struct {
	Events int
	Groups int
	Ships  int
	Edges  int
}

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error
	Reset(ctx context.Context) error

	UpsertEntity(ctx context.Context, e Entity) error
	InsertEdge(ctx context.Context, e Edge) error

	GetEntity(ctx context.Context, name, kind string) (*Entity, error)
	ListEntities(ctx context.Context, kind string) ([]Summary, error)
	ListEdges(ctx context.Context, name, direction string) ([]Edge, error)
	Search(ctx context.Context, query, kind string) ([]SearchResult, error)
	GetStats(ctx context.Context) (*Stats, error)
}
