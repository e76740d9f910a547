package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"starsheet/internal/store"
)

type SearchEventsInput struct {
	Query string `json:"query" jsonschema:"search terms"`
	Kind  string `json:"kind,omitempty" jsonschema:"restrict to event, group, or ship"`
}

type GetEntityInput struct {
	Name string `json:"name" jsonschema:"entity name"`
	Kind string `json:"kind,omitempty" jsonschema:"optional kind when the name exists in several namespaces"`
}

type GetLinksInput struct {
	Name      string `json:"name" jsonschema:"starting entity name"`
	Direction string `json:"direction,omitempty" jsonschema:"out (references it makes) or in (references to it)"`
}

type ListEntitiesInput struct {
	Kind string `json:"kind,omitempty" jsonschema:"kind filter: event, group, or ship"`
}

type GetStatsInput struct{}

type EntityOutput struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Anchor    string `json:"anchor"`
	InDegree  int    `json:"in_degree"`
	Root      bool   `json:"root"`
	Pinned    bool   `json:"pinned"`
	Synthetic bool   `json:"synthetic"`
	Body      string `json:"body"`
}

type EntitySummaryOutput struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	InDegree int    `json:"in_degree"`
}

type LinkOutput struct {
	SrcKind  string `json:"src_kind"`
	SrcName  string `json:"src_name"`
	DstKind  string `json:"dst_kind"`
	DstName  string `json:"dst_name"`
	LinkType string `json:"link_type"`
	Weight   int    `json:"weight"`
}

type SearchResultOutput struct {
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	Score float64 `json:"score"`
}

type SearchEventsOutput struct {
	Results []SearchResultOutput `json:"results"`
}

type GetLinksOutput struct {
	Links []LinkOutput `json:"links"`
}

type ListEntitiesOutput struct {
	Entities []EntitySummaryOutput `json:"entities"`
}

type GetStatsOutput struct {
	Events int `json:"events"`
	Groups int `json:"groups"`
	Ships  int `json:"ships"`
	Edges  int `json:"edges"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_events",
		Description: "Search events, pools, and ships by name and text",
	}, s.handleSearchEvents)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_entity",
		Description: "Retrieve one entity with its text and reference counts",
	}, s.handleGetEntity)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_links",
		Description: "List the references an entity makes or receives",
	}, s.handleGetLinks)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_entities",
		Description: "List entities with an optional kind filter",
	}, s.handleListEntities)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_stats",
		Description: "Return entity and reference counts for the index",
	}, s.handleGetStats)
}

func (s *Server) handleSearchEvents(ctx context.Context, req *sdk.CallToolRequest, input SearchEventsInput) (*sdk.CallToolResult, SearchEventsOutput, error) {
	if input.Query == "" {
		return nil, SearchEventsOutput{}, fmt.Errorf("query is required")
	}
	results, err := s.db.Search(ctx, input.Query, input.Kind)
	if err != nil {
		return nil, SearchEventsOutput{}, err
	}

	output := make([]SearchResultOutput, 0, len(results))
	for _, result := range results {
		output = append(output, SearchResultOutput{
			Name:  result.Name,
			Kind:  result.Kind,
			Score: result.Score,
		})
	}
	return nil, SearchEventsOutput{Results: output}, nil
}

func (s *Server) handleGetEntity(ctx context.Context, req *sdk.CallToolRequest, input GetEntityInput) (*sdk.CallToolResult, EntityOutput, error) {
	if input.Name == "" {
		return nil, EntityOutput{}, fmt.Errorf("name is required")
	}
	entity, err := s.db.GetEntity(ctx, input.Name, input.Kind)
	if err != nil {
		return nil, EntityOutput{}, err
	}
	if entity == nil {
		return nil, EntityOutput{}, fmt.Errorf("entity not found")
	}
	return nil, entityOutput(entity), nil
}

func (s *Server) handleGetLinks(ctx context.Context, req *sdk.CallToolRequest, input GetLinksInput) (*sdk.CallToolResult, GetLinksOutput, error) {
	if input.Name == "" {
		return nil, GetLinksOutput{}, fmt.Errorf("name is required")
	}
	direction := input.Direction
	if direction == "" {
		direction = "out"
	}
	edges, err := s.db.ListEdges(ctx, input.Name, direction)
	if err != nil {
		return nil, GetLinksOutput{}, err
	}

	output := make([]LinkOutput, 0, len(edges))
	for _, e := range edges {
		output = append(output, LinkOutput{
			SrcKind:  e.SrcKind,
			SrcName:  e.SrcName,
			DstKind:  e.DstKind,
			DstName:  e.DstName,
			LinkType: e.EdgeType,
			Weight:   e.Weight,
		})
	}
	return nil, GetLinksOutput{Links: output}, nil
}

func (s *Server) handleListEntities(ctx context.Context, req *sdk.CallToolRequest, input ListEntitiesInput) (*sdk.CallToolResult, ListEntitiesOutput, error) {
	items, err := s.db.ListEntities(ctx, input.Kind)
	if err != nil {
		return nil, ListEntitiesOutput{}, err
	}

	output := make([]EntitySummaryOutput, 0, len(items))
	for _, item := range items {
		output = append(output, EntitySummaryOutput{
			Name:     item.Name,
			Kind:     item.Kind,
			InDegree: item.InDegree,
		})
	}
	return nil, ListEntitiesOutput{Entities: output}, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *sdk.CallToolRequest, input GetStatsInput) (*sdk.CallToolResult, GetStatsOutput, error) {
	stats, err := s.db.GetStats(ctx)
	if err != nil {
		return nil, GetStatsOutput{}, err
	}
	return nil, GetStatsOutput{
		Events: stats.Events,
		Groups: stats.Groups,
		Ships:  stats.Ships,
		Edges:  stats.Edges,
	}, nil
}

func entityOutput(entity *store.Entity) EntityOutput {
	return EntityOutput{
		Name:      entity.Name,
		Kind:      entity.Kind,
		Anchor:    entity.Anchor,
		InDegree:  entity.InDegree,
		Root:      entity.Root,
		Pinned:    entity.Pinned,
		Synthetic: entity.Synthetic,
		Body:      entity.Body,
	}
}
