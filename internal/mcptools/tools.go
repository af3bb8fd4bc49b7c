// Package mcptools exposes the valuation queries as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	appplayers "github.com/preston-bernstein/hooponomics-service/internal/app/players"
	appteams "github.com/preston-bernstein/hooponomics-service/internal/app/teams"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/query"
	"github.com/preston-bernstein/hooponomics-service/internal/valuation"
)

const serverName = "hooponomics-mcp"

type PlayerArgs struct {
	Name string `json:"name" jsonschema:"Exact player name as listed in the dataset"`
}

type TeamArgs struct {
	Team string `json:"team" jsonschema:"Full team name, e.g. Denver Nuggets"`
}

type SimilarArgs struct {
	Name  string `json:"name" jsonschema:"Exact player name as listed in the dataset"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of similar players (default 10)"`
}

type RankedArgs struct {
	Direction string    `json:"direction" jsonschema:"undervalued or overvalued"`
	Positions *[]string `json:"positions,omitempty" jsonschema:"Positions to include (PG, SG, SF, PF, C); omitted means all, an empty list matches nothing"`
	Limit     int       `json:"limit,omitempty" jsonschema:"Number of players to return (default 5)"`
}

type NoArgs struct{}

type rowsResult struct {
	Columns []string        `json:"columns"`
	Rows    []valuation.Row `json:"rows"`
}

// NewServer registers the query tools on a fresh MCP server.
func NewServer(ps *appplayers.Service, ts *appteams.Service, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "player_lookup",
		Description: "Salary, predicted market value and surplus value for one player",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PlayerArgs) (*mcp.CallToolResult, any, error) {
		detail, err := ps.Player(ctx, strings.TrimSpace(args.Name))
		return toolJSON(detail, err)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "team_roster",
		Description: "Valuation rows for every player on a team",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TeamArgs) (*mcp.CallToolResult, any, error) {
		rows, err := ts.Roster(ctx, strings.TrimSpace(args.Team))
		return toolRows(rows, err)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "similar_players",
		Description: "Players at the same position and market value class with the closest model confidence",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SimilarArgs) (*mcp.CallToolResult, any, error) {
		limit := args.Limit
		if limit <= 0 {
			limit = ps.Limits().Similar
		}
		rows, err := ps.Similar(ctx, strings.TrimSpace(args.Name), limit)
		return toolRows(rows, err)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ranked_players",
		Description: "Most undervalued or overvalued players, optionally filtered by position",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args RankedArgs) (*mcp.CallToolResult, any, error) {
		dir, err := query.ParseDirection(args.Direction)
		if err != nil {
			return toolError(err), nil, nil
		}
		positions, err := rankedPositions(args.Positions)
		if err != nil {
			return toolError(err), nil, nil
		}
		limit := args.Limit
		if limit <= 0 {
			limit = ps.Limits().Ranked
		}
		rows, err := ps.Ranked(ctx, dir, positions, limit)
		return toolRows(rows, err)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "team_surplus",
		Description: "Net surplus value per team, highest first",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		rows, err := ts.Surplus(ctx)
		return toolJSON(map[string]any{"teams": rows}, err)
	})

	return server
}

// rankedPositions maps an omitted list to every position and an empty list
// to none.
func rankedPositions(names *[]string) ([]players.Position, error) {
	switch {
	case names == nil:
		return append([]players.Position(nil), players.AllPositions...), nil
	case len(*names) == 0:
		return []players.Position{}, nil
	default:
		return query.ParsePositions(strings.Join(*names, ","))
	}
}

// NewHandler serves server over streamable HTTP with plain JSON responses.
func NewHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func toolRows(rows []valuation.Row, err error) (*mcp.CallToolResult, any, error) {
	return toolJSON(rowsResult{Columns: valuation.Columns, Rows: rows}, err)
}

func toolJSON(v any, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)}},
	}
}
