// Package mcptools exposes the draft game as MCP tools so an agent can run a
// game end to end.
package mcptools

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/aatrey56/hoops-draft/internal/apperr"
	"github.com/aatrey56/hoops-draft/internal/draft"
	"github.com/aatrey56/hoops-draft/internal/game"
)

type NewGameArgs struct {
	Participants int `json:"participants,omitempty" jsonschema:"Number of participants (default 2, minimum 2)"`
}

type SessionArgs struct {
	SessionID string `json:"session_id" jsonschema:"Draft session id (required)"`
}

type TeamPlayersArgs struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"Draft session id; marks players already drafted"`
	Team      string `json:"team" jsonschema:"Team abbreviation, e.g. BOS (required)"`
}

type SelectPlayerArgs struct {
	SessionID   string `json:"session_id" jsonschema:"Draft session id (required)"`
	PlayerID    int64  `json:"player_id" jsonschema:"Catalog player id (required)"`
	Position    string `json:"position" jsonschema:"Roster position label, unique per roster (required)"`
	Participant int    `json:"participant,omitempty" jsonschema:"Participant making the pick (0 = whoever is on the clock)"`
}

type PlayerLookupArgs struct {
	PlayerID int64 `json:"player_id" jsonschema:"Catalog player id (required)"`
}

type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Server struct {
	svc          *game.Service
	server       *mcp.Server
	registry     []ToolInfo
	participants int
	logger       *zap.Logger
}

// NewServer registers every tool against svc.
func NewServer(svc *game.Service, defaultParticipants int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultParticipants < draft.MinParticipants {
		defaultParticipants = draft.MinParticipants
	}
	s := &Server{
		svc: svc,
		server: mcp.NewServer(
			&mcp.Implementation{
				Name:    "hoops-draft-mcp",
				Version: "0.1.0",
			},
			nil,
		),
		registry:     make([]ToolInfo, 0, 8),
		participants: defaultParticipants,
		logger:       logger,
	}

	addTool(s.server, &s.registry, &mcp.Tool{
		Name:        "new_game",
		Description: "Start a new draft and return its session",
	}, s.newGame)

	addTool(s.server, &s.registry, &mcp.Tool{
		Name:        "draft_state",
		Description: "Current turn, round and rosters for a draft session",
	}, s.draftState)

	addTool(s.server, &s.registry, &mcp.Tool{
		Name:        "team_players",
		Description: "Players on a team with the participant holding each drafted one",
	}, s.teamPlayers)

	addTool(s.server, &s.registry, &mcp.Tool{
		Name:        "select_player",
		Description: "Draft a player at a position for the participant on the clock",
	}, s.selectPlayer)

	addTool(s.server, &s.registry, &mcp.Tool{
		Name:        "game_over",
		Description: "Score a finished draft: attribute breakdown, winner and summary",
	}, s.gameOver)

	addTool(s.server, &s.registry, &mcp.Tool{
		Name:        "player_lookup",
		Description: "Catalog player with season history and peak season",
	}, s.playerLookup)

	return s
}

func addTool[T any](server *mcp.Server, registry *[]ToolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

// Tools lists the registered tools in registration order.
func (s *Server) Tools() []ToolInfo {
	return append([]ToolInfo(nil), s.registry...)
}

// MCP returns the underlying server, for in-process transports.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Handler serves the MCP streamable HTTP transport.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return s.server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

// ToolsHandler lists tools as JSON.
func (s *Server) ToolsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": s.registry}, "", "  ")
		_, _ = w.Write(b)
	})
}

// WithAuth requires apiKey in header (or an Authorization bearer token).
// An empty apiKey disables the check.
func WithAuth(apiKey, header string, next http.Handler) http.Handler {
	apiKey = strings.TrimSpace(apiKey)
	if header == "" {
		header = "X-API-Key"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}
		key := strings.TrimSpace(r.Header.Get(header))
		if key == "" {
			if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				key = strings.TrimSpace(authz[7:])
			}
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ---- Tools ----

func (s *Server) newGame(ctx context.Context, req *mcp.CallToolRequest, args NewGameArgs) (*mcp.CallToolResult, any, error) {
	n := args.Participants
	if n == 0 {
		n = s.participants
	}
	sess, err := s.svc.NewGame(ctx, n)
	if err != nil {
		return s.toolError(err), nil, nil
	}
	return toolJSON(sess)
}

func (s *Server) draftState(ctx context.Context, req *mcp.CallToolRequest, args SessionArgs) (*mcp.CallToolResult, any, error) {
	if args.SessionID == "" {
		return s.toolError(fmt.Errorf("session_id is required")), nil, nil
	}
	sess, err := s.svc.State(ctx, args.SessionID)
	if err != nil {
		return s.toolError(err), nil, nil
	}
	return toolJSON(map[string]any{
		"session":     sess,
		"round_limit": draft.RoundLimit,
		"game_over":   draft.IsOver(sess),
	})
}

func (s *Server) teamPlayers(ctx context.Context, req *mcp.CallToolRequest, args TeamPlayersArgs) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Team) == "" {
		return s.toolError(fmt.Errorf("team is required")), nil, nil
	}
	board, err := s.svc.TeamBoard(ctx, args.SessionID, args.Team)
	if err != nil {
		return s.toolError(err), nil, nil
	}
	return toolJSON(board)
}

func (s *Server) selectPlayer(ctx context.Context, req *mcp.CallToolRequest, args SelectPlayerArgs) (*mcp.CallToolResult, any, error) {
	if args.SessionID == "" {
		return s.toolError(fmt.Errorf("session_id is required")), nil, nil
	}
	res, err := s.svc.SelectPlayer(ctx, args.SessionID, game.SelectRequest{
		Participant: args.Participant,
		PlayerID:    args.PlayerID,
		Position:    strings.TrimSpace(args.Position),
	})
	if err != nil {
		return s.toolError(err), nil, nil
	}
	return toolJSON(res)
}

func (s *Server) gameOver(ctx context.Context, req *mcp.CallToolRequest, args SessionArgs) (*mcp.CallToolResult, any, error) {
	if args.SessionID == "" {
		return s.toolError(fmt.Errorf("session_id is required")), nil, nil
	}
	out, err := s.svc.GameOver(ctx, args.SessionID)
	if err != nil {
		return s.toolError(err), nil, nil
	}
	return toolJSON(out)
}

func (s *Server) playerLookup(ctx context.Context, req *mcp.CallToolRequest, args PlayerLookupArgs) (*mcp.CallToolResult, any, error) {
	if args.PlayerID == 0 {
		return s.toolError(fmt.Errorf("player_id is required")), nil, nil
	}
	p, err := s.svc.Player(ctx, args.PlayerID)
	if err != nil {
		return s.toolError(err), nil, nil
	}
	return toolJSON(p)
}

// ---- Results ----

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSONBytes(b), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

// toolError reports err to the caller. Service errors show their safe
// message; unexpected failures are logged and reported generically.
func (s *Server) toolError(err error) *mcp.CallToolResult {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		return toolError(err)
	}
	if ae.Kind == apperr.Unexpected {
		s.logger.Error("tool failed", zap.Error(err))
	}
	return toolError(errors.New(apperr.Message(err)))
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
