package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aatrey56/hoops-draft/internal/game"
	"github.com/aatrey56/hoops-draft/internal/model"
	"github.com/aatrey56/hoops-draft/internal/store/sqlite"
)

func newTestServer(t *testing.T) (*Server, []model.Player) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "hoops.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	team, err := db.CreateTeam(ctx, "Denver Nuggets", "DEN")
	require.NoError(t, err)
	var players []model.Player
	for i := 1; i <= 4; i++ {
		p, err := db.UpsertPlayer(ctx, model.Player{ExternalID: fmt.Sprintf("den%d", i), Name: fmt.Sprintf("Nugget %d", i)})
		require.NoError(t, err)
		require.NoError(t, db.LinkPlayerTeam(ctx, p.ID, team.ID))
		players = append(players, p)
	}
	require.NoError(t, db.PutSeasonStat(ctx, model.SeasonStat{PlayerID: players[0].ID, Season: 2023, VORP: 8.9}))

	svc := game.NewService(game.Deps{Sessions: db, Catalog: db, Logger: zap.NewNop()})
	return NewServer(svc, 2, zap.NewNop()), players
}

func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	_, err := s.MCP().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func call(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestTools(t *testing.T) {
	s, _ := newTestServer(t)
	names := make([]string, 0)
	for _, tool := range s.Tools() {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"new_game", "draft_state", "team_players", "select_player", "game_over", "player_lookup"}, names)

	rec := httptest.NewRecorder()
	s.ToolsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tools", nil))
	assert.Contains(t, rec.Body.String(), `"select_player"`)
}

func TestDraftThroughTools(t *testing.T) {
	s, players := newTestServer(t)
	session := connect(t, s)

	text, isErr := call(t, session, "new_game", map[string]any{})
	require.False(t, isErr, text)
	var sess model.DraftSession
	require.NoError(t, json.Unmarshal([]byte(text), &sess))
	assert.Equal(t, 2, sess.ParticipantCount)

	text, isErr = call(t, session, "select_player", map[string]any{
		"session_id": sess.ID,
		"player_id":  players[0].ID,
		"position":   "C",
	})
	require.False(t, isErr, text)
	var sel game.SelectResult
	require.NoError(t, json.Unmarshal([]byte(text), &sel))
	assert.Equal(t, "/wheel/", sel.RedirectURL)

	text, isErr = call(t, session, "select_player", map[string]any{
		"session_id": sess.ID,
		"player_id":  999,
		"position":   "C",
	})
	assert.True(t, isErr)
	assert.Equal(t, "error: player 999 not found", text)

	text, isErr = call(t, session, "team_players", map[string]any{"session_id": sess.ID, "team": "DEN"})
	require.False(t, isErr, text)
	var board game.TeamBoard
	require.NoError(t, json.Unmarshal([]byte(text), &board))
	assert.Equal(t, 1, board.Players[0].DraftedBy)

	text, isErr = call(t, session, "draft_state", map[string]any{"session_id": sess.ID})
	require.False(t, isErr, text)
	assert.Contains(t, text, `"current_participant": 2`)

	text, isErr = call(t, session, "game_over", map[string]any{"session_id": sess.ID})
	assert.True(t, isErr)
	assert.Equal(t, "error: the draft is still in round 1 of 5", text)

	text, isErr = call(t, session, "player_lookup", map[string]any{"player_id": players[0].ID})
	require.False(t, isErr, text)
	var detail game.PlayerDetail
	require.NoError(t, json.Unmarshal([]byte(text), &detail))
	require.NotNil(t, detail.Peak)
	assert.Equal(t, 8.9, detail.Peak.ValueOverReplacement)
}

func TestDraftState_MissingSession(t *testing.T) {
	s, _ := newTestServer(t)
	res, _, err := s.draftState(context.Background(), nil, SessionArgs{SessionID: "nope"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "error: game state not found", res.Content[0].(*mcp.TextContent).Text)

	res, _, err = s.draftState(context.Background(), nil, SessionArgs{})
	require.NoError(t, err)
	assert.Equal(t, "error: session_id is required", res.Content[0].(*mcp.TextContent).Text)
}

func TestWithAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		name   string
		key    string
		header map[string]string
		want   int
	}{
		{name: "disabled", key: "", want: http.StatusNoContent},
		{name: "missing", key: "s3cret", want: http.StatusUnauthorized},
		{name: "wrong", key: "s3cret", header: map[string]string{"X-API-Key": "nope"}, want: http.StatusUnauthorized},
		{name: "header", key: "s3cret", header: map[string]string{"X-API-Key": "s3cret"}, want: http.StatusNoContent},
		{name: "bearer", key: "s3cret", header: map[string]string{"Authorization": "Bearer s3cret"}, want: http.StatusNoContent},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
			for k, v := range c.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			WithAuth(c.key, "X-API-Key", ok).ServeHTTP(rec, req)
			assert.Equal(t, c.want, rec.Code)
		})
	}
}
