// Package httpapi serves the draft game and the read-only catalog API over HTTP.
package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aatrey56/hoops-draft/internal/apperr"
	"github.com/aatrey56/hoops-draft/internal/draft"
	"github.com/aatrey56/hoops-draft/internal/game"
	"github.com/aatrey56/hoops-draft/internal/model"
)

type Options struct {
	SessionCookie       string
	DefaultParticipants int
	Logger              *zap.Logger
}

type Server struct {
	svc          *game.Service
	cookie       string
	participants int
	logger       *zap.Logger
	mux          *http.ServeMux
}

func New(svc *game.Service, opts Options) *Server {
	s := &Server{
		svc:          svc,
		cookie:       opts.SessionCookie,
		participants: opts.DefaultParticipants,
		logger:       opts.Logger,
		mux:          http.NewServeMux(),
	}
	if s.cookie == "" {
		s.cookie = "hoops_session"
	}
	if s.participants < draft.MinParticipants {
		s.participants = draft.MinParticipants
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("/new_game/{$}", s.handleNewGame)
	s.mux.HandleFunc("GET /wheel/{$}", s.handleWheel)
	s.mux.HandleFunc("GET /select_player/{team_abbr}/{$}", s.handleTeamBoard)
	s.mux.HandleFunc("POST /select_player_action/{$}", s.handleSelect)
	s.mux.HandleFunc("GET /game_over/{$}", s.handleGameOver)

	s.mux.HandleFunc("GET /api/teams/{$}", s.handleTeams)
	s.mux.HandleFunc("GET /api/teams/{id}/{$}", s.handleTeam)
	s.mux.HandleFunc("GET /api/players/{$}", s.handlePlayers)
	s.mux.HandleFunc("GET /api/players/{id}/{$}", s.handlePlayer)
}

// Handle mounts an extra handler (the MCP endpoint) on the same mux.
func (s *Server) Handle(pattern string, h http.Handler) {
	s.mux.Handle(pattern, h)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.logger.Debug("http request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("elapsed", time.Since(start)))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// ---- Responses ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": apperr.Message(err)})
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(s.cookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// ---- Game ----

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.Validation, "malformed form", err))
		return
	}
	n := s.participants
	if raw := strings.TrimSpace(r.Form.Get("num_players")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, apperr.Wrap(apperr.Validation, "num_players must be an integer", err))
			return
		}
		n = v
	}

	sess, err := s.svc.NewGame(r.Context(), n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, game.WheelURL, http.StatusSeeOther)
}

type wheelResponse struct {
	Session            model.DraftSession `json:"session"`
	CurrentParticipant string             `json:"current_participant_name"`
	RoundLimit         int                `json:"round_limit"`
	GameOver           bool               `json:"game_over"`
}

func (s *Server) handleWheel(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.State(r.Context(), s.sessionID(r))
	if err != nil {
		if game.IsMissingSession(err) {
			http.Redirect(w, r, game.NewGameURL, http.StatusFound)
			return
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wheelResponse{
		Session:            sess,
		CurrentParticipant: model.ParticipantLabel(sess.CurrentParticipant),
		RoundLimit:         draft.RoundLimit,
		GameOver:           draft.IsOver(sess),
	})
}

func (s *Server) handleTeamBoard(w http.ResponseWriter, r *http.Request) {
	board, err := s.svc.TeamBoard(r.Context(), s.sessionID(r), r.PathValue("team_abbr"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

type selectBody struct {
	Participant int             `json:"participant"`
	PlayerID    json.RawMessage `json:"player_id"`
	Position    string          `json:"position"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var body selectBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	if err := dec.Decode(&body); err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.Validation, "malformed request body", err))
		return
	}
	playerID, err := parseID(body.PlayerID)
	if err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.Validation, "player_id must be an integer", err))
		return
	}

	res, err := s.svc.SelectPlayer(r.Context(), s.sessionID(r), game.SelectRequest{
		Participant: body.Participant,
		PlayerID:    playerID,
		Position:    strings.TrimSpace(body.Position),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"redirect_url": res.RedirectURL})
}

// parseID accepts a JSON number or a numeric string. Absent means zero.
func parseID(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		if strings.TrimSpace(s) == "" {
			return 0, nil
		}
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Server) handleGameOver(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.GameOver(r.Context(), s.sessionID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- Catalog ----

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.New(apperr.NotFound, fmt.Sprintf("%q is not a valid id", r.PathValue("id")))
	}
	return id, nil
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.svc.Teams(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	team, err := s.svc.Team(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.svc.Players(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.svc.Player(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
