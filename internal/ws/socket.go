// Package ws is the realtime surface: one socket.io namespace carrying the
// game selector, session control and lifeline events. Rule violations coming
// from impatient clients (double answers, reused lifelines) are swallowed
// with a debug log; only genuinely broken requests produce error payloads.
package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"github.com/hotseat-games/hotseat/internal/assets"
	"github.com/hotseat-games/hotseat/internal/game"
	"github.com/hotseat-games/hotseat/internal/registry"
)

// ConnCtx is the per-connection session binding.
type ConnCtx struct {
	Code  string
	Token string
}

// Server wires socket.io events to the session manager and registry.
type Server struct {
	manager  *game.Manager
	registry *registry.Registry
	manifest *assets.Manifest

	mu      sync.Mutex
	members map[string]map[string]socketio.Conn // session code -> socket id -> conn
}

func New(manager *game.Manager, reg *registry.Registry, manifest *assets.Manifest) *Server {
	return &Server{
		manager:  manager,
		registry: reg,
		manifest: manifest,
		members:  make(map[string]map[string]socketio.Conn),
	}
}

// gameSummary is what the selector needs per game.
func (srv *Server) gameSummary(cfg *game.GameConfig) map[string]any {
	campaigns := make([]map[string]any, 0, len(cfg.Campaigns))
	for _, c := range cfg.Campaigns {
		campaigns = append(campaigns, map[string]any{"id": c.ID, "name": c.Name})
	}
	return map[string]any{
		"id":          cfg.ID,
		"title":       cfg.Title,
		"subtitle":    cfg.Subtitle,
		"emoji":       cfg.Emoji,
		"campaigns":   campaigns,
		"cardSources": assets.CardImageSources(cfg.ID, cfg.Emoji),
	}
}

// Mount attaches the socket.io server with handlers to the given Gin engine.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	io := socketio.NewServer(nil)

	io.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext(&ConnCtx{})
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	// game:list
	io.OnEvent("/", "game:list", func(s socketio.Conn) map[string]any {
		games := srv.registry.List()
		list := make([]map[string]any, 0, len(games))
		for _, cfg := range games {
			list = append(list, srv.gameSummary(cfg))
		}
		return map[string]any{"games": list}
	})

	// session:create
	io.OnEvent("/", "session:create", func(s socketio.Conn, payload struct {
		GameID     string `json:"gameId"`
		CampaignID string `json:"campaignId"`
	}) map[string]any {
		cfg, err := srv.registry.Get(payload.GameID)
		if err != nil {
			return srv.err(s, "game_not_found", "Game not found")
		}
		campaignID := payload.CampaignID
		if campaignID == "" && len(cfg.Campaigns) == 1 {
			campaignID = cfg.Campaigns[0].ID
		}
		entry, err := srv.manager.Create(cfg, campaignID, nil)
		if err != nil {
			return srv.err(s, "bad_request", err.Error())
		}
		s.SetContext(&ConnCtx{Code: entry.Code, Token: entry.Token})
		s.Join(entry.Code)
		srv.addMember(entry.Code, s)
		log.Info().Str("sid", s.ID()).Str("code", entry.Code).Str("game", payload.GameID).Msg("session:create")
		srv.emitState(io, entry)
		return map[string]any{"sessionCode": entry.Code, "token": entry.Token}
	})

	// session:resume
	io.OnEvent("/", "session:resume", func(s socketio.Conn, payload struct {
		SessionCode string `json:"sessionCode"`
		Token       string `json:"token"`
	}) map[string]any {
		entry, err := srv.manager.Get(payload.SessionCode)
		if err != nil {
			return srv.err(s, "session_not_found", "Session not found")
		}
		if payload.Token != entry.Token {
			return srv.err(s, "unauthorized", "Invalid session token")
		}
		s.SetContext(&ConnCtx{Code: entry.Code, Token: entry.Token})
		s.Join(entry.Code)
		srv.addMember(entry.Code, s)
		log.Info().Str("sid", s.ID()).Str("code", entry.Code).Msg("session:resume")
		s.Emit("session:state", entry.Session.Snapshot())
		return map[string]any{"ok": true}
	})

	// session:begin
	io.OnEvent("/", "session:begin", func(s socketio.Conn) map[string]any {
		entry, ok := srv.authed(s)
		if !ok {
			return srv.err(s, "session_not_found", "Session not found")
		}
		if err := entry.Session.Start(); err != nil {
			log.Debug().Err(err).Str("code", entry.Code).Msg("session:begin ignored")
			return map[string]any{"ok": false}
		}
		srv.emitState(io, entry)
		return map[string]any{"ok": true}
	})

	// answer:select
	io.OnEvent("/", "answer:select", func(s socketio.Conn, payload struct {
		Slot int `json:"slot"`
	}) map[string]any {
		entry, ok := srv.authed(s)
		if !ok {
			return srv.err(s, "session_not_found", "Session not found")
		}
		gen, err := entry.Session.SelectAnswer(payload.Slot)
		if err != nil {
			log.Debug().Err(err).Str("code", entry.Code).Int("slot", payload.Slot).Msg("answer:select ignored")
			return map[string]any{"ok": false}
		}
		srv.emitState(io, entry)

		// commit after the reveal delay; a stale generation means the
		// session moved on and the timer quietly loses
		time.AfterFunc(game.AnswerRevealDurationMS*time.Millisecond, func() {
			outcome, err := entry.Session.ResolveAnswer(gen)
			if err != nil {
				log.Debug().Err(err).Str("code", entry.Code).Msg("answer resolution dropped")
				return
			}
			log.Info().Str("code", entry.Code).Str("outcome", string(outcome)).Msg("answer resolved")
			io.BroadcastToRoom("/", entry.Code, "answer:outcome", map[string]any{"outcome": string(outcome)})
			srv.emitState(io, entry)
		})
		return map[string]any{"ok": true}
	})

	type lifelineFn func(*game.Session) (*game.LifelineResult, error)
	lifelines := map[string]lifelineFn{
		"lifeline:fifty":    (*game.Session).UseFifty,
		"lifeline:phone":    (*game.Session).UsePhone,
		"lifeline:audience": (*game.Session).UseAudience,
		"lifeline:host":     (*game.Session).UseHost,
		"lifeline:switch":   (*game.Session).UseSwitch,
		"lifeline:double":   (*game.Session).UseDouble,
	}
	for event, use := range lifelines {
		event, use := event, use
		io.OnEvent("/", event, func(s socketio.Conn) map[string]any {
			entry, ok := srv.authed(s)
			if !ok {
				return srv.err(s, "session_not_found", "Session not found")
			}
			result, err := use(entry.Session)
			if err != nil {
				log.Debug().Err(err).Str("code", entry.Code).Str("event", event).Msg("lifeline ignored")
				return map[string]any{"ok": false}
			}
			log.Info().Str("code", entry.Code).Str("event", event).Msg("lifeline used")
			io.BroadcastToRoom("/", entry.Code, "lifeline:result", result)
			srv.emitState(io, entry)
			return map[string]any{"ok": true, "result": result}
		})
	}

	// take:money
	io.OnEvent("/", "take:money", func(s socketio.Conn) map[string]any {
		entry, ok := srv.authed(s)
		if !ok {
			return srv.err(s, "session_not_found", "Session not found")
		}
		if err := entry.Session.TakeMoney(); err != nil {
			log.Debug().Err(err).Str("code", entry.Code).Msg("take:money ignored")
			return map[string]any{"ok": false}
		}
		log.Info().Str("code", entry.Code).Msg("take:money")
		srv.emitState(io, entry)
		return map[string]any{"ok": true}
	})

	// game:new
	io.OnEvent("/", "game:new", func(s socketio.Conn) map[string]any {
		entry, ok := srv.authed(s)
		if !ok {
			return srv.err(s, "session_not_found", "Session not found")
		}
		entry.Session.NewGame()
		log.Info().Str("code", entry.Code).Msg("game:new")
		srv.emitState(io, entry)
		return map[string]any{"ok": true}
	})

	// game:forcewin (debug helper, no-op outside playing)
	io.OnEvent("/", "game:forcewin", func(s socketio.Conn) map[string]any {
		entry, ok := srv.authed(s)
		if !ok {
			return srv.err(s, "session_not_found", "Session not found")
		}
		entry.Session.ForceWin()
		srv.emitState(io, entry)
		return map[string]any{"ok": true}
	})

	// assets:levels
	io.OnEvent("/", "assets:level", func(s socketio.Conn, payload struct {
		Level      string `json:"level"`
		GameID     string `json:"gameId"`
		CampaignID string `json:"campaignId"`
	}) map[string]any {
		if srv.manifest == nil {
			return map[string]any{"assets": []string{}}
		}
		urls, err := srv.manifest.ForLevel(assets.LoadLevel(payload.Level), payload.GameID, payload.CampaignID)
		if err != nil {
			return srv.err(s, "bad_request", err.Error())
		}
		if urls == nil {
			urls = []string{}
		}
		return map[string]any{"assets": urls}
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
	})
	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		if ctx, ok := s.Context().(*ConnCtx); ok && ctx.Code != "" {
			srv.removeMember(ctx.Code, s)
		}
		log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	go io.Serve()

	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))
	r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Status(http.StatusNoContent)
	})

	return io
}

// authed resolves the connection's bound session and checks its token.
func (srv *Server) authed(s socketio.Conn) (*game.SessionEntry, bool) {
	ctx, ok := s.Context().(*ConnCtx)
	if !ok || ctx.Code == "" {
		return nil, false
	}
	entry, err := srv.manager.Get(ctx.Code)
	if err != nil || entry.Token != ctx.Token {
		return nil, false
	}
	return entry, true
}

func (srv *Server) addMember(code string, c socketio.Conn) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.members[code] == nil {
		srv.members[code] = make(map[string]socketio.Conn)
	}
	srv.members[code][c.ID()] = c
}

func (srv *Server) removeMember(code string, c socketio.Conn) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if m := srv.members[code]; m != nil {
		delete(m, c.ID())
	}
}

func (srv *Server) emitState(io *socketio.Server, entry *game.SessionEntry) {
	view := entry.Session.Snapshot()
	io.BroadcastToRoom("/", entry.Code, "session:state", view)
}

func (srv *Server) err(s socketio.Conn, code, message string) map[string]any {
	s.Emit("error", map[string]any{"code": code, "message": message})
	return map[string]any{"error": message}
}
