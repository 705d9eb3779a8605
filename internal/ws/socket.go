// Package ws is the realtime chat gateway. Each connection keeps its own chat
// history; messages are answered through the dispatcher.
package ws

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"modelmux/internal/ai"
	"modelmux/internal/dispatch"
	"modelmux/internal/imagegen"
)

type ConnCtx struct {
	mu      sync.Mutex
	UserID  string
	History []ai.Message
}

func (c *ConnCtx) setUser(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.UserID = id
}

func (c *ConnCtx) user() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.UserID
}

func (c *ConnCtx) append(msg ai.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.History = append(c.History, msg)
}

func (c *ConnCtx) snapshot() []ai.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ai.Message, len(c.History))
	copy(out, c.History)
	return out
}

func (c *ConnCtx) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.History = nil
}

type Server struct {
	dispatcher *dispatch.Dispatcher
	images     *imagegen.Client
}

func New(d *dispatch.Dispatcher, img *imagegen.Client) *Server {
	return &Server{dispatcher: d, images: img}
}

// Mount attaches the Socket.IO server with handlers to the given Gin engine.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	io := socketio.NewServer(nil)

	io.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext(&ConnCtx{})
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	// chat:join registers the caller identity used for routing and admin checks.
	io.OnEvent("/", "chat:join", func(s socketio.Conn, payload struct {
		UserID string `json:"userId"`
	}) map[string]any {
		ctx := s.Context().(*ConnCtx)
		ctx.setUser(payload.UserID)
		log.Info().Str("sid", s.ID()).Str("userId", payload.UserID).Msg("chat:join")
		return map[string]any{"ok": true}
	})

	// chat:send appends the message and answers in the background.
	io.OnEvent("/", "chat:send", func(s socketio.Conn, payload struct {
		Message string `json:"message"`
	}) map[string]any {
		ctx := s.Context().(*ConnCtx)
		ctx.append(ai.Message{Role: ai.RoleUser, Content: payload.Message})
		userID := ctx.user()
		go func() {
			reply := srv.dispatcher.Respond(context.Background(), ctx.snapshot(), userID)
			ctx.append(ai.Message{Role: ai.RoleAssistant, Content: reply})
			s.Emit("chat:reply", map[string]any{"reply": reply})
		}()
		return map[string]any{"ok": true}
	})

	// chat:reset drops the connection's history.
	io.OnEvent("/", "chat:reset", func(s socketio.Conn) map[string]any {
		s.Context().(*ConnCtx).reset()
		return map[string]any{"ok": true}
	})

	// admin:option forwards /tryoption and /fixoption.
	io.OnEvent("/", "admin:option", func(s socketio.Conn, payload struct {
		Command string `json:"command"`
	}) map[string]any {
		ctx := s.Context().(*ConnCtx)
		userID := ctx.user()
		msg := srv.dispatcher.HandleOption(userID, payload.Command)
		log.Info().Str("sid", s.ID()).Str("userId", userID).Msg("admin:option")
		return map[string]any{"message": msg}
	})

	// admin:status returns the usage report.
	io.OnEvent("/", "admin:status", func(s socketio.Conn) map[string]any {
		ctx := s.Context().(*ConnCtx)
		return map[string]any{"status": srv.dispatcher.Status(ctx.user())}
	})

	// image:create generates an image in the background (best-effort).
	io.OnEvent("/", "image:create", func(s socketio.Conn, payload struct {
		Prompt string `json:"prompt"`
	}) map[string]any {
		go func() {
			data, err := srv.images.Generate(context.Background(), url.QueryEscape(payload.Prompt))
			if err != nil {
				log.Error().Err(err).Msg("image generation failed")
				s.Emit("image:result", map[string]any{"error": "image_unavailable"})
				return
			}
			s.Emit("image:result", map[string]any{"image": data})
		}()
		return map[string]any{"ok": true}
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
	})
	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	go io.Serve()

	// Mount to router
	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))

	// Basic CORS preflight for Socket.IO POST
	r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Status(http.StatusNoContent)
	})

	return io
}
