// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server is the display server: it holds the authoritative
// scene and applies the edits received from the client to it.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"cogentcore.org/wallscope/base/errors"
	"cogentcore.org/wallscope/base/queue"
	"cogentcore.org/wallscope/base/websocket"
	"cogentcore.org/wallscope/command"
	"cogentcore.org/wallscope/config"
	"cogentcore.org/wallscope/protocol"
	"cogentcore.org/wallscope/scene"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// inbound is a received message and the connection it came from.
type inbound struct {
	text string
	from protocol.TextWriter
}

// Status is a snapshot of the server state, for the health endpoint.
type Status struct {
	Model       string   `json:"model"`
	ActiveParts []string `json:"activeParts"`
	Undo        int      `json:"undo"`
	Redo        int      `json:"redo"`
	CutLine     bool     `json:"cutLine"`
}

// Server is the display server. The scene, history and display state
// are only used by the update loop ([Server.Step] and [Server.Apply]);
// network goroutines only queue messages with [Server.Receive].
// It must be created with [New].
type Server struct {

	// Config is the configuration.
	Config *config.Config

	// Scene is the authoritative scene.
	Scene *scene.Scene

	// History runs the received edits.
	History *command.History

	// Loader provides model meshes.
	Loader scene.ModelLoader

	// Metrics are the server metrics.
	Metrics *Metrics

	// CutLine is the cut line to display, or nil.
	CutLine *protocol.CutLine

	// CropPlane is the crop plane preview to display, or nil.
	CropPlane *protocol.CropPlane

	inbox  *queue.Queue[inbound]
	status atomic.Pointer[Status]
	engine *gin.Engine
}

// New returns a new server with the configured model loaded.
func New(cfg *config.Config, loader scene.ModelLoader) (*Server, error) {
	mesh, err := loader.LoadModel(cfg.Server.Model)
	if err != nil {
		return nil, err
	}
	s := &Server{Config: cfg, Loader: loader, Metrics: NewMetrics()}
	s.Scene = scene.New(cfg.Scene, cfg.Server.Model, mesh)
	s.History = command.NewHistory(command.Env{Scene: s.Scene, Slicer: scene.ConvexSlicer{}}, nil)
	s.inbox = queue.New[inbound]()
	s.updateStatus()
	s.engine = s.newEngine()
	return s, nil
}

func (s *Server) newEngine() *gin.Engine {
	gin.SetMode(s.Config.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/ws", s.handleWebSocket)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "scene": s.Status()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{})))
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Status returns the state as of the last frame.
func (s *Server) Status() *Status {
	return s.status.Load()
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := websocket.Upgrade(c.Writer, c.Request)
	if errors.Log(err) != nil {
		return
	}
	defer conn.Close()
	addr := conn.RemoteAddr()
	slog.Info("server: client connected", "addr", addr)
	s.Metrics.Connections.Inc()
	defer s.Metrics.Connections.Dec()
	err = conn.ReadLoop(func(typ websocket.MessageTypes, msg []byte) {
		if typ != websocket.TextMessage {
			s.Metrics.Rejected.WithLabelValues("binary").Inc()
			return
		}
		s.Receive(string(msg), conn)
	})
	if err != nil {
		slog.Warn("server: connection ended", "addr", addr, "err", err)
	} else {
		slog.Info("server: client disconnected", "addr", addr)
	}
}

// Receive queues a message for the next frame. It may be called
// from any goroutine. Replies are written to from, which may be nil.
func (s *Server) Receive(text string, from protocol.TextWriter) {
	s.inbox.Send(inbound{text: text, from: from})
}

// Step runs one frame: the received messages in order, then the
// scene animations.
func (s *Server) Step(dt time.Duration) {
	start := time.Now()
	s.inbox.Drain(func(in inbound) { s.Apply(in.text, in.from) })
	s.Scene.Update(dt)
	s.updateStatus()
	s.Metrics.FrameSeconds.Observe(time.Since(start).Seconds())
}

func (s *Server) updateStatus() {
	st := &Status{Model: s.Scene.Model, ActiveParts: s.Scene.ActiveNames(),
		Undo: s.History.UndoLen(), Redo: s.History.RedoLen(), CutLine: s.CutLine != nil}
	s.status.Store(st)
	s.Metrics.ActiveParts.Set(float64(len(st.ActiveParts)))
	s.Metrics.Parts.Set(float64(s.Scene.Len()))
}

// Apply applies one message. Messages that do not decode are logged
// and ignored. After a message that changes the scene, the new model
// size is sent back to from.
func (s *Server) Apply(text string, from protocol.TextWriter) {
	msg, err := protocol.Decode(text)
	if err != nil {
		reason := "malformed"
		if errors.Is(err, protocol.ErrUnknownMessage) {
			reason = "unknown"
		}
		s.Metrics.Rejected.WithLabelValues(reason).Inc()
		slog.Warn("server: ignoring message", "err", err)
		return
	}
	s.Metrics.Messages.WithLabelValues(string(msg.Name)).Inc()
	changed := true
	switch pl := msg.Payload.(type) {
	case *protocol.Transform:
		s.Scene.Transform = pl.Transform()
		changed = false
	case *protocol.Model:
		s.loadModel(pl.Model)
	case *protocol.CropPlane:
		s.CropPlane = pl
		changed = false
	case *protocol.Slice, *protocol.Destroy:
		s.execute(msg)
	case *protocol.History:
		if msg.Name == protocol.UndoAction {
			s.History.UndoAction(pl.ActionID)
		} else {
			s.History.RedoAction(pl.ActionID)
		}
	case *protocol.CutLine:
		s.CutLine = pl
		changed = false
	case *protocol.ModelSize:
		slog.Warn("server: unexpected message", "name", msg.Name)
		changed = false
	default:
		switch msg.Name {
		case protocol.ResetAll:
			s.History.ClearHistory()
			s.Scene.ResetToRoot()
			s.CutLine = nil
			s.CropPlane = nil
		case protocol.HideCutLine:
			s.CutLine = nil
			s.CropPlane = nil
			changed = false
		}
	}
	if changed && from != nil {
		size := s.Scene.ActiveBounds().Size()
		errors.Log(protocol.Send(from, protocol.ModelSizeUpdate, &protocol.ModelSize{Size: protocol.V3(size)}))
	}
}

func (s *Server) loadModel(model string) {
	mesh, err := s.Loader.LoadModel(model)
	if errors.Log(err) != nil {
		return
	}
	s.History.ClearHistory()
	s.Scene.Load(model, mesh)
	s.CutLine = nil
	s.CropPlane = nil
}

func (s *Server) execute(msg *protocol.Message) {
	c, err := protocol.ToCommand(msg)
	if errors.Log(err) != nil {
		return
	}
	if s.History.Has(c.ActionID) {
		slog.Warn("server: ignoring duplicate action", "action", c.ActionID)
		s.Metrics.Commands.WithLabelValues(c.Kind.String(), "duplicate").Inc()
		return
	}
	err = s.History.ExecuteCommand(c)
	result := "ok"
	switch {
	case errors.Is(err, command.ErrNoEffect):
		result = "noeffect"
		slog.Warn("server: command had no effect", "command", c.String())
	case err != nil:
		result = "error"
		slog.Error("server: command", "command", c.String(), "err", err)
	}
	s.Metrics.Commands.WithLabelValues(c.Kind.String(), result).Inc()
}

// Run serves HTTP on the configured address and runs the update
// loop until ctx is done or either fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.Config.Server.Addr, Handler: s.engine}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server: listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	g.Go(func() error {
		frame := time.Second / time.Duration(s.Config.Server.FrameRate)
		tick := time.NewTicker(frame)
		defer tick.Stop()
		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return nil
			case now := <-tick.C:
				s.Step(now.Sub(last))
				last = now
			}
		}
	})
	return g.Wait()
}
