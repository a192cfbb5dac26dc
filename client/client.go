// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package client is the touch client: it turns pointer input into
// camera movement and scene edits on its mirror of the scene, and
// sends the edits to the display server.
package client

import (
	"context"
	"log/slog"
	"time"

	"cogentcore.org/wallscope/base/errors"
	"cogentcore.org/wallscope/base/queue"
	"cogentcore.org/wallscope/base/websocket"
	"cogentcore.org/wallscope/command"
	"cogentcore.org/wallscope/config"
	"cogentcore.org/wallscope/events"
	"cogentcore.org/wallscope/gesture"
	"cogentcore.org/wallscope/math32"
	"cogentcore.org/wallscope/protocol"
	"cogentcore.org/wallscope/scene"
	"cogentcore.org/wallscope/viewport"
	"golang.org/x/time/rate"
)

// Client is the touch client. All of its state is owned by the
// update loop: [Client.Step] and the UI operations must be called
// from one goroutine. Only [Client.Receive] and the pointer input of
// [Client.Sampler] may be called from others. It must be created
// with [New].
type Client struct {

	// Config is the configuration.
	Config *config.Config

	// Scene is the mirror of the server scene.
	Scene *scene.Scene

	// History runs the edits and sends them.
	History *command.History

	// Sampler collects the pointer input.
	Sampler *events.Sampler

	// Recognizer turns the pointer input into intents.
	Recognizer *gesture.Recognizer

	// Rig is the camera.
	Rig *viewport.Rig

	// HitTester finds the part under a press.
	HitTester *scene.RayHitTester

	// Loader provides model meshes.
	Loader scene.ModelLoader

	// Conn is where messages are sent. Messages are dropped
	// while it is nil.
	Conn protocol.TextWriter

	// ModelSize is the last model size reported by the server.
	ModelSize math32.Vector3

	inbox   *queue.Queue[string]
	limiter *rate.Limiter
	last    time.Time
	size    math32.Vector2
}

// New returns a new client with the given config and model loader,
// with its model loaded locally.
func New(cfg *config.Config, loader scene.ModelLoader) (*Client, error) {
	cc := &cfg.Client
	cl := &Client{Config: cfg, Loader: loader}
	cl.size = math32.Vec2(cc.Width, cc.Height)
	mesh, err := loader.LoadModel(cc.Model)
	if err != nil {
		return nil, err
	}
	cl.Scene = scene.New(cfg.Scene, cc.Model, mesh)
	cl.History = command.NewHistory(command.Env{Scene: cl.Scene, Slicer: scene.ConvexSlicer{}}, &protocol.Sender{W: cl})
	cl.Rig = viewport.NewRig(cfg.Viewport)
	cl.Sampler = events.NewSampler(cl.size)
	cl.HitTester = &scene.RayHitTester{Scene: cl.Scene, Projector: cl.Rig, Size: cl.size}
	cl.Recognizer = gesture.NewRecognizer(cfg.Gesture, cl.HitTester)
	cl.inbox = queue.New[string]()
	cl.limiter = rate.NewLimiter(rate.Limit(cc.CutLineRate), 1)
	cl.handleIntents()
	return cl, nil
}

// WriteText sends a message to the server, if connected.
func (cl *Client) WriteText(text string) error {
	if cl.Conn == nil {
		slog.Debug("client: not connected, dropping", "message", text)
		return nil
	}
	return cl.Conn.WriteText(text)
}

func (cl *Client) send(name protocol.Names, payload any) {
	errors.Log(protocol.Send(cl, name, payload))
}

// Receive queues a message from the server for the next [Client.Step].
// It may be called from any goroutine.
func (cl *Client) Receive(text string) {
	cl.inbox.Send(text)
}

// Step runs one frame at the given time: received messages, then
// gestures, then camera and scene animation.
func (cl *Client) Step(now time.Time) {
	var dt time.Duration
	if !cl.last.IsZero() {
		dt = now.Sub(cl.last)
	}
	cl.last = now
	cl.inbox.Drain(cl.apply)
	f := cl.Sampler.Sample(now)
	cl.Recognizer.Update(&f)
	cl.Rig.Update(dt)
	cl.Scene.Update(dt)
}

// apply handles one message from the server.
func (cl *Client) apply(text string) {
	msg, err := protocol.Decode(text)
	if err != nil {
		slog.Warn("client: ignoring message", "err", err)
		return
	}
	switch pl := msg.Payload.(type) {
	case *protocol.ModelSize:
		cl.ModelSize = pl.Size.Vector3()
		cl.Rig.SetModelSize(cl.ModelSize)
	default:
		slog.Warn("client: unexpected message", "name", msg.Name)
	}
}

// CutPlane returns the world cut plane of a cut line between two
// screen positions: the plane through the camera containing the
// rays through both ends.
func (cl *Client) CutPlane(start, end math32.Vector2) math32.Plane {
	r0 := cl.Rig.Ray(start, cl.size)
	r1 := cl.Rig.Ray(end, cl.size)
	return math32.NewPlane(r0.Origin, r0.Dir.Cross(r1.Dir))
}

// cutWorld returns the world points of a cut line, at the target depth.
func (cl *Client) cutWorld(start, end math32.Vector2) (math32.Vector3, math32.Vector3) {
	r0 := cl.Rig.Ray(start, cl.size)
	r1 := cl.Rig.Ray(end, cl.size)
	return r0.At(cl.Rig.Distance), r1.At(cl.Rig.Distance)
}

// sendCutLine sends the cut line and the crop plane, at most
// CutLineRate times per second.
func (cl *Client) sendCutLine(start, end math32.Vector2) {
	if !cl.limiter.Allow() {
		return
	}
	s, e := cl.cutWorld(start, end)
	cl.send(protocol.UpdateCutLine, &protocol.CutLine{Start: protocol.V3(s), End: protocol.V3(e)})
	pl := cl.CutPlane(start, end)
	if !pl.IsValid() {
		return
	}
	scale := math32.Max(cl.Scene.ActiveBounds().Size().Length(), 1)
	cl.send(protocol.UpdateVisualCropPlane, &protocol.CropPlane{Position: protocol.V3(s.Add(e).MulScalar(0.5)), Normal: protocol.V3(pl.Normal), Scale: scale})
}

func (cl *Client) handleIntents() {
	r := cl.Recognizer
	r.On(gesture.Orbit, func(in *gesture.Intent) { cl.Rig.ProcessOrbit(in.Delta) })
	r.On(gesture.Pan, func(in *gesture.Intent) { cl.Rig.ProcessPan(in.Delta) })
	r.On(gesture.Zoom, func(in *gesture.Intent) { cl.Rig.ProcessZoom(in.Amount) })
	r.On(gesture.Roll, func(in *gesture.Intent) { cl.Rig.ProcessRoll(in.Amount) })
	r.On(gesture.Tap, func(in *gesture.Intent) { cl.Rig.StopContinuousRotation() })
	r.On(gesture.DoubleTap, func(in *gesture.Intent) { cl.Rig.TriggerPresetRotation(in.Sign) })
	r.On(gesture.ContinuousRotation, func(in *gesture.Intent) { cl.Rig.StartContinuousRotation(in.Sign) })
	r.On(gesture.HoldStart, func(in *gesture.Intent) {
		if p, ok := cl.Scene.Part(in.Part); ok {
			cl.Scene.Animator.Shake(p)
		}
	})
	r.On(gesture.HoldEnd, func(in *gesture.Intent) {
		if p, ok := cl.Scene.Part(in.Part); ok {
			cl.Scene.Animator.StopShake(p)
		}
	})
	r.On(gesture.CutStart, func(in *gesture.Intent) {
		cl.limiter = rate.NewLimiter(cl.limiter.Limit(), 1)
	})
	r.On(gesture.CutUpdate, func(in *gesture.Intent) { cl.sendCutLine(in.Start, in.End) })
	r.On(gesture.CutHide, func(in *gesture.Intent) { cl.send(protocol.HideCutLine, nil) })
	r.On(gesture.CutEnd, func(in *gesture.Intent) { cl.Slice(cl.CutPlane(in.Start, in.End)) })
	r.On(gesture.DestroyRequest, func(in *gesture.Intent) { cl.Destroy(in.Part) })
}

// Slice cuts all active parts along the given plane.
func (cl *Client) Slice(plane math32.Plane) error {
	c := command.NewSlice(command.NewActionID(), cl.Scene.ActiveNames(), plane, cl.Config.Scene.Separation)
	return cl.execute(c)
}

// Destroy destroys the named part.
func (cl *Client) Destroy(part string) error {
	return cl.execute(command.NewDestroy(command.NewActionID(), part))
}

func (cl *Client) execute(c *command.Command) error {
	err := cl.History.ExecuteCommand(c)
	if errors.Is(err, command.ErrNoEffect) {
		slog.Info("client: edit had no effect", "command", c.String())
	}
	return err
}

// Undo undoes the last edit.
func (cl *Client) Undo() {
	cl.History.Undo()
}

// Redo redoes the last undone edit.
func (cl *Client) Redo() {
	cl.History.Redo()
}

// ResetHistory clears the history and restores the whole model.
func (cl *Client) ResetHistory() {
	cl.History.ClearHistory()
	cl.Scene.ResetToRoot()
	cl.send(protocol.ResetAll, nil)
}

// LoadModel loads a new model and asks the server to load it.
func (cl *Client) LoadModel(model string) error {
	mesh, err := cl.Loader.LoadModel(model)
	if err != nil {
		return err
	}
	cl.History.ClearHistory()
	cl.Scene.Load(model, mesh)
	cl.Rig.Reset()
	cl.send(protocol.LoadModel, &protocol.Model{Model: model})
	cl.SendInitialTransform()
	return nil
}

// SendInitialTransform sends the model placement.
func (cl *Client) SendInitialTransform() {
	cl.send(protocol.SetInitialModelTransform, protocol.NewTransform(cl.Scene.Transform))
}

// Run connects to the server, loads the configured model there, and
// runs the update loop until ctx is done or the connection closes.
func (cl *Client) Run(ctx context.Context) error {
	conn, err := websocket.Connect(ctx, cl.Config.Client.URL)
	if err != nil {
		return err
	}
	defer conn.Close()
	cl.Conn = conn
	conn.OnMessage(func(typ websocket.MessageTypes, msg []byte) { cl.Receive(string(msg)) })
	conn.OnClose(func() { slog.Info("client: disconnected", "url", cl.Config.Client.URL) })
	slog.Info("client: connected", "url", cl.Config.Client.URL)
	errors.Log(cl.LoadModel(cl.Scene.Model))

	tick := time.NewTicker(time.Second / time.Duration(cl.Config.Client.FrameRate))
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-conn.Done():
			return errors.New("client: connection closed")
		case now := <-tick.C:
			cl.Step(now)
		}
	}
}
