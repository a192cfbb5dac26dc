// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package websocket provides a simple WebSocket connection used by
// both the client (see [Connect]) and the server (see [Upgrade]).
package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"cogentcore.org/wallscope/base/errors"
	"github.com/gorilla/websocket"
)

// MessageTypes are the types of WebSocket messages.
type MessageTypes int

const (
	// TextMessage is a UTF-8 text message.
	TextMessage MessageTypes = websocket.TextMessage

	// BinaryMessage is a binary message.
	BinaryMessage MessageTypes = websocket.BinaryMessage
)

// Conn represents a WebSocket connection. Writes may be made from
// any goroutine. Messages are read by [Conn.OnMessage] or
// [Conn.ReadLoop] in the order they were sent.
type Conn struct {

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// writeMu protects writes to conn.
	writeMu sync.Mutex

	// done is a channel that is closed when the connection is closed.
	done chan struct{}

	closeOnce sync.Once
}

func newConn(conn *websocket.Conn) *Conn {
	return &Conn{conn: conn, done: make(chan struct{})}
}

// Connect connects to a WebSocket server and returns a [Conn].
func Connect(ctx context.Context, url string) (*Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return newConn(conn), nil
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Upgrade upgrades an HTTP server request to a WebSocket [Conn].
func Upgrade(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return newConn(conn), nil
}

// RemoteAddr returns the address of the other side.
func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// ReadLoop calls f for each received message until the connection
// is closed, and then closes [Conn.Done]. It returns nil for a
// normal closure.
func (c *Conn) ReadLoop(f func(typ MessageTypes, msg []byte)) error {
	defer c.markDone()
	for {
		typ, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		f(MessageTypes(typ), msg)
	}
}

// OnMessage sets a callback function to be called when a message is received.
// This function can only be called once.
func (c *Conn) OnMessage(f func(typ MessageTypes, msg []byte)) {
	go func() {
		errors.Log(c.ReadLoop(f))
	}()
}

// Send sends a message with the given type.
func (c *Conn) Send(typ MessageTypes, msg []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(int(typ), msg)
}

// WriteText sends a text message.
func (c *Conn) WriteText(text string) error {
	return c.Send(TextMessage, []byte(text))
}

// Close cleanly closes the WebSocket connection.
// It does not directly trigger [Conn.OnClose], but once the connection
// is closed, the read loop will trigger it.
func (c *Conn) Close() error {
	c.writeMu.Lock()
	err := c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.writeMu.Unlock()
	select {
	case <-c.done:
		return c.conn.Close()
	case <-time.After(time.Second):
		return errors.Join(err, c.conn.Close())
	}
}

// Done returns a channel that is closed when the read loop ends.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// OnClose sets a callback function to be called when the connection is closed.
// This function can only be called once.
func (c *Conn) OnClose(f func()) {
	go func() {
		<-c.done
		f()
	}()
}

func (c *Conn) markDone() {
	c.closeOnce.Do(func() { close(c.done) })
}
