// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcho(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrade(w, r)
		if err != nil {
			return
		}
		defer conn.conn.Close()
		conn.ReadLoop(func(typ MessageTypes, msg []byte) {
			conn.Send(typ, append([]byte("echo "), msg...))
		})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Connect(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)

	got := make(chan string, 4)
	c.OnMessage(func(typ MessageTypes, msg []byte) {
		assert.Equal(t, TextMessage, typ)
		got <- string(msg)
	})
	closed := make(chan struct{})
	c.OnClose(func() { close(closed) })

	for _, m := range []string{"a", "b", "c"} {
		require.NoError(t, c.WriteText(m))
	}
	for _, m := range []string{"a", "b", "c"} {
		select {
		case g := <-got:
			assert.Equal(t, "echo "+m, g)
		case <-ctx.Done():
			t.Fatal("timeout")
		}
	}
	require.NoError(t, c.Close())
	select {
	case <-closed:
	case <-ctx.Done():
		t.Fatal("timeout waiting for close")
	}
}
