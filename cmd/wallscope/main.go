// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command wallscope runs the display server and the touch client of
// a wall display model viewer, and replays recorded gesture traces.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cogentcore.org/wallscope/base/errors"
	"cogentcore.org/wallscope/base/websocket"
	"cogentcore.org/wallscope/client"
	"cogentcore.org/wallscope/config"
	"cogentcore.org/wallscope/logx"
	"cogentcore.org/wallscope/scene"
	"cogentcore.org/wallscope/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	configFile string
	debug      bool
	verbose    bool
	quiet      bool
	offline    bool

	rootCmd = &cobra.Command{
		Use:               "wallscope",
		Short:             "Touch driven model viewer for wall displays",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the display server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	clientCmd = &cobra.Command{
		Use:   "client",
		Short: "Run the touch client connected to a display server",
		Args:  cobra.NoArgs,
		RunE:  runClient,
	}
	replayCmd = &cobra.Command{
		Use:   "replay [trace file]",
		Short: "Replay a recorded gesture trace through the touch client",
		Long: `Replay runs the events of a YAML trace file through the gesture
recognizer and the client history, sending the resulting edits to the
display server unless --offline is given.`,
		Args: cobra.ExactArgs(1),
		RunE: runReplay,
	}
)

// cfg is the loaded configuration.
var cfg *config.Config

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "config file (toml, yaml or json)")
	pf.BoolVarP(&debug, "debug", "d", false, "log debug messages")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log info messages")
	pf.BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	replayCmd.Flags().BoolVar(&offline, "offline", false, "replay without connecting to a server")
	rootCmd.AddCommand(serveCmd, clientCmd, replayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	logx.SetDefaultLogger()
	var err error
	if configFile == "" {
		cfg = config.Default()
	} else if cfg, err = config.Open(configFile); err != nil {
		return err
	}
	setLevel(cfg)
	return nil
}

// setLevel sets the log level from the flags, or else from the config.
func setLevel(c *config.Config) {
	if debug || verbose || quiet {
		logx.UserLevel.Set(logx.LevelFromFlags(debug, verbose, quiet))
		return
	}
	logx.UserLevel.Set(logx.LevelFromString(c.Log.Level))
}

// run runs fun with a context canceled on interrupt, watching the
// config file for log level changes meanwhile.
func run(fun func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	if configFile != "" {
		wctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			errors.Log(config.Watch(wctx, configFile, setLevel))
		}()
	}
	g.Go(func() error { return fun(ctx) })
	return g.Wait()
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := server.New(cfg, scene.NewBoxLoader())
	if err != nil {
		return err
	}
	return run(s.Run)
}

func runClient(cmd *cobra.Command, args []string) error {
	cl, err := client.New(cfg, scene.NewBoxLoader())
	if err != nil {
		return err
	}
	return run(cl.Run)
}

func runReplay(cmd *cobra.Command, args []string) error {
	tr, err := client.OpenTrace(args[0])
	if err != nil {
		return err
	}
	cl, err := client.New(cfg, scene.NewBoxLoader())
	if err != nil {
		return err
	}
	return run(func(ctx context.Context) error {
		if offline {
			_, err := cl.Replay(ctx, tr, time.Now())
			return err
		}
		conn, err := websocket.Connect(ctx, cfg.Client.URL)
		if err != nil {
			return err
		}
		cl.Conn = conn
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return conn.ReadLoop(func(typ websocket.MessageTypes, msg []byte) {
				cl.Receive(string(msg))
			})
		})
		g.Go(func() error {
			defer conn.Close()
			errors.Log(cl.LoadModel(cl.Scene.Model))
			_, err := cl.Replay(ctx, tr, time.Now())
			return err
		})
		return g.Wait()
	})
}
