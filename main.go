package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/swarmlogic/swarm-core/agent"
	"github.com/swarmlogic/swarm-core/config"
	"github.com/swarmlogic/swarm-core/ipc"
	"github.com/swarmlogic/swarm-core/rules"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults apply when empty)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("starting swarm sidecar", "socket", cfg.Socket)

	// Unix sockets leave behind a file on unclean shutdown; remove it so
	// we can rebind.
	if err := os.RemoveAll(cfg.Socket); err != nil {
		slog.Error("failed to clean up socket", "path", cfg.Socket, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", cfg.Socket)
	if err != nil {
		slog.Error("failed to listen on socket", "path", cfg.Socket, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(cfg.Socket)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go handleConn(conn, cfg)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}

func handleConn(conn net.Conn, cfg config.Config) {
	engine, err := rules.NewEngine(cfg.Tuning)
	if err != nil {
		slog.Error("failed to build engine", "error", err)
		conn.Close()
		return
	}
	if assignment, err := cfg.ResolveAssignment(); err == nil && assignment != nil {
		if err := engine.SetAssignment(*assignment); err != nil {
			slog.Error("failed to apply configured assignment", "error", err)
		}
	}

	c := ipc.NewConnection(conn)
	s := agent.New(c, engine)
	s.Attach()
	c.ReadLoop()
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
