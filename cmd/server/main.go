package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	flag "github.com/spf13/pflag"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/domain/board"
	"github.com/taskdeck/taskdeck/internal/domain/intent"
	"github.com/taskdeck/taskdeck/internal/mcp"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/internal/sqlite"
	"github.com/taskdeck/taskdeck/internal/surreal"
	"github.com/taskdeck/taskdeck/internal/transport"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	transportMode := flag.String("transport", "", "transport mode: stdio or http")
	sessionMode := flag.String("session", "", "session mode: guest or account")
	userID := flag.String("user", "", "user id for account sessions")
	flag.Parse()

	if *configPath != "" {
		os.Setenv("TASKDECK_CONFIG_PATH", *configPath)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *transportMode != "" {
		cfg.Transport.Mode = *transportMode
	}
	if *sessionMode != "" {
		cfg.Session.Mode = *sessionMode
	}
	if *userID != "" {
		cfg.Session.UserID = *userID
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	adapter, identity, cleanup, err := buildAdapter(cfg, logger)
	if err != nil {
		logger.Error("failed to set up persistence", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	store := board.NewStore(adapter, identity, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.Load(ctx); err != nil {
		cancel()
		logger.Error("failed to load session", "error", err)
		os.Exit(1)
	}
	cancel()
	defer store.Flush()

	resolver := intent.NewResolver(store, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Store:    store,
		Resolver: resolver,
		Logger:   logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
	} else {
		runHTTPMode(logger, mcpServer, cfg)
	}
}

// buildAdapter selects the persistence backend for the session mode: local
// SQLite for guests, the remote document store for authenticated users.
func buildAdapter(cfg config.Config, logger *slog.Logger) (repository.Adapter, string, func(), error) {
	if cfg.Session.Mode == config.ModeAccount {
		conn, err := surreal.Connect(surreal.Config{
			URL:       cfg.Surreal.URL,
			Namespace: cfg.Surreal.Namespace,
			Database:  cfg.Surreal.Database,
			Username:  cfg.Surreal.Username,
			Password:  cfg.Surreal.Password,
		})
		if err != nil {
			return nil, "", nil, err
		}
		logger.Info("using remote persistence", "user", cfg.Session.UserID)
		return surreal.NewAdapter(conn, cfg.Session.UserID), cfg.Session.UserID, conn.Close, nil
	}

	if err := ensureDBDir(cfg.Local.Path); err != nil {
		return nil, "", nil, err
	}
	db, err := sqlite.New(cfg.Local.Path)
	if err != nil {
		return nil, "", nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, "", nil, err
	}
	logger.Info("using local persistence", "path", cfg.Local.Path)
	return sqlite.NewAdapter(db), "guest", func() { db.Close() }, nil
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, mcpServer *sdkmcp.Server, cfg config.Config) {
	router := transport.NewRouter(mcpServer, transport.RouterConfig{
		Verifier:      transport.NewJWTVerifier(cfg.Auth.JWTSecret),
		SessionUserID: cfg.Session.UserID,
		AuthEnabled:   cfg.Auth.Enabled,
		Logger:        logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
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
