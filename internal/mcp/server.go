package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taskdeck/taskdeck/internal/domain/board"
	"github.com/taskdeck/taskdeck/internal/domain/intent"
)

const serverInstructions = `Taskdeck board engine. One session, one board set.

Call get_board before acting: task and column ids come from the snapshot.
Mutations target the active board. Use apply_action for natural-language
derived intents; it returns a typed outcome (applied, task_not_found,
ambiguous_task, target_column_not_found, invalid_priority, ...) instead of
failing, so phrase the outcome back to the user.`

// Config contains server configuration.
type Config struct {
	Store    *board.Store
	Resolver *intent.Resolver
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and
// middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "taskdeck",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(loggingMiddleware(cfg.Logger))

	handler := NewHandler(cfg.Store, cfg.Resolver, cfg.Logger)
	registerTools(server, handler)

	return server
}
