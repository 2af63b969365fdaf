package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// loggingMiddleware logs each inbound MCP call with its duration.
func loggingMiddleware(logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)
			attrs := []any{
				"method", method,
				"duration", time.Since(start),
			}
			if err != nil {
				logger.Warn("mcp call failed", append(attrs, "error", err)...)
			} else {
				logger.Debug("mcp call", attrs...)
			}
			return result, err
		}
	}
}
