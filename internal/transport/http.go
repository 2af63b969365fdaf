package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/cors"
)

// RouterConfig configures the HTTP surface.
type RouterConfig struct {
	Verifier      *JWTVerifier
	SessionUserID string
	AuthEnabled   bool
	Logger        *slog.Logger
}

// NewRouter mounts the MCP streamable handler plus a health endpoint, with
// CORS for browser-hosted clients and optional bearer auth on the MCP
// routes.
func NewRouter(mcpServer *sdkmcp.Server, cfg RouterConfig) http.Handler {
	mcpHandler := http.Handler(sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	))
	if cfg.AuthEnabled {
		mcpHandler = RequireBearer(cfg.Verifier, cfg.SessionUserID, cfg.Logger, mcpHandler)
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	router.PathPrefix("/mcp").Handler(mcpHandler)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
	}).Handler(router)
}
