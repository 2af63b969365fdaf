// Package testserver assembles a fully wired HTTP server over an in-memory
// database for functional tests.
package testserver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/domain/board"
	"github.com/taskdeck/taskdeck/internal/domain/intent"
	"github.com/taskdeck/taskdeck/internal/mcp"
	"github.com/taskdeck/taskdeck/internal/sqlite"
	"github.com/taskdeck/taskdeck/internal/transport"
)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Store  *board.Store
	Token  string
	UserID string
}

func New(t *testing.T, userID string) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := board.NewStore(sqlite.NewAdapter(db), userID, logger)
	require.NoError(t, store.Load(context.Background()))

	resolver := intent.NewResolver(store, logger)
	mcpServer := mcp.NewServer(mcp.Config{
		Store:    store,
		Resolver: resolver,
		Logger:   logger,
	})

	verifier := transport.NewJWTVerifier("functional-test-secret")
	token, err := verifier.IssueToken(userID, time.Hour)
	require.NoError(t, err)

	server := httptest.NewServer(transport.NewRouter(mcpServer, transport.RouterConfig{
		Verifier:      verifier,
		SessionUserID: userID,
		AuthEnabled:   true,
		Logger:        logger,
	}))

	t.Cleanup(func() {
		server.Close()
		store.Flush()
		_ = db.Close()
	})

	return &TestServer{
		Server: server,
		DB:     db,
		Store:  store,
		Token:  token,
		UserID: userID,
	}
}
