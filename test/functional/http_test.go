package functional_test

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/testserver"
	"github.com/taskdeck/taskdeck/internal/transport"
)

const initializePayload = `{"jsonrpc":"2.0","method":"initialize","id":1,` +
	`"params":{"protocolVersion":"2025-03-26","capabilities":{},` +
	`"clientInfo":{"name":"test-client","version":"1.0.0"}}}`

func mcpRequest(t *testing.T, ts *testserver.TestServer, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/mcp", bytes.NewBufferString(initializePayload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestFunctional_Health(t *testing.T) {
	ts := testserver.New(t, "alice")

	resp, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFunctional_RejectsMissingToken(t *testing.T) {
	ts := testserver.New(t, "alice")

	resp := mcpRequest(t, ts, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFunctional_RejectsForeignIdentity(t *testing.T) {
	ts := testserver.New(t, "alice")

	foreign, err := transport.NewJWTVerifier("functional-test-secret").IssueToken("mallory", time.Hour)
	require.NoError(t, err)

	resp := mcpRequest(t, ts, foreign)
	defer resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestFunctional_RejectsForgedToken(t *testing.T) {
	ts := testserver.New(t, "alice")

	forged, err := transport.NewJWTVerifier("other-secret").IssueToken("alice", time.Hour)
	require.NoError(t, err)

	resp := mcpRequest(t, ts, forged)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFunctional_AcceptsSessionToken(t *testing.T) {
	ts := testserver.New(t, "alice")

	resp := mcpRequest(t, ts, ts.Token)
	defer resp.Body.Close()
	// The MCP handler owns the response shape; auth must not intercept.
	require.NotEqual(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotEqual(t, http.StatusForbidden, resp.StatusCode)
}

func TestFunctional_CORSPreflight(t *testing.T) {
	ts := testserver.New(t, "alice")

	req, err := http.NewRequest(http.MethodOptions, ts.Server.URL+"/mcp", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestFunctional_UnknownRouteOutsidePrefix(t *testing.T) {
	ts := testserver.New(t, "alice")

	resp, err := http.Get(ts.Server.URL + "/boards")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
