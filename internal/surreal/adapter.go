package surreal

import (
	"context"
	"fmt"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/taskdeck/taskdeck/internal/domain/board"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// Conn is the subset of the SurrealDB client the adapter uses. The client's
// Change call performs a record-level merge, which is what keeps sibling
// fields on the account document (settings, chat history) intact.
type Conn interface {
	Select(what string) (any, error)
	Change(what string, data any) (any, error)
}

// Config holds remote store connection parameters.
type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// Connect dials the remote document store and selects the namespace and
// database for this deployment.
func Connect(cfg Config) (*surrealdb.DB, error) {
	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to document store: %w", err)
	}
	if _, err := db.Signin(map[string]any{"user": cfg.Username, "pass": cfg.Password}); err != nil {
		db.Close()
		return nil, fmt.Errorf("signing in: %w", err)
	}
	if _, err := db.Use(cfg.Namespace, cfg.Database); err != nil {
		db.Close()
		return nil, fmt.Errorf("selecting namespace: %w", err)
	}
	return db, nil
}

// Adapter implements repository.Adapter against the per-identity account
// document of an authenticated user.
type Adapter struct {
	conn   Conn
	userID string
}

// NewAdapter creates a remote persistence adapter keyed by the authenticated
// identity.
func NewAdapter(conn Conn, userID string) *Adapter {
	return &Adapter{conn: conn, userID: userID}
}

func (a *Adapter) thing() string {
	return "account:" + a.userID
}

// Load fetches the account document. A missing document reports
// repository.ErrNotFound — a brand-new user, for whom the caller seeds and
// writes the initial state.
func (a *Adapter) Load(ctx context.Context) (map[string]any, error) {
	result, err := a.conn.Select(a.thing())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}

	switch doc := result.(type) {
	case map[string]any:
		return doc, nil
	case []any:
		if len(doc) == 0 {
			return nil, repository.ErrNotFound
		}
		if first, ok := doc[0].(map[string]any); ok {
			return first, nil
		}
	case nil:
		return nil, repository.ErrNotFound
	}
	return nil, repository.ErrNotFound
}

// Save merges only the boards and activeBoardId fields into the account
// document. Never a full overwrite: the document carries sibling fields
// owned by other subsystems.
func (a *Adapter) Save(ctx context.Context, boards []board.Board, activeBoardID string) error {
	_, err := a.conn.Change(a.thing(), map[string]any{
		"boards":        boards,
		"activeBoardId": activeBoardID,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	return nil
}
