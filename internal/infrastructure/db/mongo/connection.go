// Package mongo owns the shared MongoDB connection and the users collection
// repository built on top of it.
package mongo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Manager owns a single lazily-created MongoDB client shared by every
// repository in the process. The first caller of Handle establishes the
// connection under a mutex; once established the handle is effectively
// immutable until Close. A failed attempt is not retried — the caller fails
// and the next call dials again.
type Manager struct {
	cfg Config
	log zerolog.Logger

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// NewManager returns a Manager that connects on first use. A default timeout
// is applied when none is provided.
func NewManager(cfg Config, log zerolog.Logger) *Manager {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Manager{cfg: cfg, log: log}
}

// Handle returns the shared database handle, dialing and pinging the server
// first if no live connection exists yet.
func (m *Manager) Handle(ctx context.Context) (*mongo.Database, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.connectLocked(ctx); err != nil {
		return nil, err
	}
	return m.db, nil
}

// Collection returns a handle scoped to the named collection beneath the
// current database.
func (m *Manager) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := m.Handle(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Health probes the server with a ping. It never returns an error; the
// boolean result and diagnostic message carry the outcome.
func (m *Manager) Health(ctx context.Context) (bool, string) {
	db, err := m.Handle(ctx)
	if err != nil {
		return false, err.Error()
	}

	pingCtx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	if err := db.Client().Ping(pingCtx, nil); err != nil {
		return false, err.Error()
	}
	return true, "MongoDB connection is healthy"
}

// Close disconnects the client and clears the cached handles so the next
// Handle call re-establishes the connection.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}

	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	if err != nil {
		return fmt.Errorf("mongo disconnect: %w", err)
	}

	m.log.Info().Msg("mongodb connection closed")
	return nil
}

// connectLocked establishes the client and database handles. Callers must
// hold m.mu. A single attempt is made: dial, then ping to verify liveness.
func (m *Manager) connectLocked(ctx context.Context) error {
	if m.client != nil {
		return nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(m.cfg.URI).
		SetRetryWrites(true))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return fmt.Errorf("mongo ping: %w", err)
	}

	m.client = client
	m.db = client.Database(m.cfg.Database)
	m.log.Info().Str("database", m.cfg.Database).Msg("connected to mongodb")
	return nil
}
