// Package session owns the one connection an admin run works through and
// the core components built on top of it.
package session

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/knights/internal/config"
	"github.com/Lumos-Labs-HQ/knights/internal/database"
	"github.com/Lumos-Labs-HQ/knights/internal/schema"
	"github.com/Lumos-Labs-HQ/knights/internal/seeder"
	"github.com/Lumos-Labs-HQ/knights/internal/validity"
	"github.com/sirupsen/logrus"
)

type Session struct {
	Provider string
	Schema   *schema.Manager
	Seeder   *seeder.Seeder
	Validity *validity.Engine

	adapter database.DatabaseAdapter
	log     logrus.FieldLogger
}

// Open resolves the connection string and connects. Any failure here is
// fatal to the run: no operation works without a live connection.
func Open(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	adapter := database.NewAdapter(cfg.Database.Provider)
	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sess, err := New(adapter, cfg.Database.Provider, log)
	if err != nil {
		adapter.Close()
		return nil, err
	}
	return sess, nil
}

// New wires the core components around an already connected adapter. The
// session takes ownership of the adapter.
func New(adapter database.DatabaseAdapter, provider string, log logrus.FieldLogger) (*Session, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	manager, err := schema.NewManager(adapter, schema.Tables, log)
	if err != nil {
		return nil, err
	}

	log.WithField("provider", provider).Debug("session opened")

	return &Session{
		Provider: provider,
		Schema:   manager,
		Seeder:   seeder.NewSeeder(adapter, manager.Graph(), log),
		Validity: validity.NewEngine(adapter, log),
		adapter:  adapter,
		log:      log,
	}, nil
}

func (s *Session) Ping(ctx context.Context) error {
	return s.adapter.Ping(ctx)
}

// Close releases the connection. It is safe to call more than once.
func (s *Session) Close() error {
	if s.adapter == nil {
		return nil
	}
	err := s.adapter.Close()
	s.adapter = nil
	s.log.Debug("session closed")
	return err
}
