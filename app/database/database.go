// Package database opens the configured document store and hands back the
// repositories built on it.
package database

import (
	"context"
	"errors"
	"fmt"

	"commentsapi/app/config"
	"commentsapi/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// ErrClosed is returned by Ping once the store has been closed.
var ErrClosed = errors.New("store closed")

// Store bundles the repositories of one backend with its lifecycle.
type Store struct {
	Posts    repositories.PostRepository
	Comments repositories.CommentRepository

	// Badger is the underlying database when the store is badger-backed,
	// nil otherwise.
	Badger *badger.DB

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping reports whether the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backend.
func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}

// Open opens the store selected by cfg.Store.
func Open(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*Store, error) {
	switch cfg.Store {
	case config.StoreBadger:
		return OpenBadger(cfg.BadgerPath, log)
	case config.StoreMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// OpenBadger opens a badger database at path. An empty path opens an
// in-memory database.
func OpenBadger(path string, log logrus.FieldLogger) (*Store, error) {
	db, err := OpenBadgerDB(path, log)
	if err != nil {
		return nil, err
	}
	return NewBadgerStore(db), nil
}

// OpenBadgerDB opens the raw badger database used by the store.
func OpenBadgerDB(path string, log logrus.FieldLogger) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	if log != nil {
		opts = opts.WithLogger(log.WithField("component", "badger"))
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %q: %w", path, err)
	}
	return db, nil
}

// NewBadgerStore wraps an open badger database.
func NewBadgerStore(db *badger.DB) *Store {
	return &Store{
		Posts:    repositories.NewBadgerPostRepository(db),
		Comments: repositories.NewBadgerCommentRepository(db),
		Badger:   db,
		ping: func(ctx context.Context) error {
			if db.IsClosed() {
				return ErrClosed
			}
			return db.View(func(txn *badger.Txn) error { return nil })
		},
		close: func(context.Context) error {
			if db.IsClosed() {
				return nil
			}
			return db.Close()
		},
	}
}

// OpenMongo connects to uri and uses database dbName. The connection is
// verified with a ping before returning.
func OpenMongo(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(dbName)
	return &Store{
		Posts:    repositories.NewMongoPostRepository(db),
		Comments: repositories.NewMongoCommentRepository(db),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: client.Disconnect,
	}, nil
}
