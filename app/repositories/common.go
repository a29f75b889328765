package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"
)

// Backoff bounds between retries of a conflicting transaction.
const (
	minConflictBackoff = 100 * time.Microsecond
	maxConflictBackoff = 20 * time.Millisecond
)

func postKey(id string) []byte {
	return []byte(PostKeyPrefix + id)
}

func commentKey(id string) []byte {
	return []byte(CommentKeyPrefix + id)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// getEntity loads the JSON document stored at key into entity.
func getEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}

// setEntity stores entity at key as JSON.
func setEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// update runs fn in a read-write transaction. When a concurrent transaction
// touched the same keys it retries with jittered exponential backoff until
// it commits or ctx is done.
func update(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	backoff := minConflictBackoff
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}

		timer := time.NewTimer(jitter(backoff))
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-timer.C:
		}
		backoff = min(backoff*2, maxConflictBackoff)
	}
}

// jitter returns a duration in [d/2, d).
func jitter(d time.Duration) time.Duration {
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(d-half)))
}

// view runs fn in a read-only transaction.
func view(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return db.View(fn)
}
