package db

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"sqlintent/models"
)

type DB struct {
	badgerDB *badger.DB
}

func New(dbPath string) (*DB, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Disable badger logging for cleaner output

	badgerDB, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{badgerDB: badgerDB}, nil
}

func (d *DB) Close() error {
	return d.badgerDB.Close()
}

// StoreQueryHistory appends one successful pipeline run to the session's
// history. Keys are ordered by nanosecond timestamp so prefix iteration
// returns entries oldest-first.
func (d *DB) StoreQueryHistory(sessionID string, entry models.QueryHistory) error {
	return d.badgerDB.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("history:%s:%d", sessionID, time.Now().UnixNano()))

		if entry.Timestamp == "" {
			entry.Timestamp = time.Now().Format(time.RFC3339)
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}

		return txn.Set(key, data)
	})
}

func (d *DB) GetQueryHistory(sessionID string) ([]models.QueryHistory, error) {
	var history []models.QueryHistory

	err := d.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(fmt.Sprintf("history:%s:", sessionID))
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var entry models.QueryHistory
				if err := json.Unmarshal(val, &entry); err != nil {
					return err
				}
				history = append(history, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return history, err
}

// Sessions lists the distinct session ids that have recorded history.
func (d *DB) Sessions() ([]string, error) {
	var sessions []string
	seen := make(map[string]bool)

	err := d.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte("history:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			rest := strings.TrimPrefix(key, "history:")
			if i := strings.LastIndex(rest, ":"); i > 0 {
				id := rest[:i]
				if !seen[id] {
					seen[id] = true
					sessions = append(sessions, id)
				}
			}
		}
		return nil
	})

	return sessions, err
}
