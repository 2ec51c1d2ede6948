// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

// Package badgerstore implements store.Store on BadgerDB.
//
// The three collections share one keyspace under distinct prefixes:
//
//	properties_list:<id>    models.Listing
//	properties_info:<id>    models.Details
//	properties_images:<id>  []models.Image
//
// Ids are zero-padded to 20 digits so prefix iteration yields ascending id
// order. Values are canonical JSON encoded with goccy/go-json.
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/propertyrank/internal/logging"
	"github.com/tomtom215/propertyrank/internal/models"
	"github.com/tomtom215/propertyrank/internal/store"
)

// DriverName identifies this backend in configuration and metrics.
const DriverName = "badger"

const defaultCloseTimeout = 10 * time.Second

// Config configures the BadgerDB store.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps all data in memory. Used by tests.
	InMemory bool
	// SyncWrites fsyncs every commit.
	SyncWrites bool
	// CloseTimeout bounds Close. Zero means 10 seconds.
	CloseTimeout time.Duration
}

// Store is a BadgerDB-backed store.Store.
type Store struct {
	db  *badger.DB
	cfg Config

	mu     sync.RWMutex
	closed bool
}

var _ store.Store = (*Store)(nil)

// Open opens (or creates) the database described by cfg.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badgerstore: path is required unless in-memory")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Listing store opened")

	return &Store{db: db, cfg: cfg}, nil
}

// Driver implements store.Store.
func (s *Store) Driver() string { return DriverName }

func key(collection string, id int64) []byte {
	return []byte(fmt.Sprintf("%s:%020d", collection, id))
}

func prefix(collection string) []byte {
	return []byte(collection + ":")
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return store.ErrClosed
	}
	return nil
}

// iterate decodes every value under the collection prefix into a fresh T.
func iterate[T any](ctx context.Context, txn *badger.Txn, collection string, fn func(T)) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	it := txn.NewIterator(opts)
	defer it.Close()

	p := prefix(collection)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		item := it.Item()
		var v T
		err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &v)
		})
		if err != nil {
			logging.Warn().Err(err).Str("key", string(item.Key())).Msg("Listing store failed to unmarshal document")
			continue
		}
		fn(v)
	}
	return nil
}

// get decodes the value at k into v. Returns false when k is absent.
func get(txn *badger.Txn, k []byte, v any) (bool, error) {
	item, err := txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// AllListings implements store.Store.
func (s *Store) AllListings(ctx context.Context) ([]models.Listing, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	listings := []models.Listing{}
	err := s.db.View(func(txn *badger.Txn) error {
		return iterate(ctx, txn, store.CollectionListings, func(l models.Listing) {
			listings = append(listings, l)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return listings, nil
}

// GetListing implements store.Store.
func (s *Store) GetListing(ctx context.Context, id int64) (models.Listing, error) {
	if err := s.checkOpen(); err != nil {
		return models.Listing{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.Listing{}, err
	}

	var l models.Listing
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = get(txn, key(store.CollectionListings, id), &l)
		return err
	})
	if err != nil {
		return models.Listing{}, fmt.Errorf("get listing %d: %w", id, err)
	}
	if !found {
		return models.Listing{}, fmt.Errorf("%w: id %d", store.ErrNotFound, id)
	}
	return l, nil
}

// GetDetails implements store.Store.
func (s *Store) GetDetails(ctx context.Context, id int64) (*models.Details, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var d models.Details
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = get(txn, key(store.CollectionDetails, id), &d)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get details %d: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &d, nil
}

// GetImages implements store.Store.
func (s *Store) GetImages(ctx context.Context, id int64) ([]models.Image, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	images := []models.Image{}
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := get(txn, key(store.CollectionImages, id), &images)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get images %d: %w", id, err)
	}
	return images, nil
}

// AllProperties implements store.Store. Listings and details are read from
// one consistent snapshot.
func (s *Store) AllProperties(ctx context.Context) ([]models.Property, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	var listings []models.Listing
	details := make(map[int64]models.Details)
	err := s.db.View(func(txn *badger.Txn) error {
		if err := iterate(ctx, txn, store.CollectionListings, func(l models.Listing) {
			listings = append(listings, l)
		}); err != nil {
			return err
		}
		return iterate(ctx, txn, store.CollectionDetails, func(d models.Details) {
			details[d.ID] = d
		})
	})
	if err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return store.Join(listings, details), nil
}

// Search implements store.Store.
func (s *Store) Search(ctx context.Context, f store.Filter) ([]models.Property, error) {
	all, err := s.AllProperties(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

// Distinct implements store.Store.
func (s *Store) Distinct(ctx context.Context, field string) ([]string, error) {
	listings, err := s.AllListings(ctx)
	if err != nil {
		return nil, err
	}
	return store.DistinctValues(listings, field)
}

// Counts implements store.Store.
func (s *Store) Counts(ctx context.Context) (store.Counts, error) {
	if err := s.checkOpen(); err != nil {
		return store.Counts{}, err
	}

	var c store.Counts
	err := s.db.View(func(txn *badger.Txn) error {
		c.Listings = countKeys(txn, store.CollectionListings)
		c.Details = countKeys(txn, store.CollectionDetails)
		return iterate(ctx, txn, store.CollectionImages, func(images []models.Image) {
			c.Images += len(images)
		})
	})
	if err != nil {
		return store.Counts{}, fmt.Errorf("count documents: %w", err)
	}
	return c, nil
}

func countKeys(txn *badger.Txn, collection string) int {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	n := 0
	p := prefix(collection)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		n++
	}
	return n
}

// Ping implements store.Store.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return store.ErrUnavailable
	}
	return ctx.Err()
}

// UpsertListings implements store.Store.
func (s *Store) UpsertListings(ctx context.Context, listings []models.Listing) error {
	return s.upsert(ctx, len(listings), func(i int) ([]byte, any) {
		return key(store.CollectionListings, listings[i].ID), listings[i]
	})
}

// UpsertDetails implements store.Store.
func (s *Store) UpsertDetails(ctx context.Context, details []models.Details) error {
	return s.upsert(ctx, len(details), func(i int) ([]byte, any) {
		return key(store.CollectionDetails, details[i].ID), details[i]
	})
}

// UpsertImages implements store.Store.
func (s *Store) UpsertImages(ctx context.Context, images []models.Image) error {
	grouped := make(map[int64][]models.Image)
	for _, img := range images {
		grouped[img.ID] = append(grouped[img.ID], img)
	}
	ids := make([]int64, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return s.upsert(ctx, len(ids), func(i int) ([]byte, any) {
		return key(store.CollectionImages, ids[i]), grouped[ids[i]]
	})
}

func (s *Store) upsert(ctx context.Context, n int, doc func(i int) ([]byte, any)) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			k, v := doc(i)
			data, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("marshal %s: %w", k, err)
			}
			if err := txn.SetEntry(badger.NewEntry(k, data)); err != nil {
				return fmt.Errorf("set %s: %w", k, err)
			}
		}
		return nil
	})
}

// Close closes the database, giving up after the configured timeout.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	timeout := s.cfg.CloseTimeout
	if timeout == 0 {
		timeout = defaultCloseTimeout
	}
	s.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- s.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close BadgerDB: %w", err)
		}
		logging.Info().Msg("Listing store closed")
		return nil
	case <-time.After(timeout):
		logging.Warn().Dur("timeout", timeout).Msg("BadgerDB close timed out")
		return fmt.Errorf("badgerdb close timeout after %v", timeout)
	}
}
