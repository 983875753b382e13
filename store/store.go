// Package store persists collections in an embedded Badger key-value
// database.
//
// Each collection occupies a key range under its name:
//
//	c/<name>/index       text-encoded time index
//	c/<name>/s/00000000  series records, numbered in enumeration order
//
// Series values are encoded with the rawbin record format. Every stored
// value starts with a one-byte compression tag followed by the compressed
// payload, so reads never depend on the compression the store was opened
// with.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/arloliu/tsframe/compress"
	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/format"
	"github.com/arloliu/tsframe/frame"
	"github.com/arloliu/tsframe/internal/options"
	"github.com/arloliu/tsframe/rawbin"
	"github.com/arloliu/tsframe/timeindex"
)

type storeConfig struct {
	inMemory    bool
	syncWrites  bool
	compression format.CompressionType
}

// Option configures Open.
type Option = options.Option[*storeConfig]

// WithInMemory keeps the whole store in memory, with no files on disk. The
// path given to Open is ignored. Useful for tests and scratch pipelines.
func WithInMemory() Option {
	return options.NoError(func(cfg *storeConfig) {
		cfg.inMemory = true
	})
}

// WithSyncWrites makes every write batch fsync before returning. Slower,
// but crash-safe. The default is asynchronous writes.
func WithSyncWrites(sync bool) Option {
	return options.NoError(func(cfg *storeConfig) {
		cfg.syncWrites = sync
	})
}

// WithCompression sets the codec applied to newly written values. Existing
// values self-describe and stay readable regardless of this setting. The
// default is format.CompressionNone.
func WithCompression(compression format.CompressionType) Option {
	return options.NoError(func(cfg *storeConfig) {
		cfg.compression = compression
	})
}

// Store is a collection database backed by Badger. A Store is safe for
// concurrent use; writes to the same collection name must be serialized by
// the caller.
type Store struct {
	db          *badger.DB
	codec       compress.Codec
	compression format.CompressionType
}

// Open opens or creates a store at path.
//
// Parameters:
//   - path: database directory, ignored with WithInMemory
//   - opts: optional settings
//
// Returns:
//   - *Store: the opened store
//   - error: errs.ErrInvalidCompressionType, an option error, or a Badger
//     open error
func Open(path string, opts ...Option) (*Store, error) {
	cfg := storeConfig{compression: format.CompressionNone}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	bopts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(cfg.syncWrites)
	if cfg.inMemory {
		bopts = bopts.WithDir("").WithValueDir("").WithInMemory(true)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db, codec: codec, compression: cfg.compression}, nil
}

// Close closes the underlying database. The store must not be used
// afterwards.
func (s *Store) Close() error {
	return s.db.Close()
}

func indexKey(name string) []byte {
	return []byte("c/" + name + "/index")
}

func seriesKey(name string, i int) []byte {
	return fmt.Appendf(nil, "c/%s/s/%08d", name, i)
}

func seriesPrefix(name string) []byte {
	return []byte("c/" + name + "/s/")
}

func collectionPrefix(name string) []byte {
	return []byte("c/" + name + "/")
}

// encodeValue prefixes the compressed payload with its compression tag.
func (s *Store) encodeValue(payload []byte) ([]byte, error) {
	compressed, err := s.codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(compressed)+1)
	out = append(out, byte(s.compression))

	return append(out, compressed...), nil
}

// decodeValue strips the compression tag and decompresses the payload.
func decodeValue(value []byte) ([]byte, error) {
	if len(value) == 0 {
		return nil, fmt.Errorf("%w: empty stored value", errs.ErrBufferTooShort)
	}

	codec, err := compress.GetCodec(format.CompressionType(value[0]))
	if err != nil {
		return nil, err
	}

	return codec.Decompress(value[1:])
}

// Save evaluates the collection and writes it under name, replacing any
// collection previously stored there.
//
// Parameters:
//   - ctx: evaluation context
//   - name: collection name, must be non-empty
//   - c: collection to persist
//
// Returns:
//   - error: errs.ErrInvalidKey on an empty name, an evaluation error, or a
//     write error
func (s *Store) Save(ctx context.Context, name string, c *frame.Collection) error {
	if name == "" {
		return fmt.Errorf("%w: empty collection name", errs.ErrInvalidKey)
	}

	series, err := c.Collect(ctx)
	if err != nil {
		return err
	}

	// A previous save may have held more series than this one; drop the
	// whole range before writing.
	stale, err := s.keysWithPrefix(collectionPrefix(name))
	if err != nil {
		return err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, key := range stale {
		if err := wb.Delete(key); err != nil {
			return err
		}
	}

	idxValue, err := s.encodeValue([]byte(c.Index().Encode()))
	if err != nil {
		return err
	}
	if err := wb.Set(indexKey(name), idxValue); err != nil {
		return err
	}

	for i, ser := range series {
		payload, err := rawbin.EncodeAll([]rawbin.Record{{Key: ser.Key, Values: ser.Data}})
		if err != nil {
			return err
		}
		value, err := s.encodeValue(payload)
		if err != nil {
			return err
		}
		if err := wb.Set(seriesKey(name, i), value); err != nil {
			return err
		}
	}

	return wb.Flush()
}

// Load reads the collection stored under name, with default partitioning.
//
// Returns:
//   - *frame.Collection: the loaded collection
//   - error: errs.ErrCollectionNotFound when name is not stored, or a read
//     or decode error
func (s *Store) Load(name string) (*frame.Collection, error) {
	var (
		idx    timeindex.Index
		series []frame.Series
	)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", errs.ErrCollectionNotFound, name)
		}
		if err != nil {
			return err
		}

		idxValue, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		encoded, err := decodeValue(idxValue)
		if err != nil {
			return err
		}
		idx, err = timeindex.Parse(string(encoded))
		if err != nil {
			return err
		}

		iopts := badger.DefaultIteratorOptions
		iopts.Prefix = seriesPrefix(name)
		it := txn.NewIterator(iopts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			payload, err := decodeValue(value)
			if err != nil {
				return err
			}
			records, err := rawbin.DecodeAll(payload)
			if err != nil {
				return err
			}
			for _, rec := range records {
				series = append(series, frame.Series{Key: rec.Key, Data: rec.Values})
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return frame.New(idx, series)
}

// Has reports whether a collection is stored under name.
func (s *Store) Has(name string) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(indexKey(name))

		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// List returns the names of all stored collections in lexicographic order.
func (s *Store) List() ([]string, error) {
	var names []string

	err := s.db.View(func(txn *badger.Txn) error {
		iopts := badger.DefaultIteratorOptions
		iopts.PrefetchValues = false
		iopts.Prefix = []byte("c/")
		it := txn.NewIterator(iopts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := strings.TrimPrefix(string(it.Item().Key()), "c/")
			if name, ok := strings.CutSuffix(key, "/index"); ok {
				names = append(names, name)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

// Delete removes the collection stored under name.
//
// Returns:
//   - error: errs.ErrCollectionNotFound when name is not stored, or a write
//     error
func (s *Store) Delete(name string) error {
	keys, err := s.keysWithPrefix(collectionPrefix(name))
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return fmt.Errorf("%w: %s", errs.ErrCollectionNotFound, name)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return err
		}
	}

	return wb.Flush()
}

// keysWithPrefix snapshots all keys under prefix.
func (s *Store) keysWithPrefix(prefix []byte) ([][]byte, error) {
	var keys [][]byte

	err := s.db.View(func(txn *badger.Txn) error {
		iopts := badger.DefaultIteratorOptions
		iopts.PrefetchValues = false
		iopts.Prefix = prefix
		it := txn.NewIterator(iopts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return keys, nil
}
