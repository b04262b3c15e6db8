// Package lvldb backs the kv interfaces with goleveldb.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/hivestake/hive/kv"
)

var _ kv.GetPutCloser = (*LevelDB)(nil)

const minCacheSizeMB = 16

// Options tunes the underlying leveldb instance.
// Zero values fall back to defaults sized for a small ledger workload.
type Options struct {
	CacheSizeMB            int
	OpenFilesCacheCapacity int
}

func (o Options) withDefaults() Options {
	if o.CacheSizeMB < minCacheSizeMB {
		o.CacheSizeMB = minCacheSizeMB
	}
	if o.OpenFilesCacheCapacity < minCacheSizeMB {
		o.OpenFilesCacheCapacity = minCacheSizeMB
	}
	return o
}

// LevelDB is a kv store backed by goleveldb.
type LevelDB struct {
	db *leveldb.DB
}

// New opens the database at path, creating it when absent.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "open storage")
	}
	return open(stg, opts)
}

// NewMem creates a memory-backed instance, for solo mode and tests.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	opts = opts.withDefaults()
	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: opts.OpenFilesCacheCapacity,
		BlockCacheCapacity:     opts.CacheSizeMB / 2 * opt.MiB,
		WriteBuffer:            opts.CacheSizeMB / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &LevelDB{db: db}, nil
}

// IsNotFound checks whether the error returned by Get means key not found.
func (l *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

func (l *LevelDB) Get(key []byte) ([]byte, error) {
	return l.db.Get(key, nil)
}

func (l *LevelDB) Has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

func (l *LevelDB) Put(key, value []byte) error {
	return l.db.Put(key, value, nil)
}

func (l *LevelDB) Delete(key []byte) error {
	return l.db.Delete(key, nil)
}

// Close releases the instance; all later operations fail.
func (l *LevelDB) Close() error {
	return l.db.Close()
}

// NewIterator iterates keys within r in ascending order.
func (l *LevelDB) NewIterator(r kv.Range) kv.Iterator {
	return l.db.NewIterator(&util.Range{Start: r.From, Limit: r.To}, nil)
}

// NewBatch buffers write ops until Write.
func (l *LevelDB) NewBatch() kv.Batch {
	return &batch{db: l.db, b: new(leveldb.Batch)}
}

type batch struct {
	db *leveldb.DB
	b  *leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.b.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	return nil
}

func (b *batch) NewBatch() kv.Batch {
	return &batch{db: b.db, b: new(leveldb.Batch)}
}

func (b *batch) Len() int {
	return b.b.Len()
}

func (b *batch) Write() error {
	return b.db.Write(b.b, nil)
}
