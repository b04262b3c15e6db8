// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// Bucket provides a logical key space over a kv store.
type Bucket string

// NewGetPutter creates a bucketed view of the source store.
func (b Bucket) NewGetPutter(src GetPutter) GetPutter {
	return &bucket{string(b), src}
}

type bucket struct {
	prefix string
	src    GetPutter
}

func (b *bucket) makeKey(key []byte) []byte {
	return append([]byte(b.prefix), key...)
}

func (b *bucket) Get(key []byte) ([]byte, error) {
	return b.src.Get(b.makeKey(key))
}

func (b *bucket) Has(key []byte) (bool, error) {
	return b.src.Has(b.makeKey(key))
}

func (b *bucket) IsNotFound(err error) bool {
	return b.src.IsNotFound(err)
}

func (b *bucket) Put(key, value []byte) error {
	return b.src.Put(b.makeKey(key), value)
}

func (b *bucket) Delete(key []byte) error {
	return b.src.Delete(b.makeKey(key))
}

func (b *bucket) NewBatch() Batch {
	return &bucketBatch{b.makeKey, b.src.NewBatch()}
}

func (b *bucket) NewIterator(r Range) Iterator {
	if len(r.To) == 0 {
		r.To = util.BytesPrefix([]byte(b.prefix)).Limit
	} else {
		r.To = b.makeKey(r.To)
	}
	r.From = b.makeKey(r.From)

	return &bucketIter{b.src.NewIterator(r), len(b.prefix)}
}

type bucketBatch struct {
	makeKey func([]byte) []byte
	batch   Batch
}

func (bb *bucketBatch) Put(key, value []byte) error { return bb.batch.Put(bb.makeKey(key), value) }
func (bb *bucketBatch) Delete(key []byte) error     { return bb.batch.Delete(bb.makeKey(key)) }
func (bb *bucketBatch) NewBatch() Batch             { return &bucketBatch{bb.makeKey, bb.batch.NewBatch()} }
func (bb *bucketBatch) Len() int                    { return bb.batch.Len() }
func (bb *bucketBatch) Write() error                { return bb.batch.Write() }

type bucketIter struct {
	Iterator
	prefixLen int
}

// Key returns the key with the bucket prefix stripped.
func (i *bucketIter) Key() []byte {
	return i.Iterator.Key()[i.prefixLen:]
}
