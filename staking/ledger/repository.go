// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/hivestake/hive/hive"
	"github.com/hivestake/hive/kv"
)

var bucket = kv.Bucket("stake-entry-")

// Repository is the durable mapping from participant address to staking entry.
// Records are RLP encoded, keyed by the raw address bytes, no secondary indices.
type Repository struct {
	store kv.GetPutter
}

// NewRepository creates a repository backed by the given store.
func NewRepository(store kv.GetPutter) *Repository {
	return &Repository{store: bucket.NewGetPutter(store)}
}

// Get returns the entry for the given participant, or nil if absent.
func (r *Repository) Get(id hive.Address) (*Entry, error) {
	data, err := r.store.Get(id.Bytes())
	if err != nil {
		if r.store.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get entry")
	}

	var entry Entry
	if err := rlp.DecodeBytes(data, &entry); err != nil {
		return nil, errors.Wrap(err, "decode entry")
	}
	return &entry, nil
}

// Upsert stores the entry for the given participant.
// An entry with a non-positive amount is never stored.
func (r *Repository) Upsert(id hive.Address, entry *Entry) error {
	if entry.Amount == nil || entry.Amount.Sign() <= 0 {
		return errors.New("entry amount must be positive")
	}

	data, err := rlp.EncodeToBytes(entry)
	if err != nil {
		return errors.Wrap(err, "encode entry")
	}
	return r.store.Put(id.Bytes(), data)
}

// Remove deletes the entry for the given participant.
func (r *Repository) Remove(id hive.Address) error {
	return r.store.Delete(id.Bytes())
}

// ForEach iterates all entries in the ledger.
func (r *Repository) ForEach(fn func(hive.Address, *Entry) error) error {
	iter := r.store.NewIterator(kv.Range{})
	defer iter.Release()

	for iter.Next() {
		var entry Entry
		if err := rlp.DecodeBytes(iter.Value(), &entry); err != nil {
			return errors.Wrap(err, "decode entry")
		}
		if err := fn(hive.BytesToAddress(iter.Key()), &entry); err != nil {
			return err
		}
	}
	return iter.Error()
}
