// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hivestake/hive/hive"
	"github.com/hivestake/hive/lvldb"
	"github.com/hivestake/hive/staking/weights"
)

func newRepo(t *testing.T) *Repository {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db)
}

func TestRepository(t *testing.T) {
	repo := newRepo(t)
	addr := hive.BytesToAddress([]byte("participant-1"))

	got, err := repo.Get(addr)
	require.NoError(t, err)
	assert.Nil(t, got)

	entry := &Entry{
		Amount:         big.NewInt(100_000),
		StartTime:      1000,
		LockupDuration: hive.SecondsPerMonth,
		Multiplier:     weights.TierShort,
	}
	require.NoError(t, repo.Upsert(addr, entry))

	got, err = repo.Get(addr)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry, got)

	require.NoError(t, repo.Remove(addr))
	got, err = repo.Get(addr)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepositoryRejectsEmptyEntry(t *testing.T) {
	repo := newRepo(t)
	addr := hive.BytesToAddress([]byte("participant-1"))

	err := repo.Upsert(addr, &Entry{Amount: big.NewInt(0)})
	assert.Error(t, err)

	err = repo.Upsert(addr, &Entry{Amount: big.NewInt(-5)})
	assert.Error(t, err)

	err = repo.Upsert(addr, &Entry{})
	assert.Error(t, err)
}

func TestRepositoryForEach(t *testing.T) {
	repo := newRepo(t)

	addrs := []hive.Address{
		hive.BytesToAddress([]byte("a")),
		hive.BytesToAddress([]byte("b")),
		hive.BytesToAddress([]byte("c")),
	}
	for i, addr := range addrs {
		require.NoError(t, repo.Upsert(addr, &Entry{
			Amount:     big.NewInt(int64(1000 * (i + 1))),
			Multiplier: weights.TierShort,
		}))
	}

	total := big.NewInt(0)
	count := 0
	require.NoError(t, repo.ForEach(func(_ hive.Address, e *Entry) error {
		total.Add(total, e.Amount)
		count++
		return nil
	}))
	assert.Equal(t, 3, count)
	assert.Equal(t, big.NewInt(6000), total)
}

func TestEntryLock(t *testing.T) {
	entry := &Entry{
		Amount:         big.NewInt(1),
		StartTime:      1000,
		LockupDuration: 500,
		Multiplier:     weights.TierShort,
	}

	assert.Equal(t, uint64(1500), entry.LockEnd())
	assert.False(t, entry.Unlocked(1499))
	assert.True(t, entry.Unlocked(1500))
	assert.True(t, entry.Unlocked(2000))
}

func TestEntryPoints(t *testing.T) {
	entry := &Entry{Amount: big.NewInt(100_000), Multiplier: weights.TierMedium}
	assert.Equal(t, big.NewInt(150_000), entry.Points())
}
