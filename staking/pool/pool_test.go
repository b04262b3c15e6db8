// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hivestake/hive/lvldb"
)

func newPool(t *testing.T) *Pool {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func TestPoolInitialize(t *testing.T) {
	p := newPool(t)

	initialized, err := p.Initialized()
	require.NoError(t, err)
	assert.False(t, initialized)

	require.NoError(t, p.Initialize(big.NewInt(1_000_000)))

	initialized, err = p.Initialized()
	require.NoError(t, err)
	assert.True(t, initialized)

	balance, err := p.Balance()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000), balance)

	// second initialization is rejected
	err = p.Initialize(big.NewInt(5))
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestPoolCreditDebit(t *testing.T) {
	p := newPool(t)
	require.NoError(t, p.Initialize(big.NewInt(100)))

	require.NoError(t, p.Credit(big.NewInt(50)))
	balance, err := p.Balance()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(150), balance)

	assert.Error(t, p.Credit(big.NewInt(0)))
	assert.Error(t, p.Credit(big.NewInt(-1)))

	require.NoError(t, p.Debit(big.NewInt(150)))
	balance, err = p.Balance()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0).Sign(), balance.Sign())

	// the balance never goes negative, over-debit rejected before mutation
	assert.Error(t, p.Debit(big.NewInt(1)))
	balance, err = p.Balance()
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Sign())
}

func TestPoolPoints(t *testing.T) {
	p := newPool(t)

	points, err := p.TotalPoints()
	require.NoError(t, err)
	assert.Equal(t, 0, points.Sign())

	require.NoError(t, p.AddPoints(big.NewInt(500_000)))
	require.NoError(t, p.AddPoints(big.NewInt(250_000)))

	points, err = p.TotalPoints()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(750_000), points)

	require.NoError(t, p.SubPoints(big.NewInt(750_000)))
	assert.Error(t, p.SubPoints(big.NewInt(1)), "points underflow must be rejected")
}
