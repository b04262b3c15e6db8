// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/hivestake/hive/staking/ledger"
)

// Share returns the proportional slice of balance owned by points out of
// totalPoints: balance * points / totalPoints, floor division.
// A zero point total yields a zero share instead of a division fault.
// Integer arithmetic throughout keeps the result deterministic across
// platforms; floats are never acceptable for value computation.
func Share(balance, points, totalPoints *big.Int) *big.Int {
	if totalPoints.Sign() == 0 {
		return new(big.Int)
	}
	share := new(big.Int).Mul(balance, points)
	return share.Quo(share, totalPoints)
}

// PoolState exposes the pool counters the calculator needs.
type PoolState interface {
	Balance() (*big.Int, error)
	TotalPoints() (*big.Int, error)
}

// Calculator computes a participant's reward from the current pool state.
type Calculator struct {
	pool PoolState
}

// New creates a calculator reading the given pool.
func New(pool PoolState) *Calculator {
	return &Calculator{pool: pool}
}

// Reward returns the entry's proportional share of the reward pool.
func (c *Calculator) Reward(entry *ledger.Entry) (*big.Int, error) {
	balance, err := c.pool.Balance()
	if err != nil {
		return nil, err
	}
	totalPoints, err := c.pool.TotalPoints()
	if err != nil {
		return nil, err
	}
	return Share(balance, entry.Points(), totalPoints), nil
}

// Preview is the non-mutating view variant: it returns 0 while the entry's
// lockup has not elapsed, without raising an error.
func (c *Calculator) Preview(entry *ledger.Entry, now uint64) (*big.Int, error) {
	if !entry.Unlocked(now) {
		return new(big.Int), nil
	}
	return c.Reward(entry)
}
