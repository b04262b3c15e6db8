// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/hivestake/hive/staking/weights"
)

// Entry is one participant's staking record.
// An entry present in the ledger always has Amount > 0.
type Entry struct {
	Amount         *big.Int // staked principal
	StartTime      uint64   // unix seconds the current lock began
	LockupDuration uint64   // seconds the principal must remain locked
	Multiplier     uint8    // weight multiplier in percent, assigned at stake time
	Claimed        bool     // whether a reward was paid for the current lock cycle
}

// Points returns the entry's weighted points, amount * multiplier / 100.
func (e *Entry) Points() *big.Int {
	return weights.Weigh(e.Amount, e.Multiplier)
}

// LockEnd returns the timestamp at which the lockup elapses.
func (e *Entry) LockEnd() uint64 {
	return e.StartTime + e.LockupDuration
}

// Unlocked returns whether the lockup period has elapsed at the given time.
func (e *Entry) Unlocked(now uint64) bool {
	return now >= e.LockEnd()
}
