// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/hivestake/hive/hive"
	"github.com/hivestake/hive/staking/ledger"
	"github.com/hivestake/hive/staking/weights"
)

// FundRequest is the payload of POST /staking/fund.
type FundRequest struct {
	Caller hive.Address          `json:"caller"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// StakeRequest is the payload of POST /staking/stakes.
// The memo is free text carried through to the operation log, never stored.
type StakeRequest struct {
	Participant hive.Address          `json:"participant"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
	Memo        string                `json:"memo,omitempty"`
}

// Stake is the JSON view of a ledger entry.
type Stake struct {
	Participant    hive.Address          `json:"participant"`
	Amount         *math.HexOrDecimal256 `json:"amount"`
	Points         *math.HexOrDecimal256 `json:"points"`
	StartTime      uint64                `json:"startTime"`
	LockupDuration uint64                `json:"lockupDuration"`
	LockEnd        uint64                `json:"lockEnd"`
	Multiplier     uint8                 `json:"multiplier"`
	Claimed        bool                  `json:"claimed"`
}

func convertStake(id hive.Address, entry *ledger.Entry) *Stake {
	return &Stake{
		Participant:    id,
		Amount:         (*math.HexOrDecimal256)(entry.Amount),
		Points:         (*math.HexOrDecimal256)(entry.Points()),
		StartTime:      entry.StartTime,
		LockupDuration: entry.LockupDuration,
		LockEnd:        entry.LockEnd(),
		Multiplier:     entry.Multiplier,
		Claimed:        entry.Claimed,
	}
}

// PoolStatus is the JSON view of the reward pool.
type PoolStatus struct {
	Balance     *math.HexOrDecimal256 `json:"balance"`
	TotalPoints *math.HexOrDecimal256 `json:"totalPoints"`
}

// Reward reports a paid or previewed reward amount.
type Reward struct {
	Participant hive.Address          `json:"participant"`
	Reward      *math.HexOrDecimal256 `json:"reward"`
	Claimed     bool                  `json:"claimed"`
}

// Receipt reports the outcome of an unstake.
type Receipt struct {
	Participant hive.Address          `json:"participant"`
	Principal   *math.HexOrDecimal256 `json:"principal"`
}

// Params exposes the static ledger parameters.
type Params struct {
	Owner         hive.Address   `json:"owner"`
	FundingSource hive.Address   `json:"fundingSource"`
	LockupPeriod  uint64         `json:"lockupPeriod"`
	Tiers         []weights.Tier `json:"tiers"`
}
