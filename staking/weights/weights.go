// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package weights

import (
	"math/big"

	"github.com/hivestake/hive/hive"
)

// Multipliers by lockup tier, expressed in percent (100 == 1.0x).
const (
	TierShort   = uint8(100) // 1-3 months
	TierMedium  = uint8(150) // 4-6 months
	TierLong    = uint8(200) // 7-9 months
	TierLongest = uint8(250) // 10+ months
)

// Tier pairs a minimum lock length in whole months with its multiplier.
type Tier struct {
	MinMonths  uint32 `json:"minMonths"`
	Multiplier uint8  `json:"multiplier"`
}

// Tiers returns the tier table in ascending order of lock length.
func Tiers() []Tier {
	return []Tier{
		{0, TierShort},
		{4, TierMedium},
		{7, TierLong},
		{10, TierLongest},
	}
}

// ForMonths maps a lock length in whole months to a weight multiplier.
// Pure and total: a lock shorter than a month falls into the lowest tier.
func ForMonths(months uint32) uint8 {
	switch {
	case months <= 3:
		return TierShort
	case months <= 6:
		return TierMedium
	case months <= 9:
		return TierLong
	default:
		return TierLongest
	}
}

// ForLockup maps a lockup duration in seconds to a weight multiplier,
// via the whole number of months it spans.
func ForLockup(lockup uint64) uint8 {
	return ForMonths(uint32(lockup / hive.SecondsPerMonth))
}

// Weigh returns the weighted points of a stake: amount * multiplier / 100,
// floor division. Points are the unit of proportional reward entitlement.
func Weigh(amount *big.Int, multiplier uint8) *big.Int {
	points := new(big.Int).Mul(amount, big.NewInt(int64(multiplier)))
	return points.Quo(points, big.NewInt(100))
}
