// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hive

// Constants of the staking ledger.
const (
	// SecondsPerMonth is the length of a lockup month, 30 days.
	SecondsPerMonth = uint64(30 * 24 * 60 * 60)

	// DefaultLockupPeriod is the lockup applied when genesis does not set one.
	DefaultLockupPeriod = SecondsPerMonth
)
