// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/hivestake/hive/hive"
)

// Gateway executes the actual movement of value between participants and the
// pool's backing custody. The ledger never assumes a particular transport;
// implementations may settle against a token contract, a payment rail or an
// in-memory simulator.
type Gateway interface {
	// Deposit initiates an inbound transfer from the funding source into
	// custody. It may complete asynchronously: done is invoked exactly once,
	// after the transfer outcome is known, with nil on success. No ledger or
	// pool mutation happens between initiation and completion; the host is
	// expected to serialize calls.
	Deposit(from hive.Address, amount *big.Int, done func(error))

	// Payout transfers value from custody to the participant and returns
	// once the outcome is known. A nil return means the value has been
	// delivered; the caller mutates ledger state only after that.
	Payout(to hive.Address, amount *big.Int) error
}
