// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gateway

import (
	"math/big"

	"github.com/hivestake/hive/hive"
	"github.com/hivestake/hive/log"
)

var logger = log.WithContext("pkg", "gateway")

// Solo is the dev-mode transfer gateway: every transfer settles immediately
// and successfully. Useful for local runs and tests; value never actually
// moves anywhere.
type Solo struct{}

// NewSolo creates a solo gateway.
func NewSolo() *Solo {
	return &Solo{}
}

// Deposit settles the inbound transfer inline.
func (s *Solo) Deposit(from hive.Address, amount *big.Int, done func(error)) {
	logger.Debug("solo deposit settled", "from", from, "amount", amount)
	done(nil)
}

// Payout settles the outbound transfer inline.
func (s *Solo) Payout(to hive.Address, amount *big.Int) error {
	logger.Debug("solo payout settled", "to", to, "amount", amount)
	return nil
}
