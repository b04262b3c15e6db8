// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis defines the opening state of a staking ledger instance.
package genesis

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hivestake/hive/hive"
)

// Genesis is the opening configuration of a staking ledger: who owns the
// pool, where funding is drawn from, and the pool's starting balance.
type Genesis struct {
	Owner          hive.Address `yaml:"owner"`
	FundingSource  hive.Address `yaml:"fundingSource"`
	OpeningBalance *big.Int     `yaml:"-"`
	LockupPeriod   uint64       `yaml:"lockupPeriod"`

	// yaml carries big integers as decimal strings
	RawOpeningBalance string `yaml:"openingBalance"`
}

// Load reads and validates a genesis file.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var gen Genesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "parse genesis file")
	}
	if err := gen.finalize(); err != nil {
		return nil, err
	}
	return &gen, nil
}

func (g *Genesis) finalize() error {
	if g.Owner.IsZero() {
		return errors.New("genesis: owner must be set")
	}
	if g.FundingSource.IsZero() {
		g.FundingSource = g.Owner
	}
	if g.LockupPeriod == 0 {
		g.LockupPeriod = hive.DefaultLockupPeriod
	}

	if g.RawOpeningBalance == "" {
		g.OpeningBalance = new(big.Int)
		return nil
	}
	balance, ok := new(big.Int).SetString(g.RawOpeningBalance, 10)
	if !ok {
		return errors.Errorf("genesis: invalid opening balance %q", g.RawOpeningBalance)
	}
	if balance.Sign() < 0 {
		return errors.New("genesis: opening balance must not be negative")
	}
	g.OpeningBalance = balance
	return nil
}

// NewDevnet returns the fixed genesis used by solo mode.
func NewDevnet() *Genesis {
	return &Genesis{
		Owner:          hive.MustParseAddress("0xf077b491b355e64048ce21e3a6fc4751eeea77fa"),
		FundingSource:  hive.MustParseAddress("0x435933c8064b4ae76be665428e0307ef2ccfbd68"),
		OpeningBalance: new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1e18)),
		LockupPeriod:   hive.DefaultLockupPeriod,
	}
}
