// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/hivestake/hive/kv"
)

var (
	slotInitialized = []byte("pool-initialized")
	slotBalance     = []byte("pool-balance")
	slotPoints      = []byte("total-points")

	// ErrAlreadyInitialized is returned when Initialize is called twice.
	ErrAlreadyInitialized = errors.New("pool already initialized")
)

// Pool manages the distributable reward balance and the running total of
// weighted points across all active entries. Both counters are persistent
// and never go negative.
type Pool struct {
	balance *counter
	points  *counter
	store   kv.GetPutter
}

// New creates a pool backed by the given store.
func New(store kv.GetPutter) *Pool {
	return &Pool{
		balance: &counter{store, slotBalance},
		points:  &counter{store, slotPoints},
		store:   store,
	}
}

// Initialized reports whether the pool state has been created.
func (p *Pool) Initialized() (bool, error) {
	return p.store.Has(slotInitialized)
}

// Initialize creates the pool state with the given opening balance.
// It fails if the pool was initialized before.
func (p *Pool) Initialize(opening *big.Int) error {
	initialized, err := p.Initialized()
	if err != nil {
		return err
	}
	if initialized {
		return ErrAlreadyInitialized
	}
	if opening.Sign() < 0 {
		return errors.New("opening balance must not be negative")
	}

	if err := p.balance.set(opening); err != nil {
		return err
	}
	return p.store.Put(slotInitialized, []byte{1})
}

// Balance returns the distributable reward balance.
func (p *Pool) Balance() (*big.Int, error) {
	return p.balance.get()
}

// Credit increases the reward balance by amount.
func (p *Pool) Credit(amount *big.Int) error {
	if amount.Sign() <= 0 {
		return errors.New("credit amount must be positive")
	}
	return p.balance.add(amount)
}

// Debit decreases the reward balance by amount.
// A debit exceeding the balance is rejected before any mutation.
func (p *Pool) Debit(amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.New("debit amount must not be negative")
	}
	return errors.Wrap(p.balance.sub(amount), "debit")
}

// TotalPoints returns the sum of weighted points over all ledger entries.
func (p *Pool) TotalPoints() (*big.Int, error) {
	return p.points.get()
}

// AddPoints increases the weighted point total.
func (p *Pool) AddPoints(points *big.Int) error {
	return p.points.add(points)
}

// SubPoints decreases the weighted point total.
func (p *Pool) SubPoints(points *big.Int) error {
	return errors.Wrap(p.points.sub(points), "sub points")
}

// counter is a persistent non-negative big integer slot.
type counter struct {
	store kv.GetPutter
	slot  []byte
}

func (c *counter) get() (*big.Int, error) {
	data, err := c.store.Get(c.slot)
	if err != nil {
		if c.store.IsNotFound(err) {
			return new(big.Int), nil
		}
		return nil, err
	}
	return new(big.Int).SetBytes(data), nil
}

func (c *counter) set(v *big.Int) error {
	return c.store.Put(c.slot, v.Bytes())
}

func (c *counter) add(delta *big.Int) error {
	v, err := c.get()
	if err != nil {
		return err
	}
	return c.set(v.Add(v, delta))
}

func (c *counter) sub(delta *big.Int) error {
	v, err := c.get()
	if err != nil {
		return err
	}
	if v.Cmp(delta) < 0 {
		return errors.New("insufficient value")
	}
	return c.set(v.Sub(v, delta))
}
