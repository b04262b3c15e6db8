// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/hivestake/hive/hive"
	"github.com/hivestake/hive/kv"
	"github.com/hivestake/hive/log"
	"github.com/hivestake/hive/staking/ledger"
	"github.com/hivestake/hive/staking/pool"
	"github.com/hivestake/hive/staking/rewards"
	"github.com/hivestake/hive/staking/weights"
)

var logger = log.WithContext("pkg", "staking")

// Rejections reported to callers. Each guarantees no partial mutation occurred.
var (
	ErrUnauthorized      = errors.New("caller is not the pool owner")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrNoEntry           = errors.New("no stake found for participant")
	ErrLocked            = errors.New("lockup period has not elapsed")
	ErrAlreadyClaimed    = errors.New("rewards already claimed")
)

// Config carries the static parameters of the staking ledger.
type Config struct {
	Owner         hive.Address // the only account allowed to fund the pool
	FundingSource hive.Address // custody account rewards are funded from
	LockupPeriod  uint64       // seconds a stake stays locked
}

// Service orchestrates the staking ledger: funding, staking, claiming and
// unstaking against a single reward pool. All public operations run to
// completion before the next one begins; the host serializes calls.
type Service struct {
	config  Config
	ledger  *ledger.Repository
	pool    *pool.Pool
	calc    *rewards.Calculator
	gateway Gateway
}

// New creates a staking service on top of the given store and gateway.
func New(store kv.GetPutter, gateway Gateway, config Config) *Service {
	if config.LockupPeriod == 0 {
		config.LockupPeriod = hive.DefaultLockupPeriod
	}
	p := pool.New(store)
	return &Service{
		config:  config,
		ledger:  ledger.NewRepository(store),
		pool:    p,
		calc:    rewards.New(p),
		gateway: gateway,
	}
}

// Initialize creates the pool state with the configured opening balance.
// It runs once at system creation; re-initialization is rejected.
func (s *Service) Initialize(opening *big.Int) error {
	if err := s.pool.Initialize(opening); err != nil {
		return err
	}
	logger.Info("pool initialized",
		"owner", s.config.Owner,
		"opening", opening,
		"lockup", s.config.LockupPeriod,
	)
	return nil
}

// Initialized reports whether Initialize has run.
func (s *Service) Initialized() (bool, error) {
	return s.pool.Initialized()
}

//
// Getters - no state change
//

// LockupPeriod returns the configured lockup in seconds.
func (s *Service) LockupPeriod() uint64 {
	return s.config.LockupPeriod
}

// Owner returns the pool owner address.
func (s *Service) Owner() hive.Address {
	return s.config.Owner
}

// FundingSource returns the custody account the pool is funded from.
func (s *Service) FundingSource() hive.Address {
	return s.config.FundingSource
}

// PoolBalance returns the distributable reward balance.
func (s *Service) PoolBalance() (*big.Int, error) {
	return s.pool.Balance()
}

// TotalPoints returns the running total of weighted points.
func (s *Service) TotalPoints() (*big.Int, error) {
	return s.pool.TotalPoints()
}

// EntryOf returns the participant's entry, or nil if absent.
func (s *Service) EntryOf(id hive.Address) (*ledger.Entry, error) {
	return s.ledger.Get(id)
}

// StakedAmount returns the participant's staked principal, zero if absent.
func (s *Service) StakedAmount(id hive.Address) (*big.Int, error) {
	entry, err := s.ledger.Get(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return new(big.Int), nil
	}
	return entry.Amount, nil
}

// HasClaimed reports whether the participant claimed rewards this lock cycle.
func (s *Service) HasClaimed(id hive.Address) (bool, error) {
	entry, err := s.ledger.Get(id)
	if err != nil {
		return false, err
	}
	return entry != nil && entry.Claimed, nil
}

// PreviewReward returns the participant's computed share of the pool, or zero
// while the lockup has not elapsed. It never mutates state.
func (s *Service) PreviewReward(id hive.Address, now uint64) (*big.Int, error) {
	entry, err := s.ledger.Get(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNoEntry
	}
	return s.calc.Preview(entry, now)
}

//
// Setters - state change
//

// FundPool initiates a two-phase credit of the reward pool. The transfer from
// the funding source is initiated immediately; the balance increases only when
// the gateway confirms success, via done(nil). On transfer failure the balance
// is left unchanged and done receives the cause; the caller may re-issue.
// A non-nil return means the request was rejected and done will not run.
func (s *Service) FundPool(caller hive.Address, amount *big.Int, done func(error)) error {
	logger.Debug("funding pool", "caller", caller, "amount", amount)

	if caller != s.config.Owner {
		logger.Info("fund pool rejected", "caller", caller, "error", ErrUnauthorized)
		return ErrUnauthorized
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrNonPositiveAmount
	}

	// No state is mutated before the transfer completes, so a failed or
	// never-completing transfer needs no rollback.
	funded := new(big.Int).Set(amount)
	s.gateway.Deposit(s.config.FundingSource, funded, func(err error) {
		if err != nil {
			logger.Warn("funding transfer failed", "amount", funded, "error", err)
			metricOpCount().AddWithLabel(1, map[string]string{"op": "fund", "outcome": "failed"})
			done(err)
			return
		}
		if err := s.pool.Credit(funded); err != nil {
			done(err)
			return
		}
		logger.Info("funded pool", "amount", funded)
		metricOpCount().AddWithLabel(1, map[string]string{"op": "fund", "outcome": "ok"})
		done(nil)
	})
	return nil
}

// Stake locks amount for the participant. The first stake creates an entry
// with a weight derived from the configured lockup; subsequent stakes merge
// into the existing entry and restart the lock for the entire accumulated
// balance, not just the increment. Weighted point totals move in step.
func (s *Service) Stake(id hive.Address, amount *big.Int, now uint64) error {
	logger.Debug("staking", "participant", id, "amount", amount)

	if amount == nil || amount.Sign() <= 0 {
		return ErrNonPositiveAmount
	}

	entry, err := s.ledger.Get(id)
	if err != nil {
		return err
	}
	oldPoints := new(big.Int)
	if entry == nil {
		entry = &ledger.Entry{
			Amount:         new(big.Int).Set(amount),
			StartTime:      now,
			LockupDuration: s.config.LockupPeriod,
			Multiplier:     weights.ForLockup(s.config.LockupPeriod),
		}
	} else {
		// merging restarts the lock clock for the whole balance; a new
		// cycle also resets the claimed flag
		oldPoints = entry.Points()
		entry.Amount = new(big.Int).Add(entry.Amount, amount)
		entry.StartTime = now
		entry.Claimed = false
	}

	if err := s.ledger.Upsert(id, entry); err != nil {
		return err
	}
	// The point total moves by the recomputed entry points, not by the
	// weighted increment: Weigh floors, so Weigh(a+b) != Weigh(a)+Weigh(b)
	// and the running total must always equal the sum over live entries.
	delta := new(big.Int).Sub(entry.Points(), oldPoints)
	if err := s.pool.AddPoints(delta); err != nil {
		return err
	}

	logger.Info("staked", "participant", id, "amount", amount, "total", entry.Amount)
	metricOpCount().AddWithLabel(1, map[string]string{"op": "stake", "outcome": "ok"})
	return nil
}

// Claim pays the participant's proportional share of the reward pool. It is
// allowed only once per lock cycle and only after the lockup elapses; the
// entry and its principal stay in place. The pool is debited by the paid
// reward, so rewards are consumed rather than shared repeatedly.
func (s *Service) Claim(id hive.Address, now uint64) (*big.Int, error) {
	logger.Debug("claiming rewards", "participant", id)

	entry, err := s.ledger.Get(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNoEntry
	}
	if !entry.Unlocked(now) {
		logger.Info("claim rejected", "participant", id, "error", ErrLocked)
		return nil, ErrLocked
	}
	if entry.Claimed {
		return nil, ErrAlreadyClaimed
	}

	reward, err := s.calc.Reward(entry)
	if err != nil {
		return nil, err
	}

	// the transfer settles first; ledger state mutates only on confirmed
	// success, so a failed payout leaves everything untouched
	if reward.Sign() > 0 {
		if err := s.gateway.Payout(id, reward); err != nil {
			logger.Warn("reward payout failed", "participant", id, "error", err)
			return nil, err
		}
		if err := s.pool.Debit(reward); err != nil {
			return nil, err
		}
	}

	entry.Claimed = true
	if err := s.ledger.Upsert(id, entry); err != nil {
		return nil, err
	}

	logger.Info("claimed rewards", "participant", id, "reward", reward)
	metricOpCount().AddWithLabel(1, map[string]string{"op": "claim", "outcome": "ok"})
	return reward, nil
}

// Unstake returns the participant's full principal and removes the entry,
// decreasing the weighted point total by the entry's points. It is allowed
// only after the lockup elapses. Claim and unstake are both available
// post-lock; claim-then-unstake is a valid sequence.
func (s *Service) Unstake(id hive.Address, now uint64) (*big.Int, error) {
	logger.Debug("unstaking", "participant", id)

	entry, err := s.ledger.Get(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNoEntry
	}
	if !entry.Unlocked(now) {
		logger.Info("unstake rejected", "participant", id, "error", ErrLocked)
		return nil, ErrLocked
	}

	principal := new(big.Int).Set(entry.Amount)
	if err := s.gateway.Payout(id, principal); err != nil {
		logger.Warn("principal payout failed", "participant", id, "error", err)
		return nil, err
	}

	if err := s.pool.SubPoints(entry.Points()); err != nil {
		return nil, err
	}
	if err := s.ledger.Remove(id); err != nil {
		return nil, err
	}

	logger.Info("unstaked", "participant", id, "principal", principal)
	metricOpCount().AddWithLabel(1, map[string]string{"op": "unstake", "outcome": "ok"})
	return principal, nil
}
