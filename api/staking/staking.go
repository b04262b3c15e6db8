// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking exposes the staking ledger over REST.
package staking

import (
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/hivestake/hive/api/restutil"
	"github.com/hivestake/hive/hive"
	"github.com/hivestake/hive/log"
	"github.com/hivestake/hive/staking"
	"github.com/hivestake/hive/staking/weights"
)

var logger = log.WithContext("pkg", "api-staking")

type Staking struct {
	svc *staking.Service
	now func() uint64
}

func New(svc *staking.Service) *Staking {
	return &Staking{
		svc: svc,
		now: func() uint64 { return uint64(time.Now().Unix()) },
	}
}

// NewWithClock is used by tests to pin the clock.
func NewWithClock(svc *staking.Service, now func() uint64) *Staking {
	return &Staking{svc: svc, now: now}
}

func parseAddressParam(req *http.Request, name string) (hive.Address, error) {
	addr, err := hive.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return hive.Address{}, restutil.BadRequest(errors.WithMessage(err, name))
	}
	return *addr, nil
}

func parseAmount(amount *math.HexOrDecimal256) (*big.Int, error) {
	if amount == nil {
		return nil, restutil.BadRequest(errors.New("amount: missing"))
	}
	return (*big.Int)(amount), nil
}

// rejectionStatus maps ledger rejections onto http statuses; anything
// unrecognized stays a 500.
func rejectionStatus(err error) error {
	switch {
	case errors.Is(err, staking.ErrUnauthorized):
		return restutil.Forbidden(err)
	case errors.Is(err, staking.ErrNoEntry):
		return restutil.NotFound(err)
	case errors.Is(err, staking.ErrNonPositiveAmount),
		errors.Is(err, staking.ErrLocked),
		errors.Is(err, staking.ErrAlreadyClaimed):
		return restutil.BadRequest(err)
	default:
		return err
	}
}

func (s *Staking) handleFund(w http.ResponseWriter, req *http.Request) error {
	var fund FundRequest
	if err := restutil.ParseJSON(req.Body, &fund); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := parseAmount(fund.Amount)
	if err != nil {
		return err
	}

	// the transfer is asynchronous; hold the request open until it settles
	settled := make(chan error, 1)
	if err := s.svc.FundPool(fund.Caller, amount, func(err error) {
		settled <- err
	}); err != nil {
		return rejectionStatus(err)
	}
	if err := <-settled; err != nil {
		return restutil.HTTPError(err, http.StatusBadGateway)
	}

	balance, err := s.svc.PoolBalance()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, &PoolStatus{
		Balance: (*math.HexOrDecimal256)(balance),
	})
}

func (s *Staking) handleStake(w http.ResponseWriter, req *http.Request) error {
	var stake StakeRequest
	if err := restutil.ParseJSON(req.Body, &stake); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := parseAmount(stake.Amount)
	if err != nil {
		return err
	}

	if err := s.svc.Stake(stake.Participant, amount, s.now()); err != nil {
		return rejectionStatus(err)
	}
	if stake.Memo != "" {
		logger.Info("stake memo", "participant", stake.Participant, "memo", stake.Memo)
	}

	entry, err := s.svc.EntryOf(stake.Participant)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertStake(stake.Participant, entry))
}

func (s *Staking) handleClaim(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddressParam(req, "address")
	if err != nil {
		return err
	}

	reward, err := s.svc.Claim(addr, s.now())
	if err != nil {
		return rejectionStatus(err)
	}
	return restutil.WriteJSON(w, &Reward{
		Participant: addr,
		Reward:      (*math.HexOrDecimal256)(reward),
		Claimed:     true,
	})
}

func (s *Staking) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddressParam(req, "address")
	if err != nil {
		return err
	}

	principal, err := s.svc.Unstake(addr, s.now())
	if err != nil {
		return rejectionStatus(err)
	}
	return restutil.WriteJSON(w, &Receipt{
		Participant: addr,
		Principal:   (*math.HexOrDecimal256)(principal),
	})
}

func (s *Staking) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddressParam(req, "address")
	if err != nil {
		return err
	}

	entry, err := s.svc.EntryOf(addr)
	if err != nil {
		return err
	}
	if entry == nil {
		return restutil.NotFound(staking.ErrNoEntry)
	}
	return restutil.WriteJSON(w, convertStake(addr, entry))
}

func (s *Staking) handleGetReward(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddressParam(req, "address")
	if err != nil {
		return err
	}

	reward, err := s.svc.PreviewReward(addr, s.now())
	if err != nil {
		return rejectionStatus(err)
	}
	claimed, err := s.svc.HasClaimed(addr)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, &Reward{
		Participant: addr,
		Reward:      (*math.HexOrDecimal256)(reward),
		Claimed:     claimed,
	})
}

func (s *Staking) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	balance, err := s.svc.PoolBalance()
	if err != nil {
		return err
	}
	points, err := s.svc.TotalPoints()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, &PoolStatus{
		Balance:     (*math.HexOrDecimal256)(balance),
		TotalPoints: (*math.HexOrDecimal256)(points),
	})
}

func (s *Staking) handleGetParams(w http.ResponseWriter, _ *http.Request) error {
	return restutil.WriteJSON(w, &Params{
		Owner:         s.svc.Owner(),
		FundingSource: s.svc.FundingSource(),
		LockupPeriod:  s.svc.LockupPeriod(),
		Tiers:         weights.Tiers(),
	})
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/fund").
		Methods(http.MethodPost).
		Name("staking_fund_pool").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleFund))
	sub.Path("/stakes").
		Methods(http.MethodPost).
		Name("staking_post_stake").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleStake))
	sub.Path("/stakes/{address}/claim").
		Methods(http.MethodPost).
		Name("staking_claim_reward").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleClaim))
	sub.Path("/stakes/{address}/unstake").
		Methods(http.MethodPost).
		Name("staking_unstake").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleUnstake))
	sub.Path("/stakes/{address}").
		Methods(http.MethodGet).
		Name("staking_get_stake").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetStake))
	sub.Path("/stakes/{address}/reward").
		Methods(http.MethodGet).
		Name("staking_get_reward").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetReward))
	sub.Path("/pool").
		Methods(http.MethodGet).
		Name("staking_get_pool").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetPool))
	sub.Path("/params").
		Methods(http.MethodGet).
		Name("staking_get_params").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetParams))
}
