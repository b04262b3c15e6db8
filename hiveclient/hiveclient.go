// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package hiveclient provides an HTTP client for the staking ledger API.
package hiveclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	stakingapi "github.com/hivestake/hive/api/staking"
	"github.com/hivestake/hive/hive"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNot200Status = errors.New("not 200 status code")
)

// Client talks to a staking ledger node over HTTP.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{url: url, c: c}
}

func (c *Client) httpGET(url string, v any) error {
	res, err := c.c.Get(url) //#nosec G107
	if err != nil {
		return errors.Wrap(err, "http get")
	}
	return decodeResponse(res, v)
}

func (c *Client) httpPOST(url string, body, v any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encode request")
	}
	res, err := c.c.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	if err != nil {
		return errors.Wrap(err, "http post")
	}
	return decodeResponse(res, v)
}

func decodeResponse(res *http.Response, v any) error {
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %d %s", ErrNot200Status, res.StatusCode, bytes.TrimSpace(payload))
	}
	return json.Unmarshal(payload, v)
}

// FundPool credits the reward pool; caller must be the pool owner.
func (c *Client) FundPool(caller hive.Address, amount *big.Int) (*stakingapi.PoolStatus, error) {
	var pool stakingapi.PoolStatus
	err := c.httpPOST(c.url+"/staking/fund", &stakingapi.FundRequest{
		Caller: caller,
		Amount: (*math.HexOrDecimal256)(amount),
	}, &pool)
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

// Stake locks amount for the participant.
func (c *Client) Stake(participant hive.Address, amount *big.Int) (*stakingapi.Stake, error) {
	var stake stakingapi.Stake
	err := c.httpPOST(c.url+"/staking/stakes", &stakingapi.StakeRequest{
		Participant: participant,
		Amount:      (*math.HexOrDecimal256)(amount),
	}, &stake)
	if err != nil {
		return nil, err
	}
	return &stake, nil
}

// Claim pays out the participant's share of the reward pool.
func (c *Client) Claim(participant hive.Address) (*stakingapi.Reward, error) {
	var reward stakingapi.Reward
	if err := c.httpPOST(c.url+"/staking/stakes/"+participant.String()+"/claim", nil, &reward); err != nil {
		return nil, err
	}
	return &reward, nil
}

// Unstake returns the participant's principal and closes the stake.
func (c *Client) Unstake(participant hive.Address) (*stakingapi.Receipt, error) {
	var receipt stakingapi.Receipt
	if err := c.httpPOST(c.url+"/staking/stakes/"+participant.String()+"/unstake", nil, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// GetStake retrieves the participant's stake, or ErrNotFound.
func (c *Client) GetStake(participant hive.Address) (*stakingapi.Stake, error) {
	var stake stakingapi.Stake
	if err := c.httpGET(c.url+"/staking/stakes/"+participant.String(), &stake); err != nil {
		return nil, err
	}
	return &stake, nil
}

// GetReward previews the participant's current reward share.
func (c *Client) GetReward(participant hive.Address) (*stakingapi.Reward, error) {
	var reward stakingapi.Reward
	if err := c.httpGET(c.url+"/staking/stakes/"+participant.String()+"/reward", &reward); err != nil {
		return nil, err
	}
	return &reward, nil
}

// GetPool retrieves the pool balance and point total.
func (c *Client) GetPool() (*stakingapi.PoolStatus, error) {
	var pool stakingapi.PoolStatus
	if err := c.httpGET(c.url+"/staking/pool", &pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

// GetParams retrieves the static ledger parameters.
func (c *Client) GetParams() (*stakingapi.Params, error) {
	var params stakingapi.Params
	if err := c.httpGET(c.url+"/staking/params", &params); err != nil {
		return nil, err
	}
	return &params, nil
}
