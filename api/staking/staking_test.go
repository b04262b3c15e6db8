// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hivestake/hive/hive"
	"github.com/hivestake/hive/lvldb"
	"github.com/hivestake/hive/staking"
	"github.com/hivestake/hive/staking/gateway"
)

var (
	owner = hive.MustParseAddress("0xf077b491b355e64048ce21e3a6fc4751eeea77fa")
	alice = hive.MustParseAddress("0x435933c8064b4ae76be665428e0307ef2ccfbd68")

	ts  *httptest.Server
	now uint64
)

func startServer(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)

	svc := staking.New(db, gateway.NewSolo(), staking.Config{
		Owner:         owner,
		FundingSource: owner,
		LockupPeriod:  hive.SecondsPerMonth,
	})
	require.NoError(t, svc.Initialize(big.NewInt(0)))

	router := mux.NewRouter()
	NewWithClock(svc, func() uint64 { return now }).Mount(router, "/staking")

	now = 0
	ts = httptest.NewServer(router)
	t.Cleanup(func() {
		ts.Close()
		db.Close()
	})
}

func httpPost(t *testing.T, url string, obj any) ([]byte, int) {
	t.Helper()

	data, err := json.Marshal(obj)
	require.NoError(t, err)

	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	t.Helper()

	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func amount(n int64) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(big.NewInt(n))
}

func TestStakingAPI(t *testing.T) {
	startServer(t)

	t.Run("getParams", func(t *testing.T) {
		body, status := httpGet(t, ts.URL+"/staking/params")
		require.Equal(t, http.StatusOK, status)

		var params Params
		require.NoError(t, json.Unmarshal(body, &params))
		assert.Equal(t, owner, params.Owner)
		assert.Equal(t, hive.SecondsPerMonth, params.LockupPeriod)
		assert.Len(t, params.Tiers, 4)
	})

	t.Run("fundPool", func(t *testing.T) {
		body, status := httpPost(t, ts.URL+"/staking/fund", &FundRequest{
			Caller: owner,
			Amount: amount(1_000_000),
		})
		require.Equal(t, http.StatusOK, status)

		var pool PoolStatus
		require.NoError(t, json.Unmarshal(body, &pool))
		assert.Equal(t, amount(1_000_000), pool.Balance)
	})

	t.Run("fundPoolUnauthorized", func(t *testing.T) {
		_, status := httpPost(t, ts.URL+"/staking/fund", &FundRequest{
			Caller: alice,
			Amount: amount(10),
		})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("stake", func(t *testing.T) {
		body, status := httpPost(t, ts.URL+"/staking/stakes", &StakeRequest{
			Participant: alice,
			Amount:      amount(500_000),
		})
		require.Equal(t, http.StatusOK, status)

		var stake Stake
		require.NoError(t, json.Unmarshal(body, &stake))
		assert.Equal(t, alice, stake.Participant)
		assert.Equal(t, amount(500_000), stake.Amount)
		assert.Equal(t, uint8(100), stake.Multiplier)
		assert.False(t, stake.Claimed)
	})

	t.Run("stakeRejectsMissingAmount", func(t *testing.T) {
		_, status := httpPost(t, ts.URL+"/staking/stakes", &StakeRequest{Participant: alice})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("getStake", func(t *testing.T) {
		body, status := httpGet(t, ts.URL+"/staking/stakes/"+alice.String())
		require.Equal(t, http.StatusOK, status)

		var stake Stake
		require.NoError(t, json.Unmarshal(body, &stake))
		assert.Equal(t, amount(500_000), stake.Amount)
		assert.Equal(t, hive.SecondsPerMonth, stake.LockEnd)
	})

	t.Run("getStakeUnknown", func(t *testing.T) {
		_, status := httpGet(t, ts.URL+"/staking/stakes/"+owner.String())
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("getStakeBadAddress", func(t *testing.T) {
		_, status := httpGet(t, ts.URL+"/staking/stakes/not-an-address")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("previewLockedIsZero", func(t *testing.T) {
		body, status := httpGet(t, ts.URL+"/staking/stakes/"+alice.String()+"/reward")
		require.Equal(t, http.StatusOK, status)

		var reward Reward
		require.NoError(t, json.Unmarshal(body, &reward))
		assert.Equal(t, 0, (*big.Int)(reward.Reward).Sign())
		assert.False(t, reward.Claimed)
	})

	t.Run("claimWhileLocked", func(t *testing.T) {
		_, status := httpPost(t, ts.URL+"/staking/stakes/"+alice.String()+"/claim", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("claimAfterLock", func(t *testing.T) {
		now = hive.SecondsPerMonth

		body, status := httpPost(t, ts.URL+"/staking/stakes/"+alice.String()+"/claim", nil)
		require.Equal(t, http.StatusOK, status)

		var reward Reward
		require.NoError(t, json.Unmarshal(body, &reward))
		assert.Equal(t, amount(1_000_000), reward.Reward)
		assert.True(t, reward.Claimed)
	})

	t.Run("doubleClaim", func(t *testing.T) {
		_, status := httpPost(t, ts.URL+"/staking/stakes/"+alice.String()+"/claim", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unstake", func(t *testing.T) {
		body, status := httpPost(t, ts.URL+"/staking/stakes/"+alice.String()+"/unstake", nil)
		require.Equal(t, http.StatusOK, status)

		var receipt Receipt
		require.NoError(t, json.Unmarshal(body, &receipt))
		assert.Equal(t, amount(500_000), receipt.Principal)

		_, status = httpGet(t, ts.URL+"/staking/stakes/"+alice.String())
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("poolDrained", func(t *testing.T) {
		body, status := httpGet(t, ts.URL+"/staking/pool")
		require.Equal(t, http.StatusOK, status)

		var pool PoolStatus
		require.NoError(t, json.Unmarshal(body, &pool))
		assert.Equal(t, 0, (*big.Int)(pool.Balance).Sign())
		assert.Equal(t, 0, (*big.Int)(pool.TotalPoints).Sign())
	})
}
