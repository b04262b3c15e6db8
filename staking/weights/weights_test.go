// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package weights

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hivestake/hive/hive"
)

func TestForMonths(t *testing.T) {
	tests := []struct {
		months   uint32
		expected uint8
	}{
		{0, TierShort},
		{1, TierShort},
		{3, TierShort},
		{4, TierMedium},
		{6, TierMedium},
		{7, TierLong},
		{9, TierLong},
		{10, TierLongest},
		{24, TierLongest},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ForMonths(tt.months), "months=%d", tt.months)
	}
}

func TestForLockup(t *testing.T) {
	assert.Equal(t, TierShort, ForLockup(hive.SecondsPerMonth))
	assert.Equal(t, TierShort, ForLockup(hive.SecondsPerMonth-1))
	assert.Equal(t, TierMedium, ForLockup(4*hive.SecondsPerMonth))
	assert.Equal(t, TierLongest, ForLockup(12*hive.SecondsPerMonth))
}

func TestWeigh(t *testing.T) {
	// weight 1.0
	assert.Equal(t, big.NewInt(500_000), Weigh(big.NewInt(500_000), TierShort))
	// weight 1.5
	assert.Equal(t, big.NewInt(150_000), Weigh(big.NewInt(100_000), TierMedium))
	// weight 2.5
	assert.Equal(t, big.NewInt(250_000), Weigh(big.NewInt(100_000), TierLongest))
	// floor division, never rounds up
	assert.Equal(t, big.NewInt(1), Weigh(big.NewInt(1), TierMedium))
}
