// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hivestake/hive/hive"
)

func writeGenesis(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeGenesis(t, `
owner: "0xf077b491b355e64048ce21e3a6fc4751eeea77fa"
fundingSource: "0x435933c8064b4ae76be665428e0307ef2ccfbd68"
openingBalance: "1000000000000000000000000"
lockupPeriod: 5184000
`)

	gen, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, hive.MustParseAddress("0xf077b491b355e64048ce21e3a6fc4751eeea77fa"), gen.Owner)
	assert.Equal(t, hive.MustParseAddress("0x435933c8064b4ae76be665428e0307ef2ccfbd68"), gen.FundingSource)

	want, _ := new(big.Int).SetString("1000000000000000000000000", 10)
	assert.Equal(t, want, gen.OpeningBalance)
	assert.Equal(t, uint64(5184000), gen.LockupPeriod)
}

func TestLoadDefaults(t *testing.T) {
	path := writeGenesis(t, `
owner: "0xf077b491b355e64048ce21e3a6fc4751eeea77fa"
`)

	gen, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, gen.Owner, gen.FundingSource, "funding source defaults to the owner")
	assert.Equal(t, hive.DefaultLockupPeriod, gen.LockupPeriod)
	assert.Equal(t, 0, gen.OpeningBalance.Sign())
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missingOwner", `openingBalance: "100"`},
		{"malformedBalance", "owner: \"0xf077b491b355e64048ce21e3a6fc4751eeea77fa\"\nopeningBalance: \"12.5\""},
		{"negativeBalance", "owner: \"0xf077b491b355e64048ce21e3a6fc4751eeea77fa\"\nopeningBalance: \"-1\""},
		{"badYAML", `owner: [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeGenesis(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestNewDevnet(t *testing.T) {
	gen := NewDevnet()
	assert.False(t, gen.Owner.IsZero())
	assert.False(t, gen.FundingSource.IsZero())
	assert.True(t, gen.OpeningBalance.Sign() > 0)
	assert.Equal(t, hive.DefaultLockupPeriod, gen.LockupPeriod)
}
