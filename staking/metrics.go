// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "github.com/hivestake/hive/metrics"

var metricOpCount = metrics.LazyLoad(func() metrics.CountVecMeter {
	return metrics.CounterVec("staking_op_count", []string{"op", "outcome"})
})
