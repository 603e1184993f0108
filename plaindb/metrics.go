// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package plaindb

import "github.com/BrazilRaw/revm/metrics"

var (
	metricCommitDuration = metrics.LazyLoadHistogram("plaindb_commit_duration_ms", metrics.BucketCommitMillis)
	metricCodeCache      = metrics.LazyLoadCounterVec("plaindb_code_cache_count", []string{"event"})
	metricHeadBlock      = metrics.LazyLoadGauge("plaindb_head_block")
	metricUnwoundBlocks  = metrics.LazyLoadCounter("plaindb_unwound_blocks_count")
)
