// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/BrazilRaw/revm/metrics"

var (
	metricTransitions = metrics.LazyLoadCounterVec("state_transitions_count", []string{"status"})
	metricReverts     = metrics.LazyLoadCounterVec("state_reverts_count", []string{"kind"})
	metricBundleSize  = metrics.LazyLoadGaugeVec("state_bundle_size", []string{"kind"})
)
