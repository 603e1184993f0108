// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state turns raw execution output into a cached view of accounts and a
// revertible bundle of changes.
// It follows the flow as below:
//
//	  [ execution output (EVMState) ]
//	                 |
//	          [ CacheState ] <- Database (loaded on first access)
//	                 |
//	    [ TransitionAccount per address ]
//	                 |
//	         [ TransitionState ] (merged per block)
//	                 |
//	          [ BundleState ] -> [ AccountRevert per block ]
//	                 |
//	 [ StateChangeset / PlainStateReverts ] -> persistence
//
// Every account carries an AccountStatus that records how it relates to the
// persisted state. Status changes are strict: an impossible transition panics with a
// *TransitionError since continuing would corrupt the changeset.
package state
