// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/BrazilRaw/revm/primitives"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying database error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Cause implements the causer interface of github.com/pkg/errors.
func (e *Error) Cause() error {
	return e.cause
}

// TransitionError is the panic value raised on an impossible status transition.
// It signals a sequencing bug and is never returned as a regular error.
type TransitionError struct {
	Address primitives.Address
	From    AccountStatus
	To      AccountStatus
}

func (e *TransitionError) Error() string {
	if e.Address.IsZero() {
		return fmt.Sprintf("invalid account transition from %v to %v", e.From, e.To)
	}
	return fmt.Sprintf("invalid account transition from %v to %v for %v", e.From, e.To, e.Address)
}

func invalidTransition(from, to AccountStatus) {
	panic(&TransitionError{From: from, To: to})
}

// withAddress annotates a TransitionError raised by a fold with the address being folded.
// It must be deferred directly.
func withAddress(addr primitives.Address) {
	if r := recover(); r != nil {
		if err, ok := r.(*TransitionError); ok {
			err.Address = addr
		}
		panic(r)
	}
}
