// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/BrazilRaw/revm/primitives"

// AddressTransition pairs an address with its transition.
type AddressTransition struct {
	Address    primitives.Address
	Transition *TransitionAccount
}

// TransitionState accumulates transitions until they are merged into a bundle.
// Transitions of the same address are merged in the order they are added.
type TransitionState struct {
	Transitions map[primitives.Address]*TransitionAccount
}

// NewTransitionState creates an empty transition state.
func NewTransitionState() *TransitionState {
	return &TransitionState{Transitions: make(map[primitives.Address]*TransitionAccount)}
}

// AddTransitions folds transitions into the state.
func (s *TransitionState) AddTransitions(transitions []AddressTransition) {
	for _, at := range transitions {
		if cur, ok := s.Transitions[at.Address]; ok {
			cur.Update(at.Transition)
		} else {
			s.Transitions[at.Address] = at.Transition
		}
	}
}

// Len returns the number of addresses with pending transitions.
func (s *TransitionState) Len() int {
	return len(s.Transitions)
}

// Take returns the accumulated transitions and resets the state.
func (s *TransitionState) Take() *TransitionState {
	taken := &TransitionState{Transitions: s.Transitions}
	s.Transitions = make(map[primitives.Address]*TransitionAccount)
	return taken
}
