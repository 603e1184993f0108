// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

// Builder configures a State.
type Builder struct {
	db               Database
	prestate         *BundleState
	withBundleUpdate bool
	stateClear       bool
}

// NewBuilder creates a builder with an empty database and EIP-161 enabled.
func NewBuilder() *Builder {
	return &Builder{stateClear: true}
}

// WithDatabase sets the database accounts are loaded from.
func (b *Builder) WithDatabase(db Database) *Builder {
	b.db = db
	return b
}

// WithBundlePrestate preloads a bundle. Accounts found in it take precedence over the database.
func (b *Builder) WithBundlePrestate(bundle *BundleState) *Builder {
	b.prestate = bundle
	return b
}

// WithBundleUpdate records committed changes so they can be merged into the bundle.
func (b *Builder) WithBundleUpdate() *Builder {
	b.withBundleUpdate = true
	return b
}

// WithoutStateClear disables EIP-161, as on networks before Spurious Dragon.
func (b *Builder) WithoutStateClear() *Builder {
	b.stateClear = false
	return b
}

// Build creates the state.
func (b *Builder) Build() *State {
	s := &State{
		cache:  NewCacheState(b.stateClear),
		db:     b.db,
		bundle: b.prestate,
	}
	if s.db == nil {
		s.db = EmptyDB{}
	}
	if s.bundle == nil {
		s.bundle = NewBundleState()
	} else {
		s.usePreloadedBundle = true
	}
	if b.withBundleUpdate {
		s.transitions = NewTransitionState()
	}
	return s
}
