// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "fmt"

// AccountStatus describes an account relative to the persisted state.
type AccountStatus uint8

const (
	// LoadedNotExisting is an account that was looked up and not found.
	LoadedNotExisting AccountStatus = iota
	// Loaded is an account loaded from the database.
	Loaded
	// LoadedEmptyEIP161 is an account loaded from the database that is empty per EIP-161.
	LoadedEmptyEIP161
	// InMemoryChange is an account changed in memory whose storage is fully known.
	InMemoryChange
	// Changed is a loaded account that was changed.
	Changed
	// Destroyed is an account that was destroyed.
	Destroyed
	// DestroyedChanged is an account that was destroyed and then changed or recreated.
	DestroyedChanged
	// DestroyedAgain is an account that was destroyed, changed and destroyed again.
	DestroyedAgain
)

var statusNames = [...]string{
	LoadedNotExisting: "LoadedNotExisting",
	Loaded:            "Loaded",
	LoadedEmptyEIP161: "LoadedEmptyEIP161",
	InMemoryChange:    "InMemoryChange",
	Changed:           "Changed",
	Destroyed:         "Destroyed",
	DestroyedChanged:  "DestroyedChanged",
	DestroyedAgain:    "DestroyedAgain",
}

func (s AccountStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("AccountStatus(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s AccountStatus) MarshalText() ([]byte, error) {
	if int(s) >= len(statusNames) {
		return nil, fmt.Errorf("invalid account status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *AccountStatus) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = AccountStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown account status %q", text)
}

// NotModified returns true if the account only reflects the database.
func (s AccountStatus) NotModified() bool {
	switch s {
	case LoadedNotExisting, Loaded, LoadedEmptyEIP161:
		return true
	}
	return false
}

// WasDestroyed returns true if the account was destroyed at some point,
// so its persisted storage has to be wiped.
func (s AccountStatus) WasDestroyed() bool {
	switch s {
	case Destroyed, DestroyedChanged, DestroyedAgain:
		return true
	}
	return false
}

// IsStorageKnown returns true if every storage slot of the account is known in memory.
// A missing slot then reads as zero without consulting the database.
func (s AccountStatus) IsStorageKnown() bool {
	switch s {
	case LoadedNotExisting, InMemoryChange, Destroyed, DestroyedChanged, DestroyedAgain:
		return true
	}
	return false
}

// ModifiedButNotDestroyed returns true for changed accounts that were never destroyed.
func (s AccountStatus) ModifiedButNotDestroyed() bool {
	return s == Changed || s == InMemoryChange
}

// Transition returns the status after a later bundle with status other is merged on top.
func (s AccountStatus) Transition(other AccountStatus) AccountStatus {
	switch {
	case s.WasDestroyed() && !other.WasDestroyed():
		return DestroyedChanged
	case !s.WasDestroyed() && !other.WasDestroyed() && s == InMemoryChange:
		return InMemoryChange
	default:
		return other
	}
}
