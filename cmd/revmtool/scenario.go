// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/BrazilRaw/revm/primitives"
	"github.com/BrazilRaw/revm/state"
)

// scenario is a replayable sequence of blocks.
// Numbers are decimal or 0x-prefixed hex strings.
type scenario struct {
	Legacy     bool          `yaml:"legacy"`
	FirstBlock uint64        `yaml:"first_block"`
	Prestate   []accountSpec `yaml:"prestate"`
	Blocks     []blockSpec   `yaml:"blocks"`
}

// accountSpec is an account of the prestate, or the output of a transaction for one account.
// Fields left out keep their present value.
type accountSpec struct {
	Address      string            `yaml:"address"`
	Balance      string            `yaml:"balance"`
	Nonce        *uint64           `yaml:"nonce"`
	Code         string            `yaml:"code"`
	Storage      map[string]string `yaml:"storage"`
	Selfdestruct bool              `yaml:"selfdestruct"`
	Created      bool              `yaml:"created"`
}

type rewardSpec struct {
	Address string `yaml:"address"`
	Amount  string `yaml:"amount"`
}

type blockSpec struct {
	Transactions [][]accountSpec `yaml:"transactions"`
	Rewards      []rewardSpec    `yaml:"rewards"`
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario")
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (*scenario, error) {
	var sc scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(err, "decode scenario")
	}
	if len(sc.Blocks) == 0 {
		return nil, errors.New("scenario has no blocks")
	}
	return &sc, nil
}

func parseU256(s string) (uint256.Int, error) {
	var v uint256.Int
	n, ok := new(big.Int).SetString(s, 0)
	if !ok || n.Sign() < 0 {
		return v, errors.Errorf("invalid number %q", s)
	}
	if v.SetFromBig(n) {
		return v, errors.Errorf("number %q overflows 256 bits", s)
	}
	return v, nil
}

func (a *accountSpec) address() (primitives.Address, error) {
	addr, err := primitives.ParseAddress(a.Address)
	return addr, errors.Wrapf(err, "address %q", a.Address)
}

// apply overrides info with the fields set on a.
func (a *accountSpec) apply(info *primitives.AccountInfo) error {
	if a.Balance != "" {
		balance, err := parseU256(a.Balance)
		if err != nil {
			return err
		}
		info.Balance = balance
	}
	if a.Nonce != nil {
		info.Nonce = *a.Nonce
	}
	if a.Code != "" {
		code, err := hexutil.Decode(a.Code)
		if err != nil {
			return errors.Wrap(err, "code")
		}
		info.Code = code
		info.CodeHash = primitives.Bytecode(code).Hash()
	}
	return nil
}

func (a *accountSpec) slots() (primitives.PlainStorage, error) {
	storage := make(primitives.PlainStorage, len(a.Storage))
	for k, v := range a.Storage {
		key, err := parseU256(k)
		if err != nil {
			return nil, err
		}
		if storage[key], err = parseU256(v); err != nil {
			return nil, err
		}
	}
	return storage, nil
}

// prestateChangeset converts the prestate into a plain changeset without reverts.
func (sc *scenario) prestateChangeset() (state.StateChangeset, error) {
	var changeset state.StateChangeset
	for _, acc := range sc.Prestate {
		addr, err := acc.address()
		if err != nil {
			return changeset, err
		}
		info := primitives.DefaultAccountInfo()
		if err := acc.apply(&info); err != nil {
			return changeset, errors.Wrapf(err, "prestate %v", addr)
		}
		if len(info.Code) > 0 {
			changeset.Contracts = append(changeset.Contracts, state.ContractChange{CodeHash: info.CodeHash, Code: info.Code})
			info.Code = nil
		}
		changeset.Accounts = append(changeset.Accounts, state.AccountChange{Address: addr, Info: &info})

		slots, err := acc.slots()
		if err != nil {
			return changeset, errors.Wrapf(err, "prestate %v", addr)
		}
		change := state.StorageChange{Address: addr}
		for k, v := range slots {
			change.Storage = append(change.Storage, state.StorageEntry{Key: k, Value: v})
		}
		changeset.Storage = append(changeset.Storage, change)
	}
	return changeset, nil
}

// evmState builds the execution output of one transaction. Original slot values are
// read from s, so each slot records the value it had before the transaction.
func evmState(s *state.State, tx []accountSpec) (primitives.EVMState, error) {
	out := make(primitives.EVMState, len(tx))
	for _, acc := range tx {
		addr, err := acc.address()
		if err != nil {
			return nil, err
		}
		present, err := s.Basic(addr)
		if err != nil {
			return nil, err
		}
		info := primitives.InfoOrDefault(present)
		if acc.Created {
			info = primitives.DefaultAccountInfo()
		}
		if err := acc.apply(&info); err != nil {
			return nil, errors.Wrapf(err, "account %v", addr)
		}
		if !acc.Created && info.CodeHash != primitives.EmptyCodeHash && info.Code == nil {
			if info.Code, err = s.CodeByHash(info.CodeHash); err != nil {
				return nil, err
			}
		}

		account := primitives.NewTouchedAccount(info)
		if acc.Selfdestruct {
			account.MarkSelfdestruct()
		}
		if acc.Created {
			account.MarkCreated()
		}

		slots, err := acc.slots()
		if err != nil {
			return nil, errors.Wrapf(err, "account %v", addr)
		}
		for k, v := range slots {
			var original uint256.Int
			if !acc.Created {
				if original, err = s.Storage(addr, k); err != nil {
					return nil, err
				}
			}
			account.Storage[k] = primitives.NewChangedStorageSlot(original, v)
		}
		out[addr] = account
	}
	return out, nil
}

// replay runs every block of the scenario on s and merges each block into the bundle.
func replay(s *state.State, sc *scenario) error {
	for i, block := range sc.Blocks {
		for j, tx := range block.Transactions {
			evm, err := evmState(s, tx)
			if err != nil {
				return errors.Wrapf(err, "block %d tx %d", i, j)
			}
			s.Commit(evm)
		}
		if len(block.Rewards) > 0 {
			rewards := make(map[primitives.Address]*uint256.Int, len(block.Rewards))
			for _, r := range block.Rewards {
				addr, err := primitives.ParseAddress(r.Address)
				if err != nil {
					return errors.Wrapf(err, "block %d reward address %q", i, r.Address)
				}
				amount, err := parseU256(r.Amount)
				if err != nil {
					return errors.Wrapf(err, "block %d reward", i)
				}
				rewards[addr] = &amount
			}
			if err := s.IncrementBalances(rewards); err != nil {
				return errors.Wrapf(err, "block %d rewards", i)
			}
		}
		s.MergeTransitions(state.RetainReverts)
	}
	return nil
}
