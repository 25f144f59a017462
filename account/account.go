// Package account defines the account handles the ledger passes to a
// program and the checks a program applies to them before mutating
// anything.
package account

import (
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/errors"
)

// Meta references an account from an instruction together with the
// privileges the instruction requests for it.
type Meta struct {
	Key        address.Address
	IsSigner   bool
	IsWritable bool
}

// Writable returns a writable, non-signing Meta for key.
func Writable(key address.Address) Meta {
	return Meta{Key: key, IsWritable: true}
}

// ReadOnly returns a read-only, non-signing Meta for key.
func ReadOnly(key address.Address) Meta {
	return Meta{Key: key}
}

// Signer returns a signing Meta for key.
func Signer(key address.Address, writable bool) Meta {
	return Meta{Key: key, IsSigner: true, IsWritable: writable}
}

// Info is the view of an account handed to an executing program. The
// ledger trusts none of it until the program's checks pass; it verifies
// after execution that only permitted fields were changed.
type Info struct {
	Key        address.Address
	IsSigner   bool
	IsWritable bool
	Lamports   uint64
	Owner      address.Address
	Executable bool
	Data       []byte
}

// Iterator hands out account handles in the order the instruction lists
// them.
type Iterator struct {
	accounts []*Info
	pos      int
}

func NewIterator(accounts []*Info) *Iterator {
	return &Iterator{accounts: accounts}
}

// Next returns the next handle or a NotEnoughAccountKeys error.
func (it *Iterator) Next() (*Info, error) {
	if it.pos >= len(it.accounts) {
		return nil, errors.NewNotEnoughAccountKeysErrorf(
			"wanted account #%d, got %d accounts", it.pos+1, len(it.accounts))
	}
	info := it.accounts[it.pos]
	it.pos++
	return info, nil
}
