package storage

import (
	"github.com/celestiaorg/echo/address"
)

// Account is the persisted state of one ledger account.
type Account struct {
	Lamports   uint64          `cbor:"1,keyasint"`
	Owner      address.Address `cbor:"2,keyasint"`
	Executable bool            `cbor:"3,keyasint,omitempty"`
	Data       []byte          `cbor:"4,keyasint"`
}

// Clone returns a deep copy of a.
func (a *Account) Clone() *Account {
	c := *a
	if a.Data != nil {
		c.Data = make([]byte, len(a.Data))
		copy(c.Data, a.Data)
	}
	return &c
}

// IsDead reports whether the account holds nothing worth keeping.
func (a *Account) IsDead() bool {
	return a.Lamports == 0 && len(a.Data) == 0 && !a.Executable
}

type AccountStore interface {
	Get(key address.Address) (*Account, bool)
	Put(key address.Address, acct *Account)
	Delete(key address.Address)
	// Keys returns the stored keys in insertion order.
	Keys() []address.Address
	Count() int
}

var _ AccountStore = &InMemoryAccountStore{}

type InMemoryAccountStore struct {
	accounts map[address.Address]*Account
	// This is only to traverse the accounts in insertion order.
	keys []address.Address
}

func NewInMemoryAccountStore() *InMemoryAccountStore {
	return &InMemoryAccountStore{
		accounts: make(map[address.Address]*Account),
		keys:     make([]address.Address, 0),
	}
}

func (i *InMemoryAccountStore) Get(key address.Address) (*Account, bool) {
	acct, ok := i.accounts[key]
	return acct, ok
}

func (i *InMemoryAccountStore) Put(key address.Address, acct *Account) {
	_, present := i.accounts[key]
	i.accounts[key] = acct
	if !present {
		i.keys = append(i.keys, key)
	}
}

func (i *InMemoryAccountStore) Delete(key address.Address) {
	if _, present := i.accounts[key]; !present {
		return
	}
	delete(i.accounts, key)
	for idx, k := range i.keys {
		if k == key {
			i.keys = append(i.keys[:idx], i.keys[idx+1:]...)
			break
		}
	}
}

func (i *InMemoryAccountStore) Keys() []address.Address {
	keys := make([]address.Address, len(i.keys))
	copy(keys, i.keys)
	return keys
}

func (i *InMemoryAccountStore) Count() int {
	return len(i.accounts)
}
