package storage

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/celestiaorg/echo/address"
)

type snapshotEntry struct {
	Key     address.Address `cbor:"1,keyasint"`
	Account *Account        `cbor:"2,keyasint"`
}

var snapshotEncMode cbor.EncMode

func init() {
	var err error
	snapshotEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// Encode serializes every account of s in insertion order.
func Encode(s AccountStore) ([]byte, error) {
	keys := s.Keys()
	entries := make([]snapshotEntry, 0, len(keys))
	for _, key := range keys {
		acct, _ := s.Get(key)
		entries = append(entries, snapshotEntry{Key: key, Account: acct})
	}
	return snapshotEncMode.Marshal(entries)
}

// Decode loads the accounts of an Encode output into s.
func Decode(data []byte, s AccountStore) error {
	var entries []snapshotEntry
	if err := cbor.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	for i, e := range entries {
		if e.Account == nil {
			return fmt.Errorf("decode snapshot: entry %d (%s) has no account", i, e.Key)
		}
		s.Put(e.Key, e.Account)
	}
	return nil
}
