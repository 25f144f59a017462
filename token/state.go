package token

import (
	"encoding/binary"

	"github.com/celestiaorg/echo/address"
)

const (
	// MintSize is the data size of a mint account:
	// authority (32) || supply (8) || decimals (1) || initialized (1).
	MintSize = 42
	// AccountSize is the data size of a token account:
	// mint (32) || owner (32) || amount (8) || initialized (1).
	AccountSize = 73
)

type Mint struct {
	MintAuthority address.Address
	Supply        uint64
	Decimals      uint8
	IsInitialized bool
}

type Account struct {
	Mint          address.Address
	Owner         address.Address
	Amount        uint64
	IsInitialized bool
}

// UnpackMint decodes a mint; ok is false if data has the wrong size.
func UnpackMint(data []byte) (m Mint, ok bool) {
	if len(data) != MintSize {
		return m, false
	}
	copy(m.MintAuthority[:], data[0:32])
	m.Supply = binary.LittleEndian.Uint64(data[32:40])
	m.Decimals = data[40]
	m.IsInitialized = data[41] == 1
	return m, true
}

// PackInto writes m into dst, which must be MintSize bytes.
func (m Mint) PackInto(dst []byte) {
	copy(dst[0:32], m.MintAuthority[:])
	binary.LittleEndian.PutUint64(dst[32:40], m.Supply)
	dst[40] = m.Decimals
	dst[41] = boolByte(m.IsInitialized)
}

// UnpackAccount decodes a token account; ok is false if data has the
// wrong size.
func UnpackAccount(data []byte) (a Account, ok bool) {
	if len(data) != AccountSize {
		return a, false
	}
	copy(a.Mint[:], data[0:32])
	copy(a.Owner[:], data[32:64])
	a.Amount = binary.LittleEndian.Uint64(data[64:72])
	a.IsInitialized = data[72] == 1
	return a, true
}

// PackInto writes a into dst, which must be AccountSize bytes.
func (a Account) PackInto(dst []byte) {
	copy(dst[0:32], a.Mint[:])
	copy(dst[32:64], a.Owner[:])
	binary.LittleEndian.PutUint64(dst[64:72], a.Amount)
	dst[72] = boolByte(a.IsInitialized)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
