package address

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// Size is the number of bytes of an Address.
const Size = 32

var ErrInvalidAddressLen = errors.New("invalid address length")

// Address identifies an account, a program or a token mint on the ledger.
type Address [Size]byte

// FromBytes copies b into an Address. b must be exactly Size bytes.
func FromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != Size {
		return a, fmt.Errorf("%w: got: %v, want: %v", ErrInvalidAddressLen, len(b), Size)
	}
	copy(a[:], b)
	return a, nil
}

// FromBase58 parses the textual form of an Address.
func FromBase58(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid base58 address %q: %w", s, err)
	}
	return FromBytes(b)
}

// MustFromBase58 is like FromBase58 but panics on malformed input.
// It is meant for well-known program ids.
func MustFromBase58(s string) Address {
	a, err := FromBase58(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, a[:])
	return b
}

// Equal returns true if a == other, otherwise, false.
func (a Address) Equal(other Address) bool {
	return a == other
}

// Less returns true if a < other in byte order, otherwise, false.
func (a Address) Less(other Address) bool {
	return bytes.Compare(a[:], other[:]) < 0
}

// IsZero reports whether every byte of a is zero.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns the base58 encoding of the address.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := FromBase58(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
