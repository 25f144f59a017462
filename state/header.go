// Package state holds the fixed-layout headers stored at offset 0 of
// authorized and vending buffers.
package state

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the encoded size of both header variants: a one byte nonce
// followed by a little-endian uint64.
const HeaderSize = 9

var ErrShortHeader = errors.New("buffer too short for header")

// AuthorizedBufferHeader is stored at the start of a buffer bound to an
// authority. Nonce and Seed re-derive the buffer's own address.
type AuthorizedBufferHeader struct {
	Nonce uint8
	Seed  uint64
}

// VendingBufferHeader is stored at the start of a pay-per-write buffer.
// Price is both a derivation seed and the amount burned per write.
type VendingBufferHeader struct {
	Nonce uint8
	Price uint64
}

// MarshalBinary returns the 9-byte encoding of h.
func (h AuthorizedBufferHeader) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	putHeader(buf, h.Nonce, h.Seed)
	return buf, nil
}

// MarshalTo writes h into the first HeaderSize bytes of dst and leaves the
// rest of dst untouched.
func (h AuthorizedBufferHeader) MarshalTo(dst []byte) error {
	if err := checkLen(dst); err != nil {
		return err
	}
	putHeader(dst, h.Nonce, h.Seed)
	return nil
}

// UnmarshalBinary decodes the first HeaderSize bytes of data.
func (h *AuthorizedBufferHeader) UnmarshalBinary(data []byte) error {
	if err := checkLen(data); err != nil {
		return err
	}
	h.Nonce, h.Seed = getHeader(data)
	return nil
}

// MarshalBinary returns the 9-byte encoding of h.
func (h VendingBufferHeader) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	putHeader(buf, h.Nonce, h.Price)
	return buf, nil
}

// MarshalTo writes h into the first HeaderSize bytes of dst and leaves the
// rest of dst untouched.
func (h VendingBufferHeader) MarshalTo(dst []byte) error {
	if err := checkLen(dst); err != nil {
		return err
	}
	putHeader(dst, h.Nonce, h.Price)
	return nil
}

// UnmarshalBinary decodes the first HeaderSize bytes of data.
func (h *VendingBufferHeader) UnmarshalBinary(data []byte) error {
	if err := checkLen(data); err != nil {
		return err
	}
	h.Nonce, h.Price = getHeader(data)
	return nil
}

// Payload returns the part of a header-prefixed buffer after the header.
func Payload(data []byte) []byte {
	if len(data) < HeaderSize {
		return nil
	}
	return data[HeaderSize:]
}

func checkLen(b []byte) error {
	if len(b) < HeaderSize {
		return fmt.Errorf("%w: got: %v, want >= %v", ErrShortHeader, len(b), HeaderSize)
	}
	return nil
}

func putHeader(dst []byte, nonce uint8, value uint64) {
	dst[0] = nonce
	binary.LittleEndian.PutUint64(dst[1:HeaderSize], value)
}

func getHeader(src []byte) (uint8, uint64) {
	return src[0], binary.LittleEndian.Uint64(src[1:HeaderSize])
}
