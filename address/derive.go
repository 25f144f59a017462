package address

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	sha256 "github.com/minio/sha256-simd"
)

const (
	// MaxSeedLen is the maximum length in bytes of a single derivation seed.
	MaxSeedLen = 32
	// MaxSeeds is the maximum number of seeds, the nonce included.
	MaxSeeds = 16
)

// derivedMarker separates derived addresses from any other SHA-256 use.
var derivedMarker = []byte("ProgramDerivedAddress")

var (
	ErrMaxSeedLength = errors.New("derivation seed exceeds the maximum length")
	ErrTooManySeeds  = errors.New("too many derivation seeds")
	ErrOnCurve       = errors.New("derived address lies on the ed25519 curve")
	ErrNoViableNonce = errors.New("unable to find a viable derivation nonce")
)

// Create recomputes the derived address for seeds under programID. The
// last seed is normally the nonce returned by Find. An error wrapping
// ErrOnCurve is returned if the result could be a public key.
func Create(seeds [][]byte, programID Address) (Address, error) {
	if len(seeds) > MaxSeeds {
		return Address{}, fmt.Errorf("%w: got: %v, want <= %v", ErrTooManySeeds, len(seeds), MaxSeeds)
	}
	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return Address{}, fmt.Errorf("%w: got: %v, want <= %v", ErrMaxSeedLength, len(seed), MaxSeedLen)
		}
		h.Write(seed) //nolint:errcheck
	}
	h.Write(programID[:])  //nolint:errcheck
	h.Write(derivedMarker) //nolint:errcheck

	var a Address
	copy(a[:], h.Sum(nil))
	if IsOnCurve(a) {
		return Address{}, fmt.Errorf("%w: %s", ErrOnCurve, a)
	}
	return a, nil
}

// Find searches nonces from 255 down to 0 and returns the first derived
// address that is off the curve together with its nonce. Identical inputs
// always yield identical results.
func Find(seeds [][]byte, programID Address) (Address, uint8, error) {
	withNonce := make([][]byte, len(seeds)+1)
	copy(withNonce, seeds)
	for nonce := 255; nonce >= 0; nonce-- {
		withNonce[len(seeds)] = []byte{uint8(nonce)}
		a, err := Create(withNonce, programID)
		if err == nil {
			return a, uint8(nonce), nil
		}
		if !errors.Is(err, ErrOnCurve) {
			return Address{}, 0, err
		}
	}
	return Address{}, 0, ErrNoViableNonce
}

// IsOnCurve reports whether a decodes to a valid ed25519 point, i.e. whether
// it could be the public half of a keypair.
func IsOnCurve(a Address) bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return err == nil
}
