package config

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

var ErrInvalidKeypair = errors.New("invalid keypair file")

// LoadKeypair reads an ed25519 keypair stored as a JSON array of the 64
// bytes of the private key (seed followed by public key).
func LoadKeypair(path string) (ed25519.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseKeypair(data)
}

func ParseKeypair(data []byte) (ed25519.PrivateKey, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not JSON", ErrInvalidKeypair)
	}
	result := gjson.ParseBytes(data)
	if !result.IsArray() {
		return nil, fmt.Errorf("%w: got: %v, want: array", ErrInvalidKeypair, result.Type)
	}
	elems := result.Array()
	if len(elems) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: got: %v bytes, want: %v", ErrInvalidKeypair, len(elems), ed25519.PrivateKeySize)
	}
	key := make([]byte, ed25519.PrivateKeySize)
	for i, elem := range elems {
		if elem.Type != gjson.Number || elem.Num < 0 || elem.Num > 255 || elem.Num != float64(elem.Uint()) {
			return nil, fmt.Errorf("%w: element %d is %s", ErrInvalidKeypair, i, elem.Raw)
		}
		key[i] = byte(elem.Uint())
	}
	derived := ed25519.NewKeyFromSeed(key[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], key[ed25519.SeedSize:]) {
		return nil, fmt.Errorf("%w: public key does not match seed", ErrInvalidKeypair)
	}
	return ed25519.PrivateKey(key), nil
}
