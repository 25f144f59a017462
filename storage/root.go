package storage

import (
	"encoding/binary"
	"fmt"
	"sort"

	sha256 "github.com/minio/sha256-simd"
	"github.com/prysmaticlabs/gohashtree"

	"github.com/celestiaorg/echo/address"
)

// LeafPrefix domain-separates account leaf hashes from inner nodes.
const LeafPrefix = 0

// EmptyRoot is the root of a store without accounts.
var EmptyRoot = sha256.Sum256(nil)

// HashAccount computes sha256(LeafPrefix || key || lamports || owner ||
// executable || data).
func HashAccount(key address.Address, acct *Account) [32]byte {
	h := sha256.New()
	var scratch [8]byte
	h.Write([]byte{LeafPrefix}) //nolint:errcheck
	h.Write(key[:])             //nolint:errcheck
	binary.LittleEndian.PutUint64(scratch[:], acct.Lamports)
	h.Write(scratch[:])     //nolint:errcheck
	h.Write(acct.Owner[:]) //nolint:errcheck
	if acct.Executable {
		h.Write([]byte{1}) //nolint:errcheck
	} else {
		h.Write([]byte{0}) //nolint:errcheck
	}
	h.Write(acct.Data) //nolint:errcheck

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Root commits to every account in s. Leaves are ordered by key, so the
// root does not depend on insertion order. Odd layers are padded with a
// zero hash.
func Root(s AccountStore) ([32]byte, error) {
	_, layers, err := buildLayers(s)
	if err != nil {
		return [32]byte{}, err
	}
	if len(layers) == 0 {
		return EmptyRoot, nil
	}
	return layers[len(layers)-1][0], nil
}

// buildLayers returns the keys of s in leaf order and every layer of the
// tree, leaves first.
func buildLayers(s AccountStore) ([]address.Address, [][][32]byte, error) {
	keys := s.Keys()
	if len(keys) == 0 {
		return nil, nil, nil
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	layer := make([][32]byte, len(keys))
	for i, key := range keys {
		acct, _ := s.Get(key)
		layer[i] = HashAccount(key, acct)
	}
	layers := [][][32]byte{layer}
	for len(layer) > 1 {
		if len(layer)%2 == 1 {
			layer = append(layer, [32]byte{})
			layers[len(layers)-1] = layer
		}
		next := make([][32]byte, len(layer)/2)
		if err := gohashtree.Hash(next, layer); err != nil {
			return nil, nil, fmt.Errorf("hash layer of %d nodes: %w", len(layer), err)
		}
		layers = append(layers, next)
		layer = next
	}
	return keys, layers, nil
}
