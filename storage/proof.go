package storage

import (
	"errors"
	"fmt"

	sha256 "github.com/minio/sha256-simd"

	"github.com/celestiaorg/echo/address"
)

var ErrAccountNotFound = errors.New("account not found")

// Proof shows that an account is a leaf of the tree committed to by Root.
type Proof struct {
	// Index of the leaf among the keys of the store in ascending order.
	Index uint64 `cbor:"1,keyasint"`
	// Nodes are the sibling hashes from the leaf up to the root.
	Nodes [][32]byte `cbor:"2,keyasint"`
}

// Prove returns the inclusion proof of the account stored at key.
func Prove(s AccountStore, key address.Address) (Proof, error) {
	if _, ok := s.Get(key); !ok {
		return Proof{}, fmt.Errorf("%w: %s", ErrAccountNotFound, key)
	}
	keys, layers, err := buildLayers(s)
	if err != nil {
		return Proof{}, err
	}
	var index int
	for i, k := range keys {
		if k == key {
			index = i
			break
		}
	}

	proof := Proof{Index: uint64(index)}
	for _, layer := range layers[:len(layers)-1] {
		proof.Nodes = append(proof.Nodes, layer[index^1])
		index /= 2
	}
	return proof, nil
}

// VerifyInclusion reports whether acct stored at key is included in the
// tree with the given root.
func (proof Proof) VerifyInclusion(root [32]byte, key address.Address, acct *Account) bool {
	if proof.Index>>len(proof.Nodes) != 0 {
		return false
	}
	node := HashAccount(key, acct)
	index := proof.Index
	var pair [64]byte
	for _, sibling := range proof.Nodes {
		if index%2 == 0 {
			copy(pair[:32], node[:])
			copy(pair[32:], sibling[:])
		} else {
			copy(pair[:32], sibling[:])
			copy(pair[32:], node[:])
		}
		node = sha256.Sum256(pair[:])
		index /= 2
	}
	return node == root
}
