package ledger

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	sha256 "github.com/minio/sha256-simd"

	"github.com/celestiaorg/echo/account"
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/errors"
)

// Instruction asks ProgramID to process Data with the listed accounts.
type Instruction struct {
	ProgramID address.Address `cbor:"1,keyasint"`
	Accounts  []account.Meta  `cbor:"2,keyasint"`
	Data      []byte          `cbor:"3,keyasint"`
}

type Signature struct {
	Signer    address.Address
	Signature []byte
}

// Transaction is an ordered list of instructions executed as one unit.
// RecentNonce is signed along with the instructions so that two
// transactions carrying the same instructions have distinct messages.
type Transaction struct {
	RecentNonce  [32]byte
	Instructions []Instruction
	Signatures   []Signature
}

// NewTransaction returns an unsigned transaction with a random nonce.
func NewTransaction(ixs ...Instruction) *Transaction {
	tx := &Transaction{Instructions: ixs}
	if _, err := rand.Read(tx.RecentNonce[:]); err != nil {
		panic(fmt.Sprintf("read transaction nonce: %v", err))
	}
	return tx
}

// message is the signed part of a transaction.
type message struct {
	RecentNonce  [32]byte      `cbor:"1,keyasint"`
	Instructions []Instruction `cbor:"2,keyasint"`
}

var messageEncMode cbor.EncMode

func init() {
	var err error
	messageEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// Message returns the deterministic encoding of the nonce and instructions
// that signers sign.
func (tx *Transaction) Message() ([]byte, error) {
	msg, err := messageEncMode.Marshal(message{
		RecentNonce:  tx.RecentNonce,
		Instructions: tx.Instructions,
	})
	if err != nil {
		return nil, fmt.Errorf("encode transaction message: %w", err)
	}
	return msg, nil
}

// ID identifies tx by the hash of its message. The ledger processes a
// given ID at most once.
func (tx *Transaction) ID() ([32]byte, error) {
	msg, err := tx.Message()
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(msg), nil
}

// Sign appends a signature of every key over the transaction message.
func (tx *Transaction) Sign(keys ...ed25519.PrivateKey) error {
	msg, err := tx.Message()
	if err != nil {
		return err
	}
	for _, key := range keys {
		signer, err := address.FromBytes(key.Public().(ed25519.PublicKey))
		if err != nil {
			return err
		}
		tx.Signatures = append(tx.Signatures, Signature{
			Signer:    signer,
			Signature: ed25519.Sign(key, msg),
		})
	}
	return nil
}

// signers verifies every signature and returns the set of signers along
// with the transaction ID.
func (tx *Transaction) signers() (map[address.Address]bool, [32]byte, error) {
	msg, err := tx.Message()
	if err != nil {
		return nil, [32]byte{}, err
	}
	signed := make(map[address.Address]bool, len(tx.Signatures))
	for _, sig := range tx.Signatures {
		if !ed25519.Verify(sig.Signer[:], msg, sig.Signature) {
			return nil, [32]byte{}, errors.NewInvalidSignatureErrorf(sig.Signer.String())
		}
		signed[sig.Signer] = true
	}
	return signed, sha256.Sum256(msg), nil
}
