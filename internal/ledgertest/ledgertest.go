// Package ledgertest builds ledgers with the echo processor and the token
// program registered, for use in tests.
package ledgertest

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/echo"
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/ledger"
	"github.com/celestiaorg/echo/token"
)

// PayerLamports is the airdrop every Env payer starts with.
const PayerLamports = 1_000_000_000

type Keypair struct {
	Private ed25519.PrivateKey
	Key     address.Address
}

func NewKeypair(t testing.TB) Keypair {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	key, err := address.FromBytes(pub)
	require.NoError(t, err)
	return Keypair{Private: priv, Key: key}
}

// Env is a ledger with a funded payer that signs every transaction.
type Env struct {
	t      testing.TB
	Ledger *ledger.Ledger
	Payer  Keypair
}

// New returns an Env whose ledger runs echo.New(echoOpts...) under
// echo.DefaultProgramID and the token program under token.ProgramID.
func New(t testing.TB, ledgerOpts []ledger.Option, echoOpts ...echo.Option) *Env {
	t.Helper()
	l := ledger.New(ledgerOpts...)
	l.Register(echo.DefaultProgramID, echo.New(echoOpts...))
	l.Register(token.ProgramID, token.Program{})
	env := &Env{t: t, Ledger: l, Payer: NewKeypair(t)}
	l.Airdrop(env.Payer.Key, PayerLamports)
	return env
}

// Sign builds a transaction of ixs signed by the payer and signers.
func (e *Env) Sign(signers []Keypair, ixs ...ledger.Instruction) *ledger.Transaction {
	e.t.Helper()
	keys := []ed25519.PrivateKey{e.Payer.Private}
	for _, kp := range signers {
		keys = append(keys, kp.Private)
	}
	tx := ledger.NewTransaction(ixs...)
	require.NoError(e.t, tx.Sign(keys...))
	return tx
}

// Execute runs ixs in one transaction signed by the payer and signers.
func (e *Env) Execute(signers []Keypair, ixs ...ledger.Instruction) error {
	e.t.Helper()
	return e.Ledger.Execute(context.Background(), e.Sign(signers, ixs...))
}

// MustExecute is Execute failing the test on error.
func (e *Env) MustExecute(signers []Keypair, ixs ...ledger.Instruction) {
	e.t.Helper()
	require.NoError(e.t, e.Execute(signers, ixs...))
}

// CreateAccount allocates a rent-exempt account of size bytes owned by
// owner, funded by the payer.
func (e *Env) CreateAccount(size uint64, owner address.Address) Keypair {
	e.t.Helper()
	kp := NewKeypair(e.t)
	lamports := e.Ledger.Rent().MinimumBalance(size)
	e.MustExecute([]Keypair{kp}, ledger.CreateAccount(e.Payer.Key, kp.Key, lamports, size, owner))
	return kp
}

// CreateMint creates and initializes a mint controlled by authority.
func (e *Env) CreateMint(authority address.Address, decimals uint8) address.Address {
	e.t.Helper()
	kp := NewKeypair(e.t)
	lamports := e.Ledger.Rent().MinimumBalance(token.MintSize)
	e.MustExecute([]Keypair{kp},
		ledger.CreateAccount(e.Payer.Key, kp.Key, lamports, token.MintSize, token.ProgramID),
		token.InitializeMint(token.ProgramID, kp.Key, decimals, authority),
	)
	return kp.Key
}

// CreateTokenAccount creates and initializes a token account of mint held
// by owner.
func (e *Env) CreateTokenAccount(mint, owner address.Address) address.Address {
	e.t.Helper()
	kp := NewKeypair(e.t)
	lamports := e.Ledger.Rent().MinimumBalance(token.AccountSize)
	e.MustExecute([]Keypair{kp},
		ledger.CreateAccount(e.Payer.Key, kp.Key, lamports, token.AccountSize, token.ProgramID),
		token.InitializeAccount(token.ProgramID, kp.Key, mint, owner),
	)
	return kp.Key
}

// MintTo mints amount tokens into dst, signed by the mint authority.
func (e *Env) MintTo(mint, dst address.Address, authority Keypair, amount uint64) {
	e.t.Helper()
	e.MustExecute([]Keypair{authority}, token.MintTo(token.ProgramID, mint, dst, authority.Key, amount))
}

// Data returns the data of key, or nil if the account does not exist.
func (e *Env) Data(key address.Address) []byte {
	acct, ok := e.Ledger.Account(key)
	if !ok {
		return nil
	}
	return acct.Data
}

// Exists reports whether key holds an account.
func (e *Env) Exists(key address.Address) bool {
	_, ok := e.Ledger.Account(key)
	return ok
}

func (e *Env) Mint(key address.Address) token.Mint {
	e.t.Helper()
	m, ok := token.UnpackMint(e.Data(key))
	require.True(e.t, ok, "mint %s", key)
	return m
}

func (e *Env) TokenAccount(key address.Address) token.Account {
	e.t.Helper()
	a, ok := token.UnpackAccount(e.Data(key))
	require.True(e.t, ok, "token account %s", key)
	return a
}
