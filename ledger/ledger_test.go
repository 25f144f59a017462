package ledger_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/echo/account"
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/errors"
	"github.com/celestiaorg/echo/ledger"
	"github.com/celestiaorg/echo/storage"
)

var testProgramID = address.Address{0xEC, 0x40}

func newKey(t *testing.T) (ed25519.PrivateKey, address.Address) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	key, err := address.FromBytes(pub)
	require.NoError(t, err)
	return priv, key
}

func execute(t *testing.T, l *ledger.Ledger, signers []ed25519.PrivateKey, ixs ...ledger.Instruction) error {
	t.Helper()
	tx := ledger.NewTransaction(ixs...)
	require.NoError(t, tx.Sign(signers...))
	return l.Execute(context.Background(), tx)
}

func TestCreateAccount(t *testing.T) {
	l := ledger.New()
	payer, payerKey := newKey(t)
	newAcct, newAcctKey := newKey(t)
	l.Airdrop(payerKey, 1_000_000)

	err := execute(t, l, []ed25519.PrivateKey{payer, newAcct},
		ledger.CreateAccount(payerKey, newAcctKey, 5000, 16, testProgramID))
	require.NoError(t, err)

	acct, ok := l.Account(newAcctKey)
	require.True(t, ok)
	assert.Equal(t, uint64(5000), acct.Lamports)
	assert.Equal(t, testProgramID, acct.Owner)
	assert.Equal(t, make([]byte, 16), acct.Data)

	payerAcct, _ := l.Account(payerKey)
	assert.Equal(t, uint64(1_000_000-5000), payerAcct.Lamports)

	t.Run("already in use", func(t *testing.T) {
		err := execute(t, l, []ed25519.PrivateKey{payer, newAcct},
			ledger.CreateAccount(payerKey, newAcctKey, 5000, 16, testProgramID))
		assert.True(t, errors.IsAccountAlreadyInUseError(err))
	})
	t.Run("new account must sign", func(t *testing.T) {
		_, otherKey := newKey(t)
		err := execute(t, l, []ed25519.PrivateKey{payer},
			ledger.CreateAccount(payerKey, otherKey, 5000, 16, testProgramID))
		assert.True(t, errors.IsMissingRequiredSignatureError(err))
	})
	t.Run("insufficient lamports", func(t *testing.T) {
		other, otherKey := newKey(t)
		err := execute(t, l, []ed25519.PrivateKey{payer, other},
			ledger.CreateAccount(payerKey, otherKey, 10_000_000, 16, testProgramID))
		assert.True(t, errors.HasErrorCode(err, errors.ErrCodeInsufficientLamports))
	})
	t.Run("too large", func(t *testing.T) {
		other, otherKey := newKey(t)
		err := execute(t, l, []ed25519.PrivateKey{payer, other},
			ledger.CreateAccount(payerKey, otherKey, 1, ledger.MaxPermittedDataLength+1, testProgramID))
		assert.True(t, errors.IsInvalidArgumentError(err))
	})
}

func TestTransfer_AllOrNothing(t *testing.T) {
	l := ledger.New()
	payer, payerKey := newKey(t)
	_, toKey := newKey(t)
	l.Airdrop(payerKey, 100)
	rootBefore, err := l.StateRoot()
	require.NoError(t, err)

	// The second transfer overdraws, so the first must not be committed.
	err = execute(t, l, []ed25519.PrivateKey{payer},
		ledger.Transfer(payerKey, toKey, 60),
		ledger.Transfer(payerKey, toKey, 60))
	assert.True(t, errors.HasErrorCode(err, errors.ErrCodeInsufficientLamports))

	_, ok := l.Account(toKey)
	assert.False(t, ok)
	rootAfter, err := l.StateRoot()
	require.NoError(t, err)
	assert.Equal(t, rootBefore, rootAfter)

	require.NoError(t, execute(t, l, []ed25519.PrivateKey{payer}, ledger.Transfer(payerKey, toKey, 60)))
	to, ok := l.Account(toKey)
	require.True(t, ok)
	assert.Equal(t, uint64(60), to.Lamports)
}

func TestExecute_Signatures(t *testing.T) {
	l := ledger.New()
	payer, payerKey := newKey(t)
	_, toKey := newKey(t)
	l.Airdrop(payerKey, 100)

	tx := ledger.NewTransaction(ledger.Transfer(payerKey, toKey, 1))
	require.NoError(t, tx.Sign(payer))
	tx.Instructions[0].Data[4] = 99

	err := l.Execute(context.Background(), tx)
	assert.True(t, errors.HasErrorCode(err, errors.ErrCodeInvalidSignature))
}

func TestExecute_Canceled(t *testing.T) {
	l := ledger.New()
	payer, payerKey := newKey(t)
	l.Airdrop(payerKey, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tx := ledger.NewTransaction(ledger.Transfer(payerKey, address.Address{1}, 1))
	require.NoError(t, tx.Sign(payer))
	require.ErrorIs(t, l.Execute(ctx, tx), context.Canceled)

	// a transaction canceled before it started can still be submitted
	require.NoError(t, l.Execute(context.Background(), tx))
}

func TestExecute_Replay(t *testing.T) {
	l := ledger.New()
	payer, payerKey := newKey(t)
	_, toKey := newKey(t)
	l.Airdrop(payerKey, 100)

	tx := ledger.NewTransaction(ledger.Transfer(payerKey, toKey, 10))
	require.NoError(t, tx.Sign(payer))
	require.NoError(t, l.Execute(context.Background(), tx))
	root, err := l.StateRoot()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		err := l.Execute(context.Background(), tx)
		assert.True(t, errors.IsAlreadyProcessedError(err))
	}
	after, err := l.StateRoot()
	require.NoError(t, err)
	assert.Equal(t, root, after)
	to, _ := l.Account(toKey)
	assert.Equal(t, uint64(10), to.Lamports)

	t.Run("same instructions in a new transaction", func(t *testing.T) {
		again := ledger.NewTransaction(ledger.Transfer(payerKey, toKey, 10))
		require.NoError(t, again.Sign(payer))
		id, err := tx.ID()
		require.NoError(t, err)
		againID, err := again.ID()
		require.NoError(t, err)
		require.NotEqual(t, id, againID)
		require.NoError(t, l.Execute(context.Background(), again))
		to, _ := l.Account(toKey)
		assert.Equal(t, uint64(20), to.Lamports)
	})
	t.Run("failed transaction is not retried", func(t *testing.T) {
		failing := ledger.NewTransaction(ledger.Transfer(payerKey, toKey, 1000))
		require.NoError(t, failing.Sign(payer))
		err := l.Execute(context.Background(), failing)
		assert.True(t, errors.HasErrorCode(err, errors.ErrCodeInsufficientLamports))

		l.Airdrop(payerKey, 1000)
		err = l.Execute(context.Background(), failing)
		assert.True(t, errors.IsAlreadyProcessedError(err))
	})
	t.Run("nonce is signed", func(t *testing.T) {
		forged := ledger.NewTransaction(ledger.Transfer(payerKey, toKey, 10))
		forged.Signatures = tx.Signatures
		forged.RecentNonce = tx.RecentNonce
		forged.RecentNonce[0] ^= 1
		err := l.Execute(context.Background(), forged)
		assert.True(t, errors.HasErrorCode(err, errors.ErrCodeInvalidSignature))
	})
}

func TestExecute_UnknownProgram(t *testing.T) {
	l := ledger.New()
	err := execute(t, l, nil, ledger.Instruction{ProgramID: address.Address{0xFF}})
	assert.True(t, errors.HasErrorCode(err, errors.ErrCodeUnknownProgram))
}

func TestVerify_OwnershipRules(t *testing.T) {
	owned := address.Address{1}
	foreign := address.Address{2}

	tests := []struct {
		name    string
		metas   []account.Meta
		mutate  func(accounts []*account.Info)
		errCode errors.ErrorCode
	}{
		{
			"read-only data",
			[]account.Meta{account.ReadOnly(owned)},
			func(a []*account.Info) { a[0].Data[0] = 1 },
			errors.ErrCodeReadonlyModified,
		},
		{
			"foreign data",
			[]account.Meta{account.Writable(foreign)},
			func(a []*account.Info) { a[0].Data[0] = 1 },
			errors.ErrCodeExternalDataModified,
		},
		{
			"foreign lamports",
			[]account.Meta{account.Writable(foreign), account.Writable(owned)},
			func(a []*account.Info) { a[0].Lamports--; a[1].Lamports++ },
			errors.ErrCodeExternalDataModified,
		},
		{
			"minted lamports",
			[]account.Meta{account.Writable(owned)},
			func(a []*account.Info) { a[0].Lamports++ },
			errors.ErrCodeUnbalancedInstruction,
		},
		{
			"executable flag",
			[]account.Meta{account.Writable(owned)},
			func(a []*account.Info) { a[0].Executable = true },
			errors.ErrCodeExternalDataModified,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledger.New()
			l.SetAccount(owned, storage.Account{Lamports: 10, Owner: testProgramID, Data: make([]byte, 4)})
			l.SetAccount(foreign, storage.Account{Lamports: 10, Owner: address.Address{9}, Data: make([]byte, 4)})
			l.Register(testProgramID, ledger.ProgramFunc(func(_ ledger.Runtime, accounts []*account.Info, _ []byte) error {
				tt.mutate(accounts)
				return nil
			}))

			err := execute(t, l, nil, ledger.Instruction{ProgramID: testProgramID, Accounts: tt.metas})
			require.Error(t, err)
			assert.True(t, errors.HasErrorCode(err, tt.errCode), err.Error())

			acct, _ := l.Account(owned)
			assert.Equal(t, make([]byte, 4), acct.Data)
			assert.Equal(t, uint64(10), acct.Lamports)
		})
	}
}

func TestSnapshotRestore(t *testing.T) {
	l := ledger.New()
	_, key := newKey(t)
	l.Airdrop(key, 42)
	snapshot, err := l.Snapshot()
	require.NoError(t, err)

	restored := ledger.New()
	require.NoError(t, restored.Restore(snapshot))
	acct, ok := restored.Account(key)
	require.True(t, ok)
	assert.Equal(t, uint64(42), acct.Lamports)

	want, err := l.StateRoot()
	require.NoError(t, err)
	got, err := restored.StateRoot()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestProveAccount(t *testing.T) {
	l := ledger.New()
	_, key := newKey(t)
	l.Airdrop(key, 42)

	acct, proof, err := l.ProveAccount(key)
	require.NoError(t, err)
	root, err := l.StateRoot()
	require.NoError(t, err)
	assert.True(t, proof.VerifyInclusion(root, key, &acct))

	l.Airdrop(key, 1)
	root, err = l.StateRoot()
	require.NoError(t, err)
	assert.False(t, proof.VerifyInclusion(root, key, &acct))

	_, missing := newKey(t)
	_, _, err = l.ProveAccount(missing)
	assert.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestRent_MinimumBalance(t *testing.T) {
	assert.Equal(t, uint64(890_880), ledger.DefaultRent().MinimumBalance(0))
	assert.Equal(t, uint64((128+64)*3480*2), ledger.DefaultRent().MinimumBalance(64))
}
