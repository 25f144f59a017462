package echo_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/echo"
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/errors"
	"github.com/celestiaorg/echo/internal/ledgertest"
	"github.com/celestiaorg/echo/state"
	"github.com/celestiaorg/echo/token"
)

func createAuthorizedBuffer(t *testing.T, env *ledgertest.Env, seed, size uint64) address.Address {
	t.Helper()
	buffer, _, err := echo.FindAuthorizedBufferAddress(programID, env.Payer.Key, seed)
	require.NoError(t, err)
	env.MustExecute(nil, echo.NewInitializeAuthorizedEchoInstruction(programID, buffer, env.Payer.Key, seed, size))
	return buffer
}

func TestAuthorizedEcho(t *testing.T) {
	env := ledgertest.New(t, nil)
	buffer := createAuthorizedBuffer(t, env, 7, 64)

	acct, ok := env.Ledger.Account(buffer)
	require.True(t, ok)
	assert.Equal(t, programID, acct.Owner)
	assert.Equal(t, env.Ledger.Rent().MinimumBalance(64), acct.Lamports)
	require.Len(t, acct.Data, 64)

	var header state.AuthorizedBufferHeader
	require.NoError(t, header.UnmarshalBinary(acct.Data))
	_, nonce, err := echo.FindAuthorizedBufferAddress(programID, env.Payer.Key, 7)
	require.NoError(t, err)
	assert.Equal(t, state.AuthorizedBufferHeader{Nonce: nonce, Seed: 7}, header)

	env.MustExecute(nil, echo.NewAuthorizedEchoInstruction(programID, buffer, env.Payer.Key, []byte{1, 2, 3}))
	data := env.Data(buffer)
	assert.Equal(t, []byte{1, 2, 3}, data[9:12])
	assert.Equal(t, make([]byte, 52), data[12:64])
	assert.Equal(t, acct.Data[:9], data[:9])
}

func TestAuthorizedEcho_Overwrite(t *testing.T) {
	env := ledgertest.New(t, nil)
	buffer := createAuthorizedBuffer(t, env, 1, 16)

	env.MustExecute(nil, echo.NewAuthorizedEchoInstruction(programID, buffer, env.Payer.Key, []byte{9, 9, 9, 9, 9}))
	env.MustExecute(nil, echo.NewAuthorizedEchoInstruction(programID, buffer, env.Payer.Key, []byte{1, 2}))
	assert.Equal(t, []byte{1, 2, 0, 0, 0, 0, 0}, echo.BufferPayload(env.Data(buffer)))

	env.MustExecute(nil, echo.NewAuthorizedEchoInstruction(programID, buffer, env.Payer.Key, bytes.Repeat([]byte{5}, 20)))
	assert.Equal(t, bytes.Repeat([]byte{5}, 7), echo.BufferPayload(env.Data(buffer)))
}

func TestAuthorizedEcho_TamperedAddress(t *testing.T) {
	env := ledgertest.New(t, nil)
	buffer := createAuthorizedBuffer(t, env, 7, 64)
	tampered := buffer
	tampered[0] ^= 1

	t.Run("initialize", func(t *testing.T) {
		payerBefore, _ := env.Ledger.Account(env.Payer.Key)
		err := env.Execute(nil, echo.NewInitializeAuthorizedEchoInstruction(programID, tampered, env.Payer.Key, 7, 64))
		assert.True(t, errors.IsInvalidArgumentError(err), "got %v", err)
		assert.False(t, env.Exists(tampered))
		payerAfter, _ := env.Ledger.Account(env.Payer.Key)
		assert.Equal(t, payerBefore.Lamports, payerAfter.Lamports)
	})
	t.Run("write to forged copy", func(t *testing.T) {
		forged, _ := env.Ledger.Account(buffer)
		env.Ledger.SetAccount(tampered, forged)
		err := env.Execute(nil, echo.NewAuthorizedEchoInstruction(programID, tampered, env.Payer.Key, []byte{1}))
		assert.True(t, errors.IsInvalidArgumentError(err), "got %v", err)
		assert.Equal(t, forged.Data, env.Data(tampered))
	})
	t.Run("other authority", func(t *testing.T) {
		other := ledgertest.NewKeypair(t)
		before := env.Data(buffer)
		err := env.Execute([]ledgertest.Keypair{other}, echo.NewAuthorizedEchoInstruction(programID, buffer, other.Key, []byte{1}))
		assert.True(t, errors.IsInvalidArgumentError(err), "got %v", err)
		assert.Equal(t, before, env.Data(buffer))
	})
	t.Run("buffer not owned by the program", func(t *testing.T) {
		forged, _ := env.Ledger.Account(buffer)
		forged.Owner = token.ProgramID
		env.Ledger.SetAccount(tampered, forged)
		err := env.Execute(nil, echo.NewAuthorizedEchoInstruction(programID, tampered, env.Payer.Key, []byte{1}))
		assert.True(t, errors.IsInvalidArgumentError(err), "got %v", err)
	})
}

func TestAuthorizedEcho_MissingSignature(t *testing.T) {
	env := ledgertest.New(t, nil)
	buffer := createAuthorizedBuffer(t, env, 3, 32)
	env.MustExecute(nil, echo.NewAuthorizedEchoInstruction(programID, buffer, env.Payer.Key, []byte{7, 7}))
	before := env.Data(buffer)

	ix := echo.NewAuthorizedEchoInstruction(programID, buffer, env.Payer.Key, []byte{1})
	ix.Accounts[1].IsSigner = false
	err := env.Execute(nil, ix)
	assert.True(t, errors.IsMissingRequiredSignatureError(err), "got %v", err)
	assert.Equal(t, before, env.Data(buffer))
}

func TestInitializeAuthorizedEcho_Failures(t *testing.T) {
	env := ledgertest.New(t, nil)

	t.Run("smaller than header", func(t *testing.T) {
		buffer, _, err := echo.FindAuthorizedBufferAddress(programID, env.Payer.Key, 11)
		require.NoError(t, err)
		err = env.Execute(nil, echo.NewInitializeAuthorizedEchoInstruction(programID, buffer, env.Payer.Key, 11, state.HeaderSize-1))
		assert.True(t, errors.IsInvalidArgumentError(err), "got %v", err)
		assert.False(t, env.Exists(buffer))
	})
	t.Run("spoofed system program", func(t *testing.T) {
		buffer, _, err := echo.FindAuthorizedBufferAddress(programID, env.Payer.Key, 12)
		require.NoError(t, err)
		ix := echo.NewInitializeAuthorizedEchoInstruction(programID, buffer, env.Payer.Key, 12, 32)
		ix.Accounts[2].Key = token.ProgramID
		err = env.Execute(nil, ix)
		assert.True(t, errors.IsInvalidArgumentError(err), "got %v", err)
		assert.False(t, env.Exists(buffer))
	})
	t.Run("authority did not sign", func(t *testing.T) {
		authority := ledgertest.NewKeypair(t)
		buffer, _, err := echo.FindAuthorizedBufferAddress(programID, authority.Key, 13)
		require.NoError(t, err)
		ix := echo.NewInitializeAuthorizedEchoInstruction(programID, buffer, authority.Key, 13, 32)
		ix.Accounts[1].IsSigner = false
		err = env.Execute(nil, ix)
		assert.True(t, errors.IsMissingRequiredSignatureError(err), "got %v", err)
	})
	t.Run("already created", func(t *testing.T) {
		createAuthorizedBuffer(t, env, 14, 32)
		buffer, _, err := echo.FindAuthorizedBufferAddress(programID, env.Payer.Key, 14)
		require.NoError(t, err)
		err = env.Execute(nil, echo.NewInitializeAuthorizedEchoInstruction(programID, buffer, env.Payer.Key, 14, 32))
		assert.True(t, errors.IsCollaboratorFailure(err), "got %v", err)
		assert.True(t, errors.IsAccountAlreadyInUseError(err), "got %v", err)
	})
	t.Run("missing accounts", func(t *testing.T) {
		buffer, _, err := echo.FindAuthorizedBufferAddress(programID, env.Payer.Key, 15)
		require.NoError(t, err)
		ix := echo.NewInitializeAuthorizedEchoInstruction(programID, buffer, env.Payer.Key, 15, 32)
		ix.Accounts = ix.Accounts[:2]
		err = env.Execute(nil, ix)
		assert.True(t, errors.IsNotEnoughAccountKeysError(err), "got %v", err)
	})
}
