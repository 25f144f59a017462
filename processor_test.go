package echo_test

import (
	"context"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/echo"
	"github.com/celestiaorg/echo/account"
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/errors"
	"github.com/celestiaorg/echo/instruction"
	"github.com/celestiaorg/echo/ledger"
	"github.com/celestiaorg/echo/token"
)

// recordingRuntime records invocations and never changes an account.
type recordingRuntime struct {
	log     zerolog.Logger
	invoked []ledger.Instruction
}

var _ ledger.Runtime = (*recordingRuntime)(nil)

func (r *recordingRuntime) Context() context.Context          { return context.Background() }
func (r *recordingRuntime) ProgramID() address.Address        { return programID }
func (r *recordingRuntime) Logger() *zerolog.Logger           { return &r.log }
func (r *recordingRuntime) MinimumBalance(size uint64) uint64 { return size }
func (r *recordingRuntime) Invoke(ix ledger.Instruction) error {
	return r.InvokeSigned(ix)
}
func (r *recordingRuntime) InvokeSigned(ix ledger.Instruction, _ ...[][]byte) error {
	r.invoked = append(r.invoked, ix)
	return nil
}

func TestProcess_UndecodablePayload(t *testing.T) {
	p := echo.New()
	for name, data := range map[string][]byte{
		"empty":         nil,
		"unknown tag":   {9},
		"truncated":     {byte(instruction.TagEcho), 5, 0, 0, 0, 1},
		"trailing data": append(instruction.Marshal(instruction.AuthorizedEcho{Data: []byte{1}}), 0),
	} {
		t.Run(name, func(t *testing.T) {
			rt := &recordingRuntime{log: zerolog.Nop()}
			err := p.Process(rt, nil, data)
			assert.True(t, errors.IsInvalidInstructionDataError(err), "got %v", err)
			assert.Empty(t, rt.invoked)
		})
	}
}

func TestProcess_RandomPayloads(t *testing.T) {
	p := echo.New()
	f := fuzz.New().NilChance(0.1)
	buffer := &account.Info{Key: address.Address{1}, IsWritable: true, Owner: programID, Data: make([]byte, 16)}
	for i := 0; i < 500; i++ {
		var data []byte
		f.Fuzz(&data)
		rt := &recordingRuntime{log: zerolog.Nop()}
		err := p.Process(rt, []*account.Info{buffer}, data)
		if _, decodeErr := instruction.Unmarshal(data); decodeErr != nil {
			require.True(t, errors.IsInvalidInstructionDataError(err), "payload %x: %v", data, err)
		}
		for j := range buffer.Data {
			buffer.Data[j] = 0
		}
	}
}

func TestProcess_CheckBeforeAllocation(t *testing.T) {
	authority := address.Address{2}
	buffer, _, err := echo.FindAuthorizedBufferAddress(programID, authority, 7)
	require.NoError(t, err)
	tampered := buffer
	tampered[31] ^= 0x80

	accounts := func(key address.Address, signer bool) []*account.Info {
		return []*account.Info{
			{Key: key, IsWritable: true},
			{Key: authority, IsSigner: signer, IsWritable: true},
			{Key: ledger.SystemProgramID, Executable: true},
		}
	}
	data := instruction.Marshal(instruction.InitializeAuthorizedEcho{BufferSeed: 7, BufferSize: 64})

	t.Run("tampered address", func(t *testing.T) {
		rt := &recordingRuntime{log: zerolog.Nop()}
		err := echo.New().Process(rt, accounts(tampered, true), data)
		assert.True(t, errors.IsInvalidArgumentError(err), "got %v", err)
		assert.Empty(t, rt.invoked)
	})
	t.Run("unsigned", func(t *testing.T) {
		rt := &recordingRuntime{log: zerolog.Nop()}
		err := echo.New().Process(rt, accounts(buffer, false), data)
		assert.True(t, errors.IsMissingRequiredSignatureError(err), "got %v", err)
		assert.Empty(t, rt.invoked)
	})
	t.Run("allocation request", func(t *testing.T) {
		rt := &recordingRuntime{log: zerolog.Nop()}
		infos := accounts(buffer, true)
		infos[0].Data = make([]byte, 64)
		require.NoError(t, echo.New().Process(rt, infos, data))
		require.Len(t, rt.invoked, 1)
		ix := rt.invoked[0]
		assert.Equal(t, ledger.SystemProgramID, ix.ProgramID)
		assert.Equal(t, []account.Meta{account.Signer(authority, true), account.Signer(buffer, true)}, ix.Accounts)
	})
}

func TestOptions_CollaboratorIDs(t *testing.T) {
	systemID := address.Address{0x51}
	tokenID := address.Address{0x70}
	p := echo.New(echo.WithSystemProgramID(systemID), echo.WithTokenProgramID(tokenID))

	authority := address.Address{3}
	buffer, _, err := echo.FindAuthorizedBufferAddress(programID, authority, 1)
	require.NoError(t, err)
	rt := &recordingRuntime{log: zerolog.Nop()}
	infos := []*account.Info{
		{Key: buffer, IsWritable: true, Data: make([]byte, 16)},
		{Key: authority, IsSigner: true, IsWritable: true},
		{Key: ledger.SystemProgramID},
	}
	data := instruction.Marshal(instruction.InitializeAuthorizedEcho{BufferSeed: 1, BufferSize: 16})
	err = p.Process(rt, infos, data)
	assert.True(t, errors.IsInvalidArgumentError(err), "got %v", err)

	infos[2].Key = systemID
	require.NoError(t, p.Process(rt, infos, data))
	require.Len(t, rt.invoked, 1)
	assert.Equal(t, systemID, rt.invoked[0].ProgramID)

	user := address.Address{4}
	vending := []*account.Info{
		{Key: buffer, IsWritable: true, Data: make([]byte, 16)},
		{Key: user, IsSigner: true},
		{Key: address.Address{5}, IsWritable: true},
		{Key: address.Address{6}, IsWritable: true},
		{Key: token.ProgramID},
	}
	err = p.Process(rt, vending, instruction.Marshal(instruction.VendingMachineEcho{Data: []byte{1}}))
	assert.True(t, errors.IsInvalidArgumentError(err), "got %v", err)
}
