package echo

import (
	"github.com/celestiaorg/echo/account"
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/errors"
	"github.com/celestiaorg/echo/instruction"
	"github.com/celestiaorg/echo/ledger"
	"github.com/celestiaorg/echo/state"
)

// initializeAuthorizedEcho allocates a buffer at the address derived from
// the signing authority and the seed, signs the allocation with the
// derivation seeds and records the nonce and seed in the header.
func (p *Processor) initializeAuthorizedEcho(rt ledger.Runtime, it *account.Iterator, ix instruction.InitializeAuthorizedEcho) error {
	buffer, err := it.Next()
	if err != nil {
		return err
	}
	authority, err := it.Next()
	if err != nil {
		return err
	}
	systemProgram, err := it.Next()
	if err != nil {
		return err
	}
	if err := account.RequireSigner(authority, "authority"); err != nil {
		return err
	}
	if err := account.RequireProgram(systemProgram, p.opts.SystemProgramID, "system program"); err != nil {
		return err
	}
	if ix.BufferSize < state.HeaderSize {
		return errors.NewInvalidArgumentErrorf(
			"buffer size %d is smaller than the %d byte header", ix.BufferSize, state.HeaderSize)
	}

	seeds := AuthorizedBufferSeeds(authority.Key, ix.BufferSeed)
	nonce, err := p.createBuffer(rt, buffer, authority, seeds, ix.BufferSize)
	if err != nil {
		return err
	}
	header := state.AuthorizedBufferHeader{Nonce: nonce, Seed: ix.BufferSeed}
	if err := header.MarshalTo(buffer.Data); err != nil {
		return errors.NewInvalidAccountDataErrorf(buffer.Key.String(), "%v", err)
	}

	rt.Logger().Debug().
		Str("buffer", buffer.Key.String()).
		Str("authority", authority.Key.String()).
		Uint64("seed", ix.BufferSeed).
		Uint64("size", ix.BufferSize).
		Uint8("nonce", nonce).
		Msg("authorized buffer created")
	return nil
}

// authorizedEcho replaces the payload of an authorized buffer. Only the
// authority whose key the buffer address was derived from can write.
func (p *Processor) authorizedEcho(rt ledger.Runtime, it *account.Iterator, ix instruction.AuthorizedEcho) error {
	buffer, err := it.Next()
	if err != nil {
		return err
	}
	authority, err := it.Next()
	if err != nil {
		return err
	}
	if err := account.RequireSigner(authority, "authority"); err != nil {
		return err
	}
	if err := account.RequireMinLen(buffer, state.HeaderSize); err != nil {
		return err
	}
	if err := account.RequireOwner(buffer, rt.ProgramID()); err != nil {
		return err
	}
	var header state.AuthorizedBufferHeader
	if err := header.UnmarshalBinary(buffer.Data); err != nil {
		return errors.NewInvalidAccountDataErrorf(buffer.Key.String(), "%v", err)
	}
	seeds := withNonce(AuthorizedBufferSeeds(authority.Key, header.Seed), header.Nonce)
	if err := account.RequireDerived(buffer, seeds, rt.ProgramID()); err != nil {
		return err
	}
	n := writePayload(buffer.Data[state.HeaderSize:], ix.Data)

	rt.Logger().Debug().
		Str("buffer", buffer.Key.String()).
		Uint64("seed", header.Seed).
		Int("written", n).
		Int("payload", len(ix.Data)).
		Msg("authorized echo")
	return nil
}

// createBuffer derives the buffer address from seeds, checks it is the
// handle the caller passed and has the system program allocate it, funded
// by payer and owned by the executing program. Every check runs before
// the allocation.
func (p *Processor) createBuffer(rt ledger.Runtime, buffer, payer *account.Info, seeds [][]byte, size uint64) (uint8, error) {
	expected, nonce, err := address.Find(seeds, rt.ProgramID())
	if err != nil {
		return 0, errors.WrapCodedError(errors.ErrCodeInvalidSeeds, err, "derive buffer address")
	}
	if expected != buffer.Key {
		return 0, errors.NewInvalidArgumentErrorf(
			"buffer: got: %s, want: %s", buffer.Key, expected)
	}

	create := ledger.CreateAccount(payer.Key, buffer.Key, rt.MinimumBalance(size), size, rt.ProgramID())
	create.ProgramID = p.opts.SystemProgramID
	if err := rt.InvokeSigned(create, withNonce(seeds, nonce)); err != nil {
		return 0, errors.NewCollaboratorFailure("system program", err)
	}
	return nonce, nil
}
