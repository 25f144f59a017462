package echo

import (
	"github.com/celestiaorg/echo/account"
	"github.com/celestiaorg/echo/errors"
	"github.com/celestiaorg/echo/instruction"
	"github.com/celestiaorg/echo/ledger"
	"github.com/celestiaorg/echo/state"
	"github.com/celestiaorg/echo/token"
)

// initializeVendingMachineEcho allocates a buffer at the address derived
// from the mint and the price. The buffer belongs to whoever holds tokens
// of the mint, not to the payer.
func (p *Processor) initializeVendingMachineEcho(rt ledger.Runtime, it *account.Iterator, ix instruction.InitializeVendingMachineEcho) error {
	buffer, err := it.Next()
	if err != nil {
		return err
	}
	mint, err := it.Next()
	if err != nil {
		return err
	}
	payer, err := it.Next()
	if err != nil {
		return err
	}
	systemProgram, err := it.Next()
	if err != nil {
		return err
	}
	if err := account.RequireSigner(payer, "payer"); err != nil {
		return err
	}
	if err := account.RequireProgram(systemProgram, p.opts.SystemProgramID, "system program"); err != nil {
		return err
	}
	if ix.BufferSize < state.HeaderSize {
		return errors.NewInvalidArgumentErrorf(
			"buffer size %d is smaller than the %d byte header", ix.BufferSize, state.HeaderSize)
	}

	seeds := VendingBufferSeeds(mint.Key, ix.Price)
	nonce, err := p.createBuffer(rt, buffer, payer, seeds, ix.BufferSize)
	if err != nil {
		return err
	}
	header := state.VendingBufferHeader{Nonce: nonce, Price: ix.Price}
	if err := header.MarshalTo(buffer.Data); err != nil {
		return errors.NewInvalidAccountDataErrorf(buffer.Key.String(), "%v", err)
	}

	rt.Logger().Debug().
		Str("buffer", buffer.Key.String()).
		Str("mint", mint.Key.String()).
		Uint64("price", ix.Price).
		Uint64("size", ix.BufferSize).
		Uint8("nonce", nonce).
		Msg("vending buffer created")
	return nil
}

// vendingMachineEcho burns the buffer's price from the user's token
// account and then replaces the payload. The buffer is untouched unless
// the burn succeeds.
func (p *Processor) vendingMachineEcho(rt ledger.Runtime, it *account.Iterator, ix instruction.VendingMachineEcho) error {
	buffer, err := it.Next()
	if err != nil {
		return err
	}
	user, err := it.Next()
	if err != nil {
		return err
	}
	userTokens, err := it.Next()
	if err != nil {
		return err
	}
	mint, err := it.Next()
	if err != nil {
		return err
	}
	tokenProgram, err := it.Next()
	if err != nil {
		return err
	}
	if err := account.RequireSigner(user, "user"); err != nil {
		return err
	}
	if err := account.RequireProgram(tokenProgram, p.opts.TokenProgramID, "token program"); err != nil {
		return err
	}
	if err := account.RequireMinLen(buffer, state.HeaderSize); err != nil {
		return err
	}
	if err := account.RequireOwner(buffer, rt.ProgramID()); err != nil {
		return err
	}
	var header state.VendingBufferHeader
	if err := header.UnmarshalBinary(buffer.Data); err != nil {
		return errors.NewInvalidAccountDataErrorf(buffer.Key.String(), "%v", err)
	}
	seeds := withNonce(VendingBufferSeeds(mint.Key, header.Price), header.Nonce)
	if err := account.RequireDerived(buffer, seeds, rt.ProgramID()); err != nil {
		return err
	}

	burn := token.Burn(tokenProgram.Key, userTokens.Key, mint.Key, user.Key, header.Price)
	if err := rt.Invoke(burn); err != nil {
		return errors.NewCollaboratorFailure("token program", err)
	}
	n := writePayload(buffer.Data[state.HeaderSize:], ix.Data)

	rt.Logger().Debug().
		Str("buffer", buffer.Key.String()).
		Str("user", user.Key.String()).
		Uint64("price", header.Price).
		Int("written", n).
		Int("payload", len(ix.Data)).
		Msg("vending machine echo")
	return nil
}
