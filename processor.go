// Package echo implements a program that stores caller-supplied bytes in
// buffer accounts. Three kinds of buffer exist:
//
//   - open buffers take one unauthenticated write while every byte is zero,
//   - authorized buffers live at an address derived from their authority
//     and a seed and accept any number of writes signed by that authority,
//   - vending buffers live at an address derived from a token mint and a
//     price and accept a write from anyone who burns price tokens of that
//     mint.
//
// Authorized and vending buffers start with a 9-byte header holding the
// derivation nonce and the seed or price; the payload follows it. The
// program keeps no state besides the buffers themselves: every write
// re-derives the buffer address from its header and compares it with the
// account it was given.
package echo

import (
	"github.com/celestiaorg/echo/account"
	"github.com/celestiaorg/echo/errors"
	"github.com/celestiaorg/echo/instruction"
	"github.com/celestiaorg/echo/ledger"
)

// Processor dispatches decoded instructions to their handlers.
type Processor struct {
	opts Options
}

var _ ledger.Program = (*Processor)(nil)

func New(setters ...Option) *Processor {
	opts := defaultOptions()
	for _, setter := range setters {
		setter(&opts)
	}
	return &Processor{opts: opts}
}

// Process decodes data and runs the selected operation against accounts.
// An undecodable payload fails before any account is looked at.
func (p *Processor) Process(rt ledger.Runtime, accounts []*account.Info, data []byte) error {
	ix, err := instruction.Unmarshal(data)
	if err != nil {
		return errors.WrapCodedError(errors.ErrCodeInvalidInstructionData, err, "decode instruction")
	}
	rt.Logger().Debug().Stringer("instruction", ix.Tag()).Msg("process")

	it := account.NewIterator(accounts)
	switch ix := ix.(type) {
	case instruction.Echo:
		return p.echo(rt, it, ix)
	case instruction.InitializeAuthorizedEcho:
		return p.initializeAuthorizedEcho(rt, it, ix)
	case instruction.AuthorizedEcho:
		return p.authorizedEcho(rt, it, ix)
	case instruction.InitializeVendingMachineEcho:
		return p.initializeVendingMachineEcho(rt, it, ix)
	case instruction.VendingMachineEcho:
		return p.vendingMachineEcho(rt, it, ix)
	default:
		return errors.NewInvalidInstructionDataErrorf("unhandled instruction %s", ix.Tag())
	}
}

// writePayload clears dst and copies as much of payload as fits.
func writePayload(dst, payload []byte) int {
	for i := range dst {
		dst[i] = 0
	}
	return copy(dst, payload)
}
