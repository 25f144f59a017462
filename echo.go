package echo

import (
	"github.com/celestiaorg/echo/account"
	"github.com/celestiaorg/echo/instruction"
	"github.com/celestiaorg/echo/ledger"
)

// echo writes into an open buffer. The buffer must be allocated and still
// entirely zero; the payload is truncated to the buffer's size.
//
// Nothing but the zero check guards an open buffer, so two writers racing
// for the same fresh buffer both pass it and the ledger decides which
// transaction lands first.
func (p *Processor) echo(rt ledger.Runtime, it *account.Iterator, ix instruction.Echo) error {
	buffer, err := it.Next()
	if err != nil {
		return err
	}
	if err := account.RequireNonEmpty(buffer); err != nil {
		return err
	}
	if err := account.RequireVirgin(buffer); err != nil {
		return err
	}
	n := copy(buffer.Data, ix.Data)

	rt.Logger().Debug().
		Str("buffer", buffer.Key.String()).
		Int("written", n).
		Int("payload", len(ix.Data)).
		Msg("echo")
	return nil
}
