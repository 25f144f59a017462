package echo

import (
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/ledger"
	"github.com/celestiaorg/echo/token"
)

// Options are the identities of the programs the processor collaborates
// with. A handle passed for a collaborator must carry exactly this
// identity.
type Options struct {
	SystemProgramID address.Address
	TokenProgramID  address.Address
}

type Option func(*Options)

// WithSystemProgramID sets the program that allocates buffers.
func WithSystemProgramID(id address.Address) Option {
	return func(opts *Options) {
		opts.SystemProgramID = id
	}
}

// WithTokenProgramID sets the program that burns the price of a vending
// write.
func WithTokenProgramID(id address.Address) Option {
	return func(opts *Options) {
		opts.TokenProgramID = id
	}
}

func defaultOptions() Options {
	return Options{
		SystemProgramID: ledger.SystemProgramID,
		TokenProgramID:  token.ProgramID,
	}
}
