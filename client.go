package echo

import (
	"encoding/binary"

	"github.com/celestiaorg/echo/account"
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/instruction"
	"github.com/celestiaorg/echo/ledger"
	"github.com/celestiaorg/echo/state"
	"github.com/celestiaorg/echo/token"
)

const (
	AuthoritySeed      = "authority"
	VendingMachineSeed = "vending_machine"
)

// AuthorizedBufferSeeds returns the derivation seeds, without nonce, of the
// authorized buffer of authority and seed.
func AuthorizedBufferSeeds(authority address.Address, seed uint64) [][]byte {
	return [][]byte{[]byte(AuthoritySeed), authority.Bytes(), binary.LittleEndian.AppendUint64(nil, seed)}
}

// VendingBufferSeeds returns the derivation seeds, without nonce, of the
// vending buffer of mint and price.
func VendingBufferSeeds(mint address.Address, price uint64) [][]byte {
	return [][]byte{[]byte(VendingMachineSeed), mint.Bytes(), binary.LittleEndian.AppendUint64(nil, price)}
}

func withNonce(seeds [][]byte, nonce uint8) [][]byte {
	return append(seeds[:len(seeds):len(seeds)], []byte{nonce})
}

// FindAuthorizedBufferAddress returns the address and nonce of the
// authorized buffer of authority and seed under programID.
func FindAuthorizedBufferAddress(programID, authority address.Address, seed uint64) (address.Address, uint8, error) {
	return address.Find(AuthorizedBufferSeeds(authority, seed), programID)
}

// FindVendingBufferAddress returns the address and nonce of the vending
// buffer of mint and price under programID.
func FindVendingBufferAddress(programID, mint address.Address, price uint64) (address.Address, uint8, error) {
	return address.Find(VendingBufferSeeds(mint, price), programID)
}

// BufferPayload returns the bytes following the header of an authorized
// or vending buffer, or nil if data is shorter than the header.
func BufferPayload(data []byte) []byte {
	return state.Payload(data)
}

// NewEchoInstruction writes data into the open buffer.
func NewEchoInstruction(programID, buffer address.Address, data []byte) ledger.Instruction {
	return ledger.Instruction{
		ProgramID: programID,
		Accounts:  []account.Meta{account.Writable(buffer)},
		Data:      instruction.Marshal(instruction.Echo{Data: data}),
	}
}

// NewInitializeAuthorizedEchoInstruction creates the authorized buffer of
// authority and seed, which must be the address returned by
// FindAuthorizedBufferAddress.
func NewInitializeAuthorizedEchoInstruction(programID, buffer, authority address.Address, seed, size uint64) ledger.Instruction {
	return ledger.Instruction{
		ProgramID: programID,
		Accounts: []account.Meta{
			account.Writable(buffer),
			account.Signer(authority, true),
			account.ReadOnly(ledger.SystemProgramID),
		},
		Data: instruction.Marshal(instruction.InitializeAuthorizedEcho{BufferSeed: seed, BufferSize: size}),
	}
}

// NewAuthorizedEchoInstruction replaces the payload of an authorized
// buffer.
func NewAuthorizedEchoInstruction(programID, buffer, authority address.Address, data []byte) ledger.Instruction {
	return ledger.Instruction{
		ProgramID: programID,
		Accounts: []account.Meta{
			account.Writable(buffer),
			account.Signer(authority, false),
		},
		Data: instruction.Marshal(instruction.AuthorizedEcho{Data: data}),
	}
}

// NewInitializeVendingMachineEchoInstruction creates the vending buffer of
// mint and price, paid for by payer.
func NewInitializeVendingMachineEchoInstruction(programID, buffer, mint, payer address.Address, price, size uint64) ledger.Instruction {
	return ledger.Instruction{
		ProgramID: programID,
		Accounts: []account.Meta{
			account.Writable(buffer),
			account.ReadOnly(mint),
			account.Signer(payer, true),
			account.ReadOnly(ledger.SystemProgramID),
		},
		Data: instruction.Marshal(instruction.InitializeVendingMachineEcho{Price: price, BufferSize: size}),
	}
}

// NewVendingMachineEchoInstruction pays the buffer's price from
// userTokens and replaces its payload.
func NewVendingMachineEchoInstruction(programID, buffer, user, userTokens, mint address.Address, data []byte) ledger.Instruction {
	return ledger.Instruction{
		ProgramID: programID,
		Accounts: []account.Meta{
			account.Writable(buffer),
			account.Signer(user, false),
			account.Writable(userTokens),
			account.Writable(mint),
			account.ReadOnly(token.ProgramID),
		},
		Data: instruction.Marshal(instruction.VendingMachineEcho{Data: data}),
	}
}

// DefaultProgramID is the id the simulator and the test harness register
// the processor under.
var DefaultProgramID = address.MustFromBase58("Echo111111111111111111111111111111111111111")
